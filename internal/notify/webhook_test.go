package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifySendsTagParameter(t *testing.T) {
	var gotTag string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTag = r.URL.Query().Get("tag")
		require.Equal(t, http.MethodGet, r.Method)
	}))
	defer server.Close()

	NewWebhook().Notify(context.Background(), server.URL, []string{"alice", "bob"})

	assert.Equal(t, "alice,bob", gotTag)
}

func TestNotifyPreservesExistingQuery(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
	}))
	defer server.Close()

	NewWebhook().Notify(context.Background(), server.URL+"?token=abc", []string{"alice"})

	require.NotNil(t, gotQuery)
	assert.Equal(t, []string{"abc"}, gotQuery["token"])
	assert.Equal(t, []string{"alice"}, gotQuery["tag"])
}

func TestNotifySkipsEmptyInput(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	wh := NewWebhook()
	wh.Notify(context.Background(), "", []string{"alice"})
	wh.Notify(context.Background(), "   ", []string{"alice"})
	wh.Notify(context.Background(), server.URL, nil)

	assert.Equal(t, int32(0), calls.Load())
}

func TestNotifyToleratesUnreachableTarget(t *testing.T) {
	// Must not panic or propagate; failures are logged only.
	NewWebhook().Notify(context.Background(), "http://127.0.0.1:1", []string{"alice"})
	NewWebhook().Notify(context.Background(), "http://bad url with spaces", []string{"alice"})
}
