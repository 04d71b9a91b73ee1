package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/facerec/internal/models"
	"github.com/your-org/facerec/internal/recognition"
	"github.com/your-org/facerec/internal/storage"
	"github.com/your-org/facerec/internal/vision"
	"github.com/your-org/facerec/pkg/dto"
)

type fakeDetector struct {
	detections []vision.Detection
	err        error
}

func (d *fakeDetector) Detect([]byte) ([]vision.Detection, error) {
	return d.detections, d.err
}

func newTestRouter(t *testing.T, apiKey string, detector vision.Detector) http.Handler {
	t.Helper()
	base := t.TempDir()

	known, err := storage.NewKnownStore(base)
	require.NoError(t, err)
	unknown, err := storage.NewUnknownStore(base)
	require.NoError(t, err)
	events, err := storage.NewEventStore(base)
	require.NoError(t, err)
	settings := storage.NewSettingsStore(base, 0)

	return NewRouter(RouterConfig{
		APIKey:   apiKey,
		BasePath: base,
		Service:  recognition.NewService(detector, known, unknown, events, settings),
		Known:    known,
		Unknown:  unknown,
		Events:   events,
		Settings: settings,
	})
}

func multipartImage(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fw, err := w.CreateFormFile("image", "test.jpg")
	require.NoError(t, err)
	// Any bytes work; the fake detector never decodes them.
	_, err = fw.Write([]byte("jpeg-data"))
	require.NoError(t, err)

	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestHealthEndpointsWithoutAuth(t *testing.T) {
	router := newTestRouter(t, "secret", &fakeDetector{})

	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestAPIRequiresKey(t *testing.T) {
	router := newTestRouter(t, "secret", &fakeDetector{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/known-faces", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/known-faces", nil)
	req.Header.Set("X-API-Key", "wrong")
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/known-faces", nil)
	req.Header.Set("X-API-Key", "secret")
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPIKeyDisabledWhenEmpty(t *testing.T) {
	router := newTestRouter(t, "", &fakeDetector{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/known-faces", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecognizeNoFaces(t *testing.T) {
	router := newTestRouter(t, "", &fakeDetector{})

	body, contentType := multipartImage(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/recognize", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.RecognizeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.KnownPerson)
	assert.Empty(t, resp.NamePersons)
	assert.NotEmpty(t, resp.EventID)
}

func TestRecognizeMissingImage(t *testing.T) {
	router := newTestRouter(t, "", &fakeDetector{})

	req := httptest.NewRequest(http.MethodPost, "/api/recognize", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestKnownFaceLifecycle(t *testing.T) {
	detector := &fakeDetector{detections: []vision.Detection{{
		Box:       models.BoundingBox{Top: 0, Right: 10, Bottom: 10, Left: 0},
		Embedding: []float32{0.1, 0.2},
	}}}
	router := newTestRouter(t, "", detector)

	body, contentType := multipartImage(t, map[string]string{"name": "alice"})
	req := httptest.NewRequest(http.MethodPost, "/api/known-faces", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/known-faces", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var people []dto.KnownFaceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &people))
	require.Len(t, people, 1)
	assert.Equal(t, "alice", people[0].Name)
	assert.Equal(t, 1, people[0].ImageCount)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/known-faces/alice", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/known-faces/alice", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateKnownFaceNoFaceInImage(t *testing.T) {
	router := newTestRouter(t, "", &fakeDetector{})

	body, contentType := multipartImage(t, map[string]string{"name": "alice"})
	req := httptest.NewRequest(http.MethodPost, "/api/known-faces", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "no face found in image")
}

func TestCreateKnownFaceInvalidName(t *testing.T) {
	detector := &fakeDetector{detections: []vision.Detection{{
		Box:       models.BoundingBox{Top: 0, Right: 10, Bottom: 10, Left: 0},
		Embedding: []float32{0.1, 0.2},
	}}}
	router := newTestRouter(t, "", detector)

	body, contentType := multipartImage(t, map[string]string{"name": "a/b"})
	req := httptest.NewRequest(http.MethodPost, "/api/known-faces", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid name")
}

func TestUnknownFaceNotFound(t *testing.T) {
	router := newTestRouter(t, "", &fakeDetector{})

	req := httptest.NewRequest(http.MethodPost, "/api/unknown-faces/unknown_20200101_000000_000000/name",
		bytes.NewBufferString(`{"name":"bob"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSettingsRoundTrip(t *testing.T) {
	router := newTestRouter(t, "", &fakeDetector{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/settings", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var settings models.Settings
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &settings))
	assert.Equal(t, storage.DefaultTolerance, settings.Tolerance)

	req := httptest.NewRequest(http.MethodPost, "/api/settings",
		bytes.NewBufferString(`{"webhook_url":"http://example.com","webhook_enabled":true,"tolerance":0.6}`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &settings))
	assert.Equal(t, "http://example.com", settings.WebhookURL)
	assert.True(t, settings.WebhookEnabled)
	assert.Equal(t, 0.6, settings.Tolerance)
}

func TestRecognitionHistory(t *testing.T) {
	router := newTestRouter(t, "", &fakeDetector{})

	body, contentType := multipartImage(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/recognize", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.RecognizeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/recognition-history", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var events []dto.EventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	require.Len(t, events, 1)
	assert.Equal(t, resp.EventID, events[0].EventID)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/recognition-history/"+resp.EventID, nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/recognition-history/"+resp.EventID, nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/recognition-history/"+resp.EventID, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
