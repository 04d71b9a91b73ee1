// Package notify delivers fire-and-forget webhook notifications when a
// recognition call identifies at least one enrolled person. Delivery
// failures are logged and never propagate into the recognition result.
package notify

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Webhook calls a configured URL with the recognized names as a
// comma-joined "tag" query parameter.
type Webhook struct {
	client *http.Client
}

func NewWebhook() *Webhook {
	return &Webhook{
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

// Notify performs a GET against rawURL with tag=<comma-joined names>.
// names should already be deduplicated and sorted by the caller.
func (w *Webhook) Notify(ctx context.Context, rawURL string, names []string) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" || len(names) == 0 {
		return
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		slog.Warn("webhook URL invalid", "url", rawURL, "error", err)
		return
	}

	q := u.Query()
	q.Set("tag", strings.Join(names, ","))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		slog.Warn("webhook request", "error", err)
		return
	}

	resp, err := w.client.Do(req)
	if err != nil {
		slog.Warn("webhook call failed", "url", rawURL, "error", err)
		return
	}
	defer resp.Body.Close()

	slog.Info("webhook called", "url", rawURL, "status", resp.StatusCode)
}
