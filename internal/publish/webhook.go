package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// WebhookPublisher posts through a catch-hook automation (Zapier or
// Make.com) that forwards to LinkedIn. The hook accepts scheduling
// payloads; the automation on the other side owns the actual timing.
type WebhookPublisher struct {
	platform   string
	webhookURL string
	httpClient *http.Client
}

// NewZapierPublisher creates a publisher sending to a Zapier webhook.
func NewZapierPublisher(webhookURL string) *WebhookPublisher {
	return newWebhookPublisher("zapier", webhookURL)
}

// NewMakePublisher creates a publisher sending to a Make.com webhook.
func NewMakePublisher(webhookURL string) *WebhookPublisher {
	return newWebhookPublisher("make", webhookURL)
}

func newWebhookPublisher(platform, webhookURL string) *WebhookPublisher {
	return &WebhookPublisher{
		platform:   platform,
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type webhookPayload struct {
	Text        string `json:"text"`
	Timestamp   string `json:"timestamp"`
	Action      string `json:"action"`
	ScheduledAt string `json:"scheduled_at,omitempty"`
}

// PostNow sends the text to the webhook for immediate publishing.
func (p *WebhookPublisher) PostNow(ctx context.Context, text string) (Result, error) {
	return p.send(ctx, webhookPayload{
		Text:      text,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Action:    "post_now",
	})
}

// SchedulePost sends the text with schedule metadata; the automation
// handles the delay.
func (p *WebhookPublisher) SchedulePost(ctx context.Context, text string, at time.Time) (Result, error) {
	return p.send(ctx, webhookPayload{
		Text:        text,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Action:      "schedule",
		ScheduledAt: at.Format(time.RFC3339),
	})
}

// Profiles reports a single synthetic profile; webhooks cannot enumerate
// connected accounts.
func (p *WebhookPublisher) Profiles(_ context.Context) ([]Profile, error) {
	return []Profile{{Service: "linkedin", Username: "via " + p.platform, ID: p.platform}}, nil
}

// PendingPosts is always empty; webhooks have no visibility into the
// automation's queue.
func (p *WebhookPublisher) PendingPosts(_ context.Context) ([]PendingPost, error) {
	return []PendingPost{}, nil
}

func (p *WebhookPublisher) send(ctx context.Context, payload webhookPayload) (Result, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Result{}, fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.webhookURL, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{}, fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return Result{
		Status: "sent_to_" + p.platform,
		Detail: map[string]any{"action": payload.Action},
	}, nil
}
