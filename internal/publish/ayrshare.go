package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const ayrshareBaseURL = "https://app.ayrshare.com/api"

// AyrsharePublisher posts through the Ayrshare API. It is the only backend
// with full capability coverage: scheduling and pending-post listing both
// work.
type AyrsharePublisher struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewAyrsharePublisher creates an Ayrshare-backed publisher.
func NewAyrsharePublisher(apiKey string) *AyrsharePublisher {
	return &AyrsharePublisher{
		apiKey:     apiKey,
		baseURL:    ayrshareBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type ayrsharePostRequest struct {
	Post         string   `json:"post"`
	Platforms    []string `json:"platforms"`
	ScheduleDate string   `json:"scheduleDate,omitempty"`
}

// PostNow publishes immediately to LinkedIn.
func (p *AyrsharePublisher) PostNow(ctx context.Context, text string) (Result, error) {
	return p.post(ctx, ayrsharePostRequest{Post: text, Platforms: []string{"linkedin"}})
}

// SchedulePost schedules the text for publishing at the given time.
func (p *AyrsharePublisher) SchedulePost(ctx context.Context, text string, at time.Time) (Result, error) {
	return p.post(ctx, ayrsharePostRequest{
		Post:         text,
		Platforms:    []string{"linkedin"},
		ScheduleDate: at.Format(time.RFC3339),
	})
}

func (p *AyrsharePublisher) post(ctx context.Context, reqBody ayrsharePostRequest) (Result, error) {
	var resp map[string]any
	if err := p.call(ctx, http.MethodPost, "/post", reqBody, &resp); err != nil {
		return Result{}, err
	}
	status, _ := resp["status"].(string)
	if status == "" {
		status = "sent"
	}
	return Result{Status: status, Detail: resp}, nil
}

// Profiles lists the social profiles connected to the Ayrshare account.
func (p *AyrsharePublisher) Profiles(ctx context.Context) ([]Profile, error) {
	var resp struct {
		Profiles []struct {
			Service  string `json:"service"`
			Username string `json:"formatted_username"`
			ID       string `json:"id"`
		} `json:"profiles"`
	}
	if err := p.call(ctx, http.MethodGet, "/profiles", nil, &resp); err != nil {
		return nil, err
	}

	profiles := make([]Profile, 0, len(resp.Profiles))
	for _, raw := range resp.Profiles {
		profiles = append(profiles, Profile{Service: raw.Service, Username: raw.Username, ID: raw.ID})
	}
	return profiles, nil
}

// PendingPosts lists scheduled posts not yet published.
func (p *AyrsharePublisher) PendingPosts(ctx context.Context) ([]PendingPost, error) {
	var resp struct {
		Posts []struct {
			ID           string `json:"id"`
			Post         string `json:"post"`
			ScheduleDate string `json:"scheduleDate"`
		} `json:"posts"`
	}
	if err := p.call(ctx, http.MethodGet, "/history?status=scheduled", nil, &resp); err != nil {
		return nil, err
	}

	pending := make([]PendingPost, 0, len(resp.Posts))
	for _, raw := range resp.Posts {
		at, _ := time.Parse(time.RFC3339, raw.ScheduleDate)
		pending = append(pending, PendingPost{ID: raw.ID, Text: raw.Post, ScheduledAt: at})
	}
	return pending, nil
}

func (p *AyrsharePublisher) call(ctx context.Context, method, path string, reqBody, out any) error {
	var body *bytes.Reader
	if reqBody != nil {
		encoded, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to encode ayrshare request: %w", err)
		}
		body = bytes.NewReader(encoded)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build ayrshare request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ayrshare request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("ayrshare returned status %d", resp.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode ayrshare response: %w", err)
		}
	}
	return nil
}
