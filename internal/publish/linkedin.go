package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const linkedinBaseURL = "https://api.linkedin.com/v2"

// LinkedInPublisher posts directly to the LinkedIn API. The API has no
// scheduling endpoint, so SchedulePost fails with
// ErrSchedulingUnsupported.
type LinkedInPublisher struct {
	accessToken string
	personID    string
	baseURL     string
	httpClient  *http.Client
}

// NewLinkedInPublisher creates a direct-API publisher. personID may be
// empty, in which case it is resolved from /userinfo on first post.
func NewLinkedInPublisher(accessToken, personID string) *LinkedInPublisher {
	return &LinkedInPublisher{
		accessToken: accessToken,
		personID:    personID,
		baseURL:     linkedinBaseURL,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

// PostNow publishes a text share on the authenticated member's feed.
func (p *LinkedInPublisher) PostNow(ctx context.Context, text string) (Result, error) {
	personID, err := p.resolvePersonID(ctx)
	if err != nil {
		return Result{}, err
	}

	payload := map[string]any{
		"author":         "urn:li:person:" + personID,
		"lifecycleState": "PUBLISHED",
		"specificContent": map[string]any{
			"com.linkedin.ugc.ShareContent": map[string]any{
				"shareCommentary":    map[string]any{"text": text},
				"shareMediaCategory": "NONE",
			},
		},
		"visibility": map[string]any{
			"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC",
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return Result{}, fmt.Errorf("failed to encode share payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/ugcPosts", bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("failed to build share request: %w", err)
	}
	p.setHeaders(req)
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("linkedin request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{}, fmt.Errorf("linkedin returned status %d", resp.StatusCode)
	}

	var detail map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&detail)
	return Result{Status: "published", Detail: detail}, nil
}

// SchedulePost always fails: the direct API cannot schedule. Use the
// ayrshare or webhook backends for scheduling.
func (p *LinkedInPublisher) SchedulePost(_ context.Context, _ string, _ time.Time) (Result, error) {
	return Result{}, ErrSchedulingUnsupported
}

// Profiles returns the authenticated member.
func (p *LinkedInPublisher) Profiles(ctx context.Context) ([]Profile, error) {
	info, err := p.userInfo(ctx)
	if err != nil {
		return nil, err
	}
	return []Profile{{Service: "linkedin", Username: info.Name, ID: info.Sub}}, nil
}

// PendingPosts is always empty; the direct API has no scheduling queue.
func (p *LinkedInPublisher) PendingPosts(_ context.Context) ([]PendingPost, error) {
	return []PendingPost{}, nil
}

type linkedinUserInfo struct {
	Sub  string `json:"sub"`
	Name string `json:"name"`
}

func (p *LinkedInPublisher) resolvePersonID(ctx context.Context) (string, error) {
	if p.personID != "" {
		return p.personID, nil
	}
	info, err := p.userInfo(ctx)
	if err != nil {
		return "", err
	}
	p.personID = info.Sub
	return p.personID, nil
}

func (p *LinkedInPublisher) userInfo(ctx context.Context) (linkedinUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/userinfo", nil)
	if err != nil {
		return linkedinUserInfo{}, fmt.Errorf("failed to build userinfo request: %w", err)
	}
	p.setHeaders(req)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return linkedinUserInfo{}, fmt.Errorf("linkedin userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return linkedinUserInfo{}, fmt.Errorf("linkedin userinfo returned status %d", resp.StatusCode)
	}

	var info linkedinUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return linkedinUserInfo{}, fmt.Errorf("failed to decode userinfo: %w", err)
	}
	return info, nil
}

func (p *LinkedInPublisher) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+p.accessToken)
	req.Header.Set("Content-Type", "application/json")
}
