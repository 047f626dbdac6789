// Package publish sends generated posts to LinkedIn through one of several
// interchangeable backends. Backends differ in capability: scheduling in
// particular is an explicit error on backends that cannot do it, never a
// silent fallback to posting immediately.
package publish

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrSchedulingUnsupported is returned by backends that cannot schedule
// posts for later. Callers must surface it, not downgrade to PostNow.
var ErrSchedulingUnsupported = errors.New("this backend does not support scheduling")

// ErrNoCredentials indicates that no backend credentials were configured.
var ErrNoCredentials = errors.New(`no publishing credentials found; set one of:
  ZAPIER_WEBHOOK_URL (free tier)
  MAKE_WEBHOOK_URL (free tier)
  LINKEDIN_ACCESS_TOKEN (free, tokens expire every 60 days)
  AYRSHARE_API_KEY (paid)`)

// Profile describes a connected social account.
type Profile struct {
	Service  string `json:"service"`
	Username string `json:"username"`
	ID       string `json:"id"`
}

// PendingPost is a post scheduled but not yet published.
type PendingPost struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

// Result is the opaque status object a backend returns for a publish call.
type Result struct {
	Status string         `json:"status"`
	Detail map[string]any `json:"detail,omitempty"`
}

// Publisher is the capability surface shared by all posting backends.
type Publisher interface {
	// PostNow publishes text immediately.
	PostNow(ctx context.Context, text string) (Result, error)
	// SchedulePost publishes text at a later time, or returns
	// ErrSchedulingUnsupported.
	SchedulePost(ctx context.Context, text string, at time.Time) (Result, error)
	// Profiles lists the connected accounts, as far as the backend knows.
	Profiles(ctx context.Context) ([]Profile, error)
	// PendingPosts lists scheduled-but-unpublished posts; backends without
	// that visibility return an empty list.
	PendingPosts(ctx context.Context) ([]PendingPost, error)
}

// Credentials carries the per-backend secrets loaded from configuration.
type Credentials struct {
	ZapierWebhookURL    string
	MakeWebhookURL      string
	AyrshareAPIKey      string
	LinkedInAccessToken string
	LinkedInPersonID    string
}

// Select resolves a backend by name, or auto-detects from available
// credentials when method is "auto" (free options first). Missing
// credentials fail fast: a retry never fixes them.
func Select(method string, creds Credentials) (Publisher, error) {
	switch method {
	case "auto", "":
		switch {
		case creds.ZapierWebhookURL != "":
			return NewZapierPublisher(creds.ZapierWebhookURL), nil
		case creds.MakeWebhookURL != "":
			return NewMakePublisher(creds.MakeWebhookURL), nil
		case creds.LinkedInAccessToken != "":
			return NewLinkedInPublisher(creds.LinkedInAccessToken, creds.LinkedInPersonID), nil
		case creds.AyrshareAPIKey != "":
			return NewAyrsharePublisher(creds.AyrshareAPIKey), nil
		default:
			return nil, ErrNoCredentials
		}
	case "zapier":
		if creds.ZapierWebhookURL == "" {
			return nil, fmt.Errorf("zapier backend selected but ZAPIER_WEBHOOK_URL is not set")
		}
		return NewZapierPublisher(creds.ZapierWebhookURL), nil
	case "make":
		if creds.MakeWebhookURL == "" {
			return nil, fmt.Errorf("make backend selected but MAKE_WEBHOOK_URL is not set")
		}
		return NewMakePublisher(creds.MakeWebhookURL), nil
	case "linkedin":
		if creds.LinkedInAccessToken == "" {
			return nil, fmt.Errorf("linkedin backend selected but LINKEDIN_ACCESS_TOKEN is not set")
		}
		return NewLinkedInPublisher(creds.LinkedInAccessToken, creds.LinkedInPersonID), nil
	case "ayrshare":
		if creds.AyrshareAPIKey == "" {
			return nil, fmt.Errorf("ayrshare backend selected but AYRSHARE_API_KEY is not set")
		}
		return NewAyrsharePublisher(creds.AyrshareAPIKey), nil
	default:
		return nil, fmt.Errorf("unknown publishing method %q (use: auto, zapier, make, linkedin, ayrshare)", method)
	}
}
