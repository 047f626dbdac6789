// Package fetch issues polite, retrying GET requests against the source
// forums' public JSON endpoints.
package fetch

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"time"

	"forumpulse/internal/logger"
)

const (
	// maxRetries is the per-call retry budget. Each FetchPage call starts
	// fresh; there is no circuit breaker across calls.
	maxRetries = 3

	// Politeness delay bounds applied before every request. These are a
	// fixed contract with the upstream forums, not tunables.
	minRequestDelay = 1500 * time.Millisecond
	maxRequestDelay = 3000 * time.Millisecond

	// rateLimitUnit scales the escalating backoff on HTTP 429:
	// attempt × rateLimitUnit.
	rateLimitUnit = 10 * time.Second

	// blockedCooldown is the wait after HTTP 403 before retrying with a
	// rotated identity.
	blockedCooldown = 5 * time.Second

	// transientCooldown is the wait after any other failure.
	transientCooldown = 3 * time.Second

	requestTimeout = 15 * time.Second
)

// userAgents is the pool of browser identities rotated on rate-limiting
// or blocking.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.2 Safari/605.1.15",
}

// Client fetches JSON pages with retry, backoff and identity rotation.
// It owns its own rotation and delay state; construct one per pipeline
// run rather than sharing process-wide.
type Client struct {
	httpClient *http.Client
	agents     []string
	agentIdx   int
	rng        *rand.Rand
	sleep      func(time.Duration) // replaceable in tests
	log        *slog.Logger
}

// NewClient creates a fetch client with the default identity pool and
// politeness settings.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		agents:     userAgents,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		sleep:      time.Sleep,
		log:        logger.Get(),
	}
}

// FetchPage GETs url and returns the raw JSON payload. After the retry
// budget is exhausted it returns nil: callers must treat nil as "zero
// items available", not as a fatal error.
func (c *Client) FetchPage(ctx context.Context, url string) json.RawMessage {
	for attempt := 0; attempt < maxRetries; attempt++ {
		c.politenessDelay()

		body, status, err := c.get(ctx, url)
		if err != nil {
			c.log.Warn("Request failed", "url", url, "attempt", attempt+1, "error", err.Error())
			c.sleep(transientCooldown)
			continue
		}

		switch status {
		case http.StatusOK:
			if !json.Valid(body) {
				c.log.Warn("Response is not valid JSON", "url", url, "attempt", attempt+1)
				c.sleep(transientCooldown)
				continue
			}
			return json.RawMessage(body)
		case http.StatusTooManyRequests:
			wait := time.Duration(attempt+1) * rateLimitUnit
			c.log.Warn("Rate limited", "url", url, "wait", wait.String())
			c.sleep(wait)
			c.rotateIdentity()
		case http.StatusForbidden:
			c.log.Warn("Access forbidden, rotating identity", "url", url)
			c.rotateIdentity()
			c.sleep(blockedCooldown)
		default:
			c.log.Warn("Unexpected status", "url", url, "status", status)
			c.sleep(transientCooldown)
		}
	}

	c.log.Warn("Retry budget exhausted", "url", url)
	return nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", c.agents[c.agentIdx])
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	return body, resp.StatusCode, nil
}

func (c *Client) politenessDelay() {
	span := maxRequestDelay - minRequestDelay
	c.sleep(minRequestDelay + time.Duration(c.rng.Int63n(int64(span))))
}

func (c *Client) rotateIdentity() {
	c.agentIdx = (c.agentIdx + 1) % len(c.agents)
}
