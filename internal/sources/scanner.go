// Package sources discovers candidate threads across the configured forums
// and normalizes them into the canonical record shape.
package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"forumpulse/internal/core"
	"forumpulse/internal/logger"
	"forumpulse/internal/relevance"
)

// DefaultSources is the fixed set of UAE community forums scanned when no
// override is configured.
var DefaultSources = []string{"dubai", "abudhabi", "UAE", "DubaiPetrolHeads", "dubaijobs"}

const (
	// DefaultBaseURL serves the JSON endpoints; publicBaseURL builds the
	// permalinks embedded in reports.
	DefaultBaseURL = "https://www.reddit.com"
	publicBaseURL  = "https://reddit.com"

	// pageSize is the fixed listing page size of the source API.
	pageSize = 25
)

// Sort orders offered by the listing endpoints.
const (
	SortNew = "new"
	SortHot = "hot"
)

// Fetcher retrieves a JSON page, returning nil when nothing could be
// fetched. Satisfied by fetch.Client.
type Fetcher interface {
	FetchPage(ctx context.Context, url string) json.RawMessage
}

// Scanner drives the fetcher across sources and sort orders, merging and
// deduplicating the discovered threads.
type Scanner struct {
	fetcher Fetcher
	scorer  *relevance.Scorer
	baseURL string
	log     *slog.Logger
}

// NewScanner creates a scanner over the default base URL.
func NewScanner(fetcher Fetcher, scorer *relevance.Scorer) *Scanner {
	return &Scanner{
		fetcher: fetcher,
		scorer:  scorer,
		baseURL: DefaultBaseURL,
		log:     logger.Get(),
	}
}

// NewScannerWithBaseURL creates a scanner against a specific host, used by
// tests to point at a local server.
func NewScannerWithBaseURL(fetcher Fetcher, scorer *relevance.Scorer, baseURL string) *Scanner {
	s := NewScanner(fetcher, scorer)
	s.baseURL = baseURL
	return s
}

// Probe checks that a source's listing endpoint is reachable with a
// single one-item request. Used as a pre-scan connectivity signal only;
// a failed probe never blocks the scan itself.
func (s *Scanner) Probe(ctx context.Context, source string) bool {
	url := fmt.Sprintf("%s/r/%s/%s.json?limit=1", s.baseURL, source, SortNew)
	return s.fetcher.FetchPage(ctx, url) != nil
}

// ScanSource pages through one source in one sort order until limit
// threads are collected or the source reports no further page token.
func (s *Scanner) ScanSource(ctx context.Context, source string, limit int, sortOrder string) []core.Thread {
	var threads []core.Thread
	after := ""

	for len(threads) < limit {
		url := fmt.Sprintf("%s/r/%s/%s.json?limit=%d", s.baseURL, source, sortOrder, pageSize)
		if after != "" {
			url += "&after=" + after
		}

		payload := s.fetcher.FetchPage(ctx, url)
		if payload == nil {
			break
		}

		var listing listingPayload
		if err := json.Unmarshal(payload, &listing); err != nil {
			s.log.Warn("Malformed listing payload", "source", source, "error", err.Error())
			break
		}
		if len(listing.Data.Children) == 0 {
			break
		}

		for _, child := range listing.Data.Children {
			if child.Kind != kindThread {
				continue
			}
			var raw rawThread
			if err := json.Unmarshal(child.Data, &raw); err != nil {
				s.log.Warn("Skipping malformed thread entry", "source", source, "error", err.Error())
				continue
			}
			threads = append(threads, normalizeThread(raw, source, publicBaseURL, s.scorer))
			if len(threads) >= limit {
				break
			}
		}

		after = listing.Data.After
		if after == "" {
			break
		}
	}

	return threads
}

// ScanAll scans every source for its most recent threads plus a half-sized
// batch of its highest-engagement threads, deduplicating by thread ID
// within and across sources. The first-seen record wins. A dead source
// contributes nothing but never aborts the scan.
func (s *Scanner) ScanAll(ctx context.Context, sourceNames []string, perSource int) []core.Thread {
	var all []core.Thread
	seen := make(map[string]bool)

	appendNew := func(threads []core.Thread) int {
		added := 0
		for _, t := range threads {
			if seen[t.ID] {
				continue
			}
			seen[t.ID] = true
			all = append(all, t)
			added++
		}
		return added
	}

	for _, source := range sourceNames {
		s.log.Info("Scanning source", "source", source)

		recent := s.ScanSource(ctx, source, perSource, SortNew)
		hot := s.ScanSource(ctx, source, perSource/2, SortHot)

		added := appendNew(recent) + appendNew(hot)
		if added == 0 {
			s.log.Warn("Source contributed no threads", "source", source)
			continue
		}
		s.log.Info("Source scanned", "source", source, "threads", added)
	}

	return all
}

// FetchReplies retrieves up to limit top replies for a thread, sorted by
// approval score descending. A thread may legitimately come back with zero
// replies loaded.
func (s *Scanner) FetchReplies(ctx context.Context, source, threadID string, limit int) []core.Reply {
	url := fmt.Sprintf("%s/r/%s/comments/%s.json?limit=%d&sort=top", s.baseURL, source, threadID, limit)

	payload := s.fetcher.FetchPage(ctx, url)
	if payload == nil {
		return nil
	}

	// The detail endpoint returns a two-element structure; element 1
	// holds the reply tree.
	var pages []listingPayload
	if err := json.Unmarshal(payload, &pages); err != nil || len(pages) < 2 {
		s.log.Warn("Malformed thread detail payload", "thread", threadID)
		return nil
	}

	var replies []core.Reply
	for _, child := range pages[1].Data.Children {
		if child.Kind != kindReply {
			continue
		}
		var raw rawReply
		if err := json.Unmarshal(child.Data, &raw); err != nil {
			continue
		}
		if reply, ok := normalizeReply(raw, threadID, s.scorer); ok {
			replies = append(replies, reply)
		}
		if len(replies) >= limit {
			break
		}
	}

	sort.SliceStable(replies, func(i, j int) bool {
		return replies[i].Score > replies[j].Score
	})

	return replies
}
