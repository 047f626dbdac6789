package sources

import (
	"encoding/json"
	"time"

	"forumpulse/internal/core"
	"forumpulse/internal/relevance"
)

// listingPayload is the cursor-paginated envelope returned by the forum
// listing endpoints.
type listingPayload struct {
	Data struct {
		After    string         `json:"after"`
		Children []listingChild `json:"children"`
	} `json:"data"`
}

type listingChild struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// Payload kinds: t3 is a thread, t1 is a reply.
const (
	kindThread = "t3"
	kindReply  = "t1"
)

type rawThread struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Selftext      string  `json:"selftext"`
	Permalink     string  `json:"permalink"`
	Score         int     `json:"score"`
	NumComments   int     `json:"num_comments"`
	CreatedUTC    float64 `json:"created_utc"`
	Author        string  `json:"author"`
	LinkFlairText string  `json:"link_flair_text"`
}

type rawReply struct {
	ID          string  `json:"id"`
	Body        string  `json:"body"`
	Score       int     `json:"score"`
	Author      string  `json:"author"`
	CreatedUTC  float64 `json:"created_utc"`
	IsSubmitter bool    `json:"is_submitter"`
}

// normalizeThread maps a raw listing entry into the canonical Thread
// shape. Relevance is computed here, once, over title + " " + body.
func normalizeThread(raw rawThread, source, publicBaseURL string, scorer *relevance.Scorer) core.Thread {
	body := truncate(raw.Selftext, core.MaxThreadBodyLen)

	return core.Thread{
		ID:          raw.ID,
		Source:      source,
		Title:       raw.Title,
		Body:        body,
		URL:         publicBaseURL + raw.Permalink,
		Score:       raw.Score,
		NumComments: raw.NumComments,
		CreatedAt:   time.Unix(int64(raw.CreatedUTC), 0).UTC(),
		Author:      orDeleted(raw.Author),
		Relevance:   scorer.Score(raw.Title + " " + body),
		Category:    raw.LinkFlairText,
	}
}

// normalizeReply maps a raw reply into the canonical shape. It returns
// false for deleted/removed bodies, which carry no information and are
// dropped entirely.
func normalizeReply(raw rawReply, threadID string, scorer *relevance.Scorer) (core.Reply, bool) {
	if raw.Body == "" || raw.Body == "[deleted]" || raw.Body == "[removed]" {
		return core.Reply{}, false
	}
	body := truncate(raw.Body, core.MaxReplyBodyLen)

	return core.Reply{
		ID:          raw.ID,
		ThreadID:    threadID,
		Body:        body,
		Score:       raw.Score,
		Author:      orDeleted(raw.Author),
		CreatedAt:   time.Unix(int64(raw.CreatedUTC), 0).UTC(),
		Relevance:   scorer.Score(body),
		IsSubmitter: raw.IsSubmitter,
	}, true
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

func orDeleted(author string) string {
	if author == "" {
		return core.DeletedAuthor
	}
	return author
}
