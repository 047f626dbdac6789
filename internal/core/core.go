package core

import "time"

// DeletedAuthor is the sentinel used when a source reports no author for a
// thread or reply.
const DeletedAuthor = "[deleted]"

const (
	// MaxThreadBodyLen bounds the stored body of a thread.
	MaxThreadBodyLen = 2000
	// MaxReplyBodyLen bounds the stored body of a reply.
	MaxReplyBodyLen = 1500
)

// Relevance holds the keyword-match scores computed for a piece of text.
// It is attached to a Thread or Reply at normalization time and never
// recomputed afterwards.
type Relevance struct {
	LegalMatches       int     `json:"legal_matches"`       // Raw match count against the legal vocabulary
	TranslationMatches int     `json:"translation_matches"` // Raw match count against the translation vocabulary
	Legal              float64 `json:"legal"`               // min(legal_matches/5, 1.0)
	Translation        float64 `json:"translation"`         // min(translation_matches/3, 1.0)
	Combined           float64 `json:"combined"`            // min((legal+translation)/6, 1.0)
}

// Thread represents a discussion thread discovered in a source forum.
type Thread struct {
	ID          string    `json:"id"`           // Source-scoped identifier, used as the dedup key
	Source      string    `json:"source"`       // Forum/channel the thread was found in
	Title       string    `json:"title"`        // Thread title
	Body        string    `json:"body"`         // Self-text, empty for link-only threads, truncated
	URL         string    `json:"url"`          // Permalink to the thread
	Score       int       `json:"score"`        // Approval score reported by the source
	NumComments int       `json:"num_comments"` // Reply count reported by the source
	CreatedAt   time.Time `json:"created_at"`   // Creation time (UTC)
	Author      string    `json:"author"`       // Author name or DeletedAuthor
	Relevance   Relevance `json:"relevance"`    // Computed over title + " " + body
	Category    string    `json:"category"`     // Optional source-supplied classification (flair)
}

// Reply represents a response within a thread's discussion.
type Reply struct {
	ID          string    `json:"id"`
	ThreadID    string    `json:"thread_id"`
	Body        string    `json:"body"` // Truncated; deleted/removed replies are dropped entirely
	Score       int       `json:"score"`
	Author      string    `json:"author"`
	CreatedAt   time.Time `json:"created_at"`
	Relevance   Relevance `json:"relevance"` // Computed over body alone
	IsSubmitter bool      `json:"is_submitter"`
}

// ThreadDiscussion bundles a thread with its loaded replies and the insight
// snippets extracted from them.
type ThreadDiscussion struct {
	Thread   Thread   `json:"thread"`
	Replies  []Reply  `json:"replies"`
	Insights []string `json:"insights"`
}

// GeneratedPost is a ready-to-publish social post derived from a thread.
// It is created by the generation orchestrator and never mutated.
type GeneratedPost struct {
	ID          string    `json:"id"`
	Content     string    `json:"content"`
	SourceTitle string    `json:"source_title"`
	SourceURL   string    `json:"source_url"`
	Style       string    `json:"style"`
	GeneratedAt time.Time `json:"generated_at"`
}

// RunStats tracks per-stage counts for a pipeline run.
type RunStats struct {
	TotalScanned   int `json:"total_scanned"`
	RelevantCount  int `json:"relevant_count"`
	PostsRequested int `json:"posts_requested"`
	PostsGenerated int `json:"posts_generated"`
	SourcesFailed  int `json:"sources_failed"`
}

// RunResult is the full output of one pipeline run, serialized by the
// report assembler.
type RunResult struct {
	RunTimestamp time.Time          `json:"run_timestamp"`
	Stats        RunStats           `json:"stats"`
	Discussions  []ThreadDiscussion `json:"posts"`
	Posts        []GeneratedPost    `json:"generated_posts"`
}
