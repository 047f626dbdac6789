// Package insights pulls short actionable-advice snippets out of thread
// replies. Detection is literal substring containment against a fixed
// phrase list; behavior parity with that heuristic matters more than
// linguistic accuracy, so no NLP.
package insights

import (
	"strings"

	"forumpulse/internal/core"
)

const (
	// minReplyScore gates which replies are considered at all.
	minReplyScore = 5
	// maxInsights caps the extracted list.
	maxInsights = 3
	// maxSnippetLen caps each snippet.
	maxSnippetLen = 200
)

// adviceMarkers are the phrases that qualify a reply as carrying advice.
var adviceMarkers = []string{
	"make sure", "don't forget", "important", "tip:",
	"pro tip", "advice", "recommend", "should", "must",
}

// Extract returns up to 3 insight snippets from replies, in input order.
// Only replies with approval score >= 5 are considered. A snippet is the
// reply body up to its first period, capped at 200 characters; splitting on
// the period can truncate mid-abbreviation, which is accepted imprecision.
func Extract(replies []core.Reply) []string {
	var out []string
	for _, reply := range replies {
		if reply.Score < minReplyScore {
			continue
		}
		if !containsMarker(reply.Body) {
			continue
		}
		out = append(out, snippet(reply.Body))
		if len(out) == maxInsights {
			break
		}
	}
	return out
}

func containsMarker(body string) bool {
	lower := strings.ToLower(body)
	for _, marker := range adviceMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func snippet(body string) string {
	if i := strings.Index(body, "."); i >= 0 {
		body = body[:i]
	}
	if len(body) > maxSnippetLen {
		body = body[:maxSnippetLen]
	}
	return body
}
