// Package relevance scores text for topical match against two fixed
// keyword vocabularies. Matching is deliberately naive case-insensitive
// substring containment so that results are fully reproducible: no
// stemming, no tokenization, no synonyms.
package relevance

import (
	"strings"

	"forumpulse/internal/core"
)

// Normalization caps. A thread mentioning 5 legal keywords saturates the
// legal score; 3 saturate translation; 6 total saturate the combined score.
const (
	legalCap       = 5.0
	translationCap = 3.0
	combinedCap    = 6.0
)

// Scorer computes Relevance values from text. It holds no mutable state
// and is safe for concurrent use.
type Scorer struct {
	legal       []string
	translation []string
}

// NewScorer creates a scorer over the two given vocabularies. Keywords are
// lowercased once at construction. Pass nil vocabularies to score
// everything as zero (useful in tests).
func NewScorer(legal, translation []string) *Scorer {
	return &Scorer{
		legal:       lowerAll(legal),
		translation: lowerAll(translation),
	}
}

// NewDefaultScorer creates a scorer with the built-in UAE legal and
// translation vocabularies.
func NewDefaultScorer() *Scorer {
	return NewScorer(LegalKeywords, TranslationKeywords)
}

// Score computes the relevance of text against both vocabularies.
// combined == min((legalMatches+translationMatches)/6, 1.0) exactly.
func (s *Scorer) Score(text string) core.Relevance {
	lower := strings.ToLower(text)

	legal := countMatches(lower, s.legal)
	translation := countMatches(lower, s.translation)

	return core.Relevance{
		LegalMatches:       legal,
		TranslationMatches: translation,
		Legal:              capped(float64(legal), legalCap),
		Translation:        capped(float64(translation), translationCap),
		Combined:           capped(float64(legal+translation), combinedCap),
	}
}

func countMatches(lowerText string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(lowerText, kw) {
			n++
		}
	}
	return n
}

func capped(count, cap float64) float64 {
	v := count / cap
	if v > 1.0 {
		return 1.0
	}
	return v
}

func lowerAll(keywords []string) []string {
	out := make([]string, len(keywords))
	for i, kw := range keywords {
		out[i] = strings.ToLower(kw)
	}
	return out
}
