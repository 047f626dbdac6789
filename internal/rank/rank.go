// Package rank orders and filters scored threads. Ordering and filtering
// are independent stages: filtering never re-sorts.
package rank

import (
	"sort"
	"time"

	"forumpulse/internal/core"
)

// Order selects one of the total orderings over threads.
type Order string

const (
	// OrderRelevance sorts by descending combined relevance.
	OrderRelevance Order = "relevance"
	// OrderDate sorts by descending creation time.
	OrderDate Order = "date"
	// OrderRelevanceDate sorts by relevance discounted linearly with age,
	// plus a small engagement term. The default ordering.
	OrderRelevanceDate Order = "relevance_date"
	// OrderEngagement sorts by descending reply count + approval score.
	OrderEngagement Order = "engagement"
)

// Category names the relevance field a filter applies to.
type Category string

const (
	CategoryCombined    Category = "combined"
	CategoryLegal       Category = "legal"
	CategoryTranslation Category = "translation"
)

// Decay parameters for OrderRelevanceDate: relevance fades linearly to the
// floor over decayWindowDays, so month-plus-old threads are discounted but
// never fully zeroed.
const (
	decayWindowDays = 30.0
	decayFloor      = 0.1
	engagementScale = 1000.0
)

// CompositeScore is the OrderRelevanceDate key:
// combined × max(0.1, 1 − ageDays/30) + score/1000.
func CompositeScore(t core.Thread, now time.Time) float64 {
	ageDays := float64(int(now.Sub(t.CreatedAt).Hours() / 24))
	recency := 1.0 - ageDays/decayWindowDays
	if recency < decayFloor {
		recency = decayFloor
	}
	return t.Relevance.Combined*recency + float64(t.Score)/engagementScale
}

// Sort returns a new slice ordered by the chosen ordering, evaluated at the
// current time. Unknown orderings return the input order unchanged.
func Sort(threads []core.Thread, order Order) []core.Thread {
	return SortAt(threads, order, time.Now().UTC())
}

// SortAt is Sort with an explicit evaluation time, so decay-based ordering
// is reproducible in tests.
func SortAt(threads []core.Thread, order Order, now time.Time) []core.Thread {
	out := make([]core.Thread, len(threads))
	copy(out, threads)

	switch order {
	case OrderRelevance:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Relevance.Combined > out[j].Relevance.Combined
		})
	case OrderDate:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	case OrderRelevanceDate:
		sort.SliceStable(out, func(i, j int) bool {
			return CompositeScore(out[i], now) > CompositeScore(out[j], now)
		})
	case OrderEngagement:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].NumComments+out[i].Score > out[j].NumComments+out[j].Score
		})
	}

	return out
}

// Filter keeps threads whose chosen relevance field is at least minScore,
// preserving input order.
func Filter(threads []core.Thread, minScore float64, category Category) []core.Thread {
	var out []core.Thread
	for _, t := range threads {
		if fieldFor(t.Relevance, category) >= minScore {
			out = append(out, t)
		}
	}
	return out
}

func fieldFor(rel core.Relevance, category Category) float64 {
	switch category {
	case CategoryLegal:
		return rel.Legal
	case CategoryTranslation:
		return rel.Translation
	default:
		return rel.Combined
	}
}
