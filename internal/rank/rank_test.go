package rank

import (
	"testing"
	"time"

	"forumpulse/internal/core"
)

func thread(id string, combined float64, score, comments int, age time.Duration, now time.Time) core.Thread {
	return core.Thread{
		ID:          id,
		Score:       score,
		NumComments: comments,
		CreatedAt:   now.Add(-age),
		Relevance:   core.Relevance{Combined: combined},
	}
}

func ids(threads []core.Thread) []string {
	out := make([]string, len(threads))
	for i, t := range threads {
		out[i] = t.ID
	}
	return out
}

func TestSortRelevance(t *testing.T) {
	now := time.Now().UTC()
	threads := []core.Thread{
		thread("low", 0.2, 0, 0, time.Hour, now),
		thread("high", 0.9, 0, 0, time.Hour, now),
		thread("mid", 0.5, 0, 0, time.Hour, now),
	}

	got := ids(SortAt(threads, OrderRelevance, now))
	want := []string{"high", "mid", "low"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected order %v, got %v", want, got)
		}
	}
}

func TestSortDate(t *testing.T) {
	now := time.Now().UTC()
	threads := []core.Thread{
		thread("old", 1.0, 0, 0, 72*time.Hour, now),
		thread("new", 0.0, 0, 0, time.Hour, now),
	}

	if got := ids(SortAt(threads, OrderDate, now)); got[0] != "new" {
		t.Errorf("Expected newest first, got %v", got)
	}
}

func TestSortEngagement(t *testing.T) {
	now := time.Now().UTC()
	threads := []core.Thread{
		thread("quiet", 1.0, 1, 1, time.Hour, now),
		thread("busy", 0.0, 40, 25, time.Hour, now),
	}

	if got := ids(SortAt(threads, OrderEngagement, now)); got[0] != "busy" {
		t.Errorf("Expected highest engagement first, got %v", got)
	}
}

func TestDecayFloorRanking(t *testing.T) {
	// A 40-day-old thread hits the 0.1 recency floor: 0.1×1.0 = 0.1.
	// A 2-day-old thread with half the relevance keeps (1−2/30)×0.5 ≈ 0.467
	// and must rank above it.
	now := time.Now().UTC()
	old := thread("old", 1.0, 0, 0, 40*24*time.Hour, now)
	fresh := thread("fresh", 0.5, 0, 0, 2*24*time.Hour, now)

	if CompositeScore(old, now) >= CompositeScore(fresh, now) {
		t.Fatalf("Expected fresh (%.3f) above floored old (%.3f)",
			CompositeScore(fresh, now), CompositeScore(old, now))
	}

	if got := ids(SortAt([]core.Thread{old, fresh}, OrderRelevanceDate, now)); got[0] != "fresh" {
		t.Errorf("Expected fresh thread ranked first, got %v", got)
	}
}

func TestCompositeScoreEngagementTerm(t *testing.T) {
	now := time.Now().UTC()
	th := thread("a", 0.5, 300, 0, 0, now)

	want := 0.5 + 300.0/1000.0
	if got := CompositeScore(th, now); got != want {
		t.Errorf("Expected composite %.3f, got %.3f", want, got)
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	now := time.Now().UTC()
	threads := []core.Thread{
		thread("b", 0.1, 0, 0, time.Hour, now),
		thread("a", 0.9, 0, 0, time.Hour, now),
	}

	SortAt(threads, OrderRelevance, now)
	if threads[0].ID != "b" {
		t.Error("Sort must not mutate its input slice")
	}
}

func TestFilterByCategory(t *testing.T) {
	threads := []core.Thread{
		{ID: "a", Relevance: core.Relevance{Combined: 0.5, Legal: 0.8, Translation: 0.1}},
		{ID: "b", Relevance: core.Relevance{Combined: 0.5, Legal: 0.2, Translation: 0.9}},
	}

	legal := Filter(threads, 0.5, CategoryLegal)
	if len(legal) != 1 || legal[0].ID != "a" {
		t.Errorf("Expected only thread a past the legal filter, got %v", ids(legal))
	}

	translation := Filter(threads, 0.5, CategoryTranslation)
	if len(translation) != 1 || translation[0].ID != "b" {
		t.Errorf("Expected only thread b past the translation filter, got %v", ids(translation))
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	threads := []core.Thread{
		{ID: "keep1", Relevance: core.Relevance{Combined: 0.7}},
		{ID: "drop", Relevance: core.Relevance{Combined: 0.1}},
		{ID: "keep2", Relevance: core.Relevance{Combined: 0.3}},
	}

	once := Filter(threads, 0.2, CategoryCombined)
	twice := Filter(once, 0.2, CategoryCombined)

	if len(once) != 2 || len(twice) != 2 {
		t.Fatalf("Expected 2 survivors both times, got %d and %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].ID != twice[i].ID {
			t.Errorf("Filtering an already-filtered list changed order: %v vs %v", ids(once), ids(twice))
		}
	}
}

func TestRankThenFilterScenario(t *testing.T) {
	// 12 threads: 6 at or above combined 0.2, 6 below. Filtering the
	// ranked list keeps exactly the 6 qualifying ones, still in composite
	// order.
	now := time.Now().UTC()
	var threads []core.Thread
	for i := 0; i < 6; i++ {
		threads = append(threads, thread("q"+string(rune('a'+i)), 0.2+float64(i)*0.1, 0, 0, time.Duration(i)*24*time.Hour, now))
	}
	for i := 0; i < 6; i++ {
		threads = append(threads, thread("x"+string(rune('a'+i)), 0.05, 0, 0, time.Duration(i)*24*time.Hour, now))
	}

	result := Filter(SortAt(threads, OrderRelevanceDate, now), 0.2, CategoryCombined)

	if len(result) != 6 {
		t.Fatalf("Expected exactly 6 qualifying threads, got %d", len(result))
	}
	for i := 1; i < len(result); i++ {
		if CompositeScore(result[i-1], now) < CompositeScore(result[i], now) {
			t.Errorf("Result not in composite order at index %d", i)
		}
	}
}
