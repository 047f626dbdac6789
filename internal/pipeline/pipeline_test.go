package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"forumpulse/internal/core"
)

type stubScanner struct {
	threads      []core.Thread
	replies      map[string][]core.Reply
	replyCalls   []string
	perSourceGot int
}

func (s *stubScanner) ScanAll(ctx context.Context, sourceNames []string, perSource int) []core.Thread {
	s.perSourceGot = perSource
	return s.threads
}

func (s *stubScanner) FetchReplies(ctx context.Context, source, threadID string, limit int) []core.Reply {
	s.replyCalls = append(s.replyCalls, threadID)
	return s.replies[threadID]
}

type stubGenerator struct {
	got []core.ThreadDiscussion
}

func (g *stubGenerator) GenerateBatch(ctx context.Context, discussions []core.ThreadDiscussion) []core.GeneratedPost {
	g.got = discussions
	posts := make([]core.GeneratedPost, 0, len(discussions))
	for _, d := range discussions {
		posts = append(posts, core.GeneratedPost{
			ID:          d.Thread.ID,
			Content:     "post about " + d.Thread.Title,
			SourceTitle: d.Thread.Title,
			Style:       "professional",
			GeneratedAt: time.Now().UTC(),
		})
	}
	return posts
}

func testThread(id, source string, combined float64, age time.Duration) core.Thread {
	return core.Thread{
		ID:        id,
		Source:    source,
		Title:     "thread " + id,
		Score:     50,
		CreatedAt: time.Now().UTC().Add(-age),
		Author:    "user_" + id,
		Relevance: core.Relevance{Combined: combined},
	}
}

func TestRunFullPipeline(t *testing.T) {
	scanner := &stubScanner{
		threads: []core.Thread{
			testThread("a", "dubai", 0.5, time.Hour),
			testThread("b", "UAE", 0.4, 2*time.Hour),
			testThread("c", "dubai", 0.05, time.Hour), // below threshold
		},
		replies: map[string][]core.Reply{
			"a": {{ID: "r1", ThreadID: "a", Body: "You should hire a certified translator.", Score: 8}},
		},
	}
	generator := &stubGenerator{}

	cfg := DefaultConfig()
	cfg.Sources = []string{"dubai", "UAE", "dubaijobs"}
	cfg.OutputDir = t.TempDir()

	result, err := NewPipeline(scanner, generator, cfg).Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	stats := result.Run.Stats
	if stats.TotalScanned != 3 {
		t.Errorf("TotalScanned = %d, want 3", stats.TotalScanned)
	}
	if stats.RelevantCount != 2 {
		t.Errorf("RelevantCount = %d, want 2", stats.RelevantCount)
	}
	if stats.SourcesFailed != 1 {
		t.Errorf("SourcesFailed = %d, want 1 (dubaijobs contributed nothing)", stats.SourcesFailed)
	}
	if stats.PostsRequested != 2 || stats.PostsGenerated != 2 {
		t.Errorf("posts requested/generated = %d/%d, want 2/2", stats.PostsRequested, stats.PostsGenerated)
	}

	if len(result.Run.Discussions) != 2 {
		t.Fatalf("got %d discussions, want 2", len(result.Run.Discussions))
	}
	// Thread c is below the relevance threshold and must never reach
	// the reply-loading stage.
	for _, id := range scanner.replyCalls {
		if id == "c" {
			t.Error("replies fetched for filtered-out thread c")
		}
	}

	first := result.Run.Discussions[0]
	if first.Thread.ID != "a" {
		t.Errorf("top discussion thread = %q, want a (highest relevance)", first.Thread.ID)
	}
	if len(first.Insights) != 1 || !strings.Contains(first.Insights[0], "certified translator") {
		t.Errorf("insights = %v, want one snippet about the certified translator", first.Insights)
	}
}

func TestRunWritesArtifacts(t *testing.T) {
	scanner := &stubScanner{
		threads: []core.Thread{testThread("a", "dubai", 0.6, time.Hour)},
	}

	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Sources = []string{"dubai"}
	cfg.OutputDir = dir

	result, err := NewPipeline(scanner, &stubGenerator{}, cfg).Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	for _, path := range []string{result.Artifacts.ResultsJSON, result.Artifacts.PostsText, result.Artifacts.SummaryMD} {
		if path == "" {
			t.Fatal("expected all three artifacts to be written")
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("artifact %s not on disk: %v", filepath.Base(path), err)
		}
	}
}

func TestRunSkipGeneration(t *testing.T) {
	scanner := &stubScanner{
		threads: []core.Thread{testThread("a", "dubai", 0.6, time.Hour)},
	}
	generator := &stubGenerator{}

	cfg := DefaultConfig()
	cfg.Sources = []string{"dubai"}
	cfg.OutputDir = t.TempDir()
	cfg.SkipGeneration = true

	result, err := NewPipeline(scanner, generator, cfg).Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if generator.got != nil {
		t.Error("generator was called despite SkipGeneration")
	}
	if len(result.Run.Posts) != 0 || result.Run.Stats.PostsRequested != 0 {
		t.Error("expected no posts when generation is skipped")
	}
	if result.Artifacts.PostsText != "" {
		t.Error("posts artifact should not be written when no posts were generated")
	}
}

func TestRunEmptyScanFails(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sources = []string{"dubai"}
	cfg.OutputDir = t.TempDir()

	_, err := NewPipeline(&stubScanner{}, nil, cfg).Run(context.Background())
	if err == nil {
		t.Fatal("expected error when scan produces no threads")
	}
}

func TestRunCapsAtMaxPosts(t *testing.T) {
	scanner := &stubScanner{}
	for i := 0; i < 15; i++ {
		scanner.threads = append(scanner.threads,
			testThread(string(rune('a'+i)), "dubai", 0.5, time.Duration(i)*time.Hour))
	}

	cfg := DefaultConfig()
	cfg.Sources = []string{"dubai"}
	cfg.OutputDir = t.TempDir()
	cfg.MaxPosts = 4

	result, err := NewPipeline(scanner, &stubGenerator{}, cfg).Run(context.Background())
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(result.Run.Discussions) != 4 {
		t.Errorf("got %d discussions, want 4 (MaxPosts cap)", len(result.Run.Discussions))
	}
	if result.Run.Stats.RelevantCount != 15 {
		t.Errorf("RelevantCount = %d, want 15 (cap applies after counting)", result.Run.Stats.RelevantCount)
	}
}
