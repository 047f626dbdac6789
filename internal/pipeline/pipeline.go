// Package pipeline orchestrates the end-to-end scan workflow: source
// scanning, ranking, insight extraction, post generation, and report
// output. Each stage degrades gracefully so one bad thread or one dead
// source never aborts the run.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"forumpulse/internal/core"
	"forumpulse/internal/insights"
	"forumpulse/internal/logger"
	"forumpulse/internal/rank"
	"forumpulse/internal/render"
)

// ThreadScanner aggregates threads across sources and loads replies for
// individual threads.
type ThreadScanner interface {
	ScanAll(ctx context.Context, sourceNames []string, perSource int) []core.Thread
	FetchReplies(ctx context.Context, source, threadID string, limit int) []core.Reply
}

// PostGenerator turns ranked discussions into ready-to-publish posts.
// Implementations report per-record failures by omission, never by error.
type PostGenerator interface {
	GenerateBatch(ctx context.Context, discussions []core.ThreadDiscussion) []core.GeneratedPost
}

// Config holds pipeline tuning knobs.
type Config struct {
	Sources         []string
	PerSourceLimit  int
	MinRelevance    float64
	MaxPosts        int
	CommentsPerPost int
	OutputDir       string

	// SkipGeneration runs the scan and ranking stages only, leaving
	// Posts empty. Used by the scan command.
	SkipGeneration bool
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() *Config {
	return &Config{
		PerSourceLimit:  30,
		MinRelevance:    0.15,
		MaxPosts:        10,
		CommentsPerPost: 5,
		OutputDir:       "output",
	}
}

// Pipeline wires the scan, rank, insight, and generation stages together.
type Pipeline struct {
	scanner   ThreadScanner
	generator PostGenerator
	config    *Config
	log       *slog.Logger
}

// NewPipeline creates a pipeline. generator may be nil when generation is
// skipped.
func NewPipeline(scanner ThreadScanner, generator PostGenerator, config *Config) *Pipeline {
	if config == nil {
		config = DefaultConfig()
	}

	return &Pipeline{
		scanner:   scanner,
		generator: generator,
		config:    config,
		log:       logger.Get(),
	}
}

// Result contains the output of one pipeline run.
type Result struct {
	Run       core.RunResult
	Artifacts render.Artifacts
}

// connectivityProber is implemented by scanners that can cheaply check a
// source endpoint before a full scan.
type connectivityProber interface {
	Probe(ctx context.Context, source string) bool
}

// Run executes the full pipeline. It returns an error only when the scan
// stage produces nothing at all; partial failures downstream are recorded
// in the run stats instead.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	startTime := time.Now().UTC()
	stats := core.RunStats{}

	// Connectivity probe: a warning, never a stop. An unreachable source
	// just degrades the scan below.
	if prober, ok := p.scanner.(connectivityProber); ok && len(p.config.Sources) > 0 {
		if !prober.Probe(ctx, p.config.Sources[0]) {
			p.log.Warn("Source endpoint unreachable, proceeding anyway", "source", p.config.Sources[0])
		}
	}

	// Step 1: Scan all sources.
	fmt.Printf("📡 Step 1/5: Scanning %d sources...\n", len(p.config.Sources))
	threads := p.scanner.ScanAll(ctx, p.config.Sources, p.config.PerSourceLimit)
	stats.TotalScanned = len(threads)
	stats.SourcesFailed = p.countFailedSources(threads)
	if stats.TotalScanned == 0 {
		return nil, fmt.Errorf("no threads scanned from any source")
	}
	fmt.Printf("   ✓ Scanned %d threads (%d of %d sources contributed)\n\n",
		stats.TotalScanned, len(p.config.Sources)-stats.SourcesFailed, len(p.config.Sources))

	// Step 2: Rank and filter by relevance.
	fmt.Printf("🔍 Step 2/5: Ranking threads...\n")
	ranked := rank.Sort(threads, rank.OrderRelevanceDate)
	relevant := rank.Filter(ranked, p.config.MinRelevance, rank.CategoryCombined)
	stats.RelevantCount = len(relevant)
	fmt.Printf("   ✓ %d of %d threads above relevance threshold %.2f\n\n",
		stats.RelevantCount, stats.TotalScanned, p.config.MinRelevance)

	if len(relevant) > p.config.MaxPosts {
		relevant = relevant[:p.config.MaxPosts]
	}

	// Step 3: Load replies and extract insights for the top threads.
	fmt.Printf("💬 Step 3/5: Loading discussions for top %d threads...\n", len(relevant))
	discussions := p.loadDiscussions(ctx, relevant)
	fmt.Printf("   ✓ Loaded %d discussions\n\n", len(discussions))

	result := core.RunResult{
		RunTimestamp: startTime,
		Stats:        stats,
		Discussions:  discussions,
	}

	// Step 4: Generate posts. A failure on one record skips that record
	// only; the stage reports N of M succeeded.
	if p.config.SkipGeneration || p.generator == nil {
		fmt.Printf("⏭️  Step 4/5: Skipping post generation\n\n")
	} else {
		fmt.Printf("✍️  Step 4/5: Generating posts...\n")
		result.Stats.PostsRequested = len(discussions)
		result.Posts = p.generator.GenerateBatch(ctx, discussions)
		result.Stats.PostsGenerated = len(result.Posts)
		fmt.Printf("   ✓ Generated %d of %d posts\n\n",
			result.Stats.PostsGenerated, result.Stats.PostsRequested)
		if result.Stats.PostsGenerated < result.Stats.PostsRequested {
			p.log.Warn("Some posts failed to generate",
				"requested", result.Stats.PostsRequested,
				"generated", result.Stats.PostsGenerated)
		}
	}

	// Step 5: Write report artifacts.
	fmt.Printf("💾 Step 5/5: Writing artifacts to %s...\n", p.config.OutputDir)
	artifacts, err := render.WriteRunArtifacts(result, p.config.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to write run artifacts: %w", err)
	}
	fmt.Printf("   ✓ Results: %s\n", artifacts.ResultsJSON)
	if artifacts.PostsText != "" {
		fmt.Printf("   ✓ Posts:   %s\n", artifacts.PostsText)
	}
	fmt.Printf("   ✓ Summary: %s\n\n", artifacts.SummaryMD)

	return &Result{Run: result, Artifacts: artifacts}, nil
}

// loadDiscussions fetches replies and extracts insights for each thread.
// A thread whose replies cannot be loaded still appears with no replies.
func (p *Pipeline) loadDiscussions(ctx context.Context, threads []core.Thread) []core.ThreadDiscussion {
	discussions := make([]core.ThreadDiscussion, 0, len(threads))
	for _, t := range threads {
		replies := p.scanner.FetchReplies(ctx, t.Source, t.ID, p.config.CommentsPerPost)
		discussions = append(discussions, core.ThreadDiscussion{
			Thread:   t,
			Replies:  replies,
			Insights: insights.Extract(replies),
		})
	}
	return discussions
}

// countFailedSources reports how many configured sources contributed no
// threads to the scan.
func (p *Pipeline) countFailedSources(threads []core.Thread) int {
	contributed := make(map[string]bool, len(p.config.Sources))
	for _, t := range threads {
		contributed[t.Source] = true
	}

	failed := 0
	for _, source := range p.config.Sources {
		if !contributed[source] {
			failed++
		}
	}
	return failed
}
