// Package render serializes a pipeline run into its persisted artifacts:
// a JSON snapshot of all scored records, a plain-text rendering of the
// generated posts, and a human-readable markdown summary.
package render

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"forumpulse/internal/core"
)

// DefaultOutputDir is used when no output directory is configured.
const DefaultOutputDir = "output"

// Artifacts holds the paths written for one run.
type Artifacts struct {
	ResultsJSON string
	PostsText   string
	SummaryMD   string
}

// WriteRunArtifacts persists the run result. Filenames are qualified with
// the run timestamp so one run never overwrites another. The posts text
// file is only written when the run generated posts.
func WriteRunArtifacts(result core.RunResult, outputDir string) (Artifacts, error) {
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return Artifacts{}, fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	stamp := result.RunTimestamp.Format("20060102_150405")
	artifacts := Artifacts{}

	jsonPath := filepath.Join(outputDir, fmt.Sprintf("pipeline_results_%s.json", stamp))
	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return Artifacts{}, fmt.Errorf("failed to encode run result: %w", err)
	}
	if err := os.WriteFile(jsonPath, encoded, 0644); err != nil {
		return Artifacts{}, fmt.Errorf("failed to write %s: %w", jsonPath, err)
	}
	artifacts.ResultsJSON = jsonPath

	if len(result.Posts) > 0 {
		postsPath := filepath.Join(outputDir, fmt.Sprintf("posts_%s.txt", stamp))
		if err := os.WriteFile(postsPath, []byte(FormatPostsForReview(result.Posts)), 0644); err != nil {
			return Artifacts{}, fmt.Errorf("failed to write %s: %w", postsPath, err)
		}
		artifacts.PostsText = postsPath
	}

	summaryPath := filepath.Join(outputDir, fmt.Sprintf("summary_%s.md", stamp))
	if err := os.WriteFile(summaryPath, []byte(SummaryReport(result)), 0644); err != nil {
		return Artifacts{}, fmt.Errorf("failed to write %s: %w", summaryPath, err)
	}
	artifacts.SummaryMD = summaryPath

	return artifacts, nil
}

// FormatPostsForReview renders generated posts as plain text for human
// review before publishing.
func FormatPostsForReview(posts []core.GeneratedPost) string {
	var b strings.Builder

	for i, post := range posts {
		b.WriteString(strings.Repeat("=", 60) + "\n")
		fmt.Fprintf(&b, "POST #%d | Style: %s\n", i+1, post.Style)
		fmt.Fprintf(&b, "Source: %s\n", truncateTitle(post.SourceTitle, 60))
		b.WriteString(strings.Repeat("=", 60) + "\n\n")
		b.WriteString(post.Content + "\n\n")
		fmt.Fprintf(&b, "Source: %s\n", post.SourceURL)
		fmt.Fprintf(&b, "Generated: %s\n\n", post.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	}

	return b.String()
}

// SummaryReport renders the markdown run summary: stats table plus the top
// analyzed threads with their extracted insights.
func SummaryReport(result core.RunResult) string {
	var b strings.Builder

	b.WriteString("# Forum Scan Report\n\n")
	fmt.Fprintf(&b, "**Run Time:** %s\n\n", result.RunTimestamp.Format("2006-01-02 15:04:05 MST"))

	b.WriteString("## Statistics\n\n")
	b.WriteString("| Metric | Value |\n|--------|-------|\n")
	fmt.Fprintf(&b, "| Threads Scanned | %d |\n", result.Stats.TotalScanned)
	fmt.Fprintf(&b, "| Relevant Threads | %d |\n", result.Stats.RelevantCount)
	fmt.Fprintf(&b, "| Posts Generated | %d of %d |\n\n", result.Stats.PostsGenerated, result.Stats.PostsRequested)

	b.WriteString("## Top Threads Analyzed\n\n")
	for i, discussion := range result.Discussions {
		if i == 5 {
			break
		}
		thread := discussion.Thread
		fmt.Fprintf(&b, "### %d. %s\n\n", i+1, truncateTitle(thread.Title, 70))
		fmt.Fprintf(&b, "- **Community:** r/%s\n", thread.Source)
		fmt.Fprintf(&b, "- **Engagement:** %d upvotes, %d comments\n", thread.Score, thread.NumComments)
		fmt.Fprintf(&b, "- **Relevance Score:** %.2f\n", thread.Relevance.Combined)
		fmt.Fprintf(&b, "- **URL:** %s\n\n", thread.URL)

		if len(discussion.Insights) > 0 {
			b.WriteString("**Key Insights from Comments:**\n")
			for _, insight := range discussion.Insights {
				fmt.Fprintf(&b, "- %s\n", insight)
			}
		}
		b.WriteString("\n---\n\n")
	}

	if len(result.Posts) > 0 {
		b.WriteString("## Generated Posts\n\n")
		fmt.Fprintf(&b, "Generated %d posts ready for review. See `posts_*.txt` for full content.\n", len(result.Posts))
	}

	return b.String()
}

func truncateTitle(title string, max int) string {
	if len(title) > max {
		return title[:max] + "..."
	}
	return title
}
