package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"forumpulse/internal/core"
)

// fakeGenerator records prompts and fails on configured call indexes.
type fakeGenerator struct {
	prompts []string
	failOn  map[int]bool
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	call := len(g.prompts)
	g.prompts = append(g.prompts, prompt)
	if g.failOn[call] {
		return "", errors.New("service unavailable")
	}
	return fmt.Sprintf("post %d", call), nil
}

func discussions(n int) []core.ThreadDiscussion {
	out := make([]core.ThreadDiscussion, n)
	for i := range out {
		out[i] = core.ThreadDiscussion{
			Thread: core.Thread{
				ID:     fmt.Sprintf("t%d", i),
				Title:  fmt.Sprintf("Thread %d", i),
				URL:    fmt.Sprintf("https://reddit.com/r/dubai/t%d", i),
				Source: "dubai",
			},
		}
	}
	return out
}

func TestGenerateBatchStyleRotation(t *testing.T) {
	gen := &fakeGenerator{}
	orch := NewOrchestrator(gen, []string{"A", "B"})

	posts := orch.GenerateBatch(context.Background(), discussions(5))

	if len(posts) != 5 {
		t.Fatalf("Expected 5 posts, got %d", len(posts))
	}
	want := []string{"A", "B", "A", "B", "A"}
	for i, post := range posts {
		if post.Style != want[i] {
			t.Errorf("Post %d: expected style %s, got %s", i, want[i], post.Style)
		}
	}
}

func TestGenerateBatchPinnedStyle(t *testing.T) {
	gen := &fakeGenerator{}
	orch := NewOrchestrator(gen, []string{"A", "B"})
	orch.PinStyle("empathetic")

	posts := orch.GenerateBatch(context.Background(), discussions(3))

	for _, post := range posts {
		if post.Style != "empathetic" {
			t.Errorf("Expected pinned style, got %s", post.Style)
		}
	}
}

func TestGenerateBatchToleratesFailure(t *testing.T) {
	// Record 3 of 5 (index 2) fails; the batch still yields 4 posts and
	// no error escapes.
	gen := &fakeGenerator{failOn: map[int]bool{2: true}}
	orch := NewOrchestrator(gen, nil)

	posts := orch.GenerateBatch(context.Background(), discussions(5))

	if len(posts) != 4 {
		t.Fatalf("Expected 4 posts after one failure, got %d", len(posts))
	}
	for _, post := range posts {
		if post.SourceTitle == "Thread 2" {
			t.Error("Failed record should not appear in output")
		}
	}
	if len(gen.prompts) != 5 {
		t.Errorf("Expected exactly one generation call per record, got %d", len(gen.prompts))
	}
}

func TestGenerateBatchPostFields(t *testing.T) {
	gen := &fakeGenerator{}
	orch := NewOrchestrator(gen, nil)

	posts := orch.GenerateBatch(context.Background(), discussions(1))

	if len(posts) != 1 {
		t.Fatalf("Expected 1 post, got %d", len(posts))
	}
	post := posts[0]
	if post.ID == "" {
		t.Error("Expected a generated post ID")
	}
	if post.SourceTitle != "Thread 0" || post.SourceURL != "https://reddit.com/r/dubai/t0" {
		t.Errorf("Expected source reference carried over, got %q %q", post.SourceTitle, post.SourceURL)
	}
	if post.GeneratedAt.IsZero() {
		t.Error("Expected generation timestamp")
	}
	if post.Style != DefaultStyles[0] {
		t.Errorf("Expected first default style, got %s", post.Style)
	}
}

func TestBuildPromptContent(t *testing.T) {
	thread := core.Thread{
		Title:       "Degree attestation for work visa",
		Source:      "dubai",
		Score:       45,
		NumComments: 23,
		Body:        strings.Repeat("b", maxPromptBodyLen+200),
	}
	replies := []core.Reply{
		{Body: strings.Repeat("r", maxPromptReplyLen+100), Score: 28},
		{Body: "downvoted noise", Score: -3},
		{Body: "second good reply", Score: 15},
	}

	prompt := buildPrompt(thread, replies, "educational")

	if !strings.Contains(prompt, "Degree attestation for work visa") {
		t.Error("Prompt missing thread title")
	}
	if !strings.Contains(prompt, "r/dubai") {
		t.Error("Prompt missing community name")
	}
	if !strings.Contains(prompt, "45 upvotes, 23 comments") {
		t.Error("Prompt missing engagement numbers")
	}
	if strings.Contains(prompt, "downvoted noise") {
		t.Error("Non-positive replies must not be quoted")
	}
	if !strings.Contains(prompt, "second good reply") {
		t.Error("Positive reply missing from prompt")
	}
	if strings.Contains(prompt, strings.Repeat("b", maxPromptBodyLen+1)) {
		t.Error("Thread body not clipped in prompt")
	}
	if !strings.Contains(prompt, "educational") {
		// The style drives the instruction block.
		if !strings.Contains(prompt, "educational, informative tone") {
			t.Error("Prompt missing style instructions")
		}
	}
}

func TestBuildPromptQuotesAtMostFiveReplies(t *testing.T) {
	var replies []core.Reply
	for i := 0; i < 8; i++ {
		replies = append(replies, core.Reply{Body: fmt.Sprintf("reply-%d", i), Score: 10})
	}

	prompt := buildPrompt(core.Thread{Title: "x"}, replies, "professional")

	for i := 0; i < 5; i++ {
		if !strings.Contains(prompt, fmt.Sprintf("reply-%d", i)) {
			t.Errorf("Expected reply-%d quoted", i)
		}
	}
	for i := 5; i < 8; i++ {
		if strings.Contains(prompt, fmt.Sprintf("reply-%d", i)) {
			t.Errorf("Expected reply-%d excluded", i)
		}
	}
}

func TestBuildPromptUnknownStyleFallsBack(t *testing.T) {
	prompt := buildPrompt(core.Thread{Title: "x"}, nil, "no-such-style")
	if !strings.Contains(prompt, "professional, authoritative tone") {
		t.Error("Unknown style should fall back to professional instructions")
	}
}
