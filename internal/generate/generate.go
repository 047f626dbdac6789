// Package generate turns ranked thread discussions into ready-to-publish
// social posts by prompting an external text-generation service.
package generate

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"forumpulse/internal/core"
	"forumpulse/internal/logger"
)

// DefaultStyles is the rotation order used when callers do not pin a style.
var DefaultStyles = []string{"professional", "empathetic", "educational", "storytelling"}

// Generator is the external text-generation service: one free-text prompt
// in, free text out. Satisfied by llm.Client.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Orchestrator drives one generation call per discussion and collects the
// successes.
type Orchestrator struct {
	generator Generator
	styles    []string
	pinned    string // when set, every post in the batch uses this style
	log       *slog.Logger
}

// NewOrchestrator creates an orchestrator rotating through styles. An
// empty styles list falls back to DefaultStyles.
func NewOrchestrator(generator Generator, styles []string) *Orchestrator {
	if len(styles) == 0 {
		styles = DefaultStyles
	}
	return &Orchestrator{
		generator: generator,
		styles:    styles,
		log:       logger.Get(),
	}
}

// PinStyle forces a single style for the whole batch instead of rotating.
func (o *Orchestrator) PinStyle(style string) {
	o.pinned = style
}

// GenerateBatch iterates discussions in rank order, assigning styles by
// index modulo the style list. A failed generation call drops that record
// and moves on: partial success is the norm, and the batch never aborts.
// The generation call itself is never retried.
func (o *Orchestrator) GenerateBatch(ctx context.Context, discussions []core.ThreadDiscussion) []core.GeneratedPost {
	var posts []core.GeneratedPost

	for i, discussion := range discussions {
		style := o.pinned
		if style == "" {
			style = o.styles[i%len(o.styles)]
		}

		post, err := o.generateOne(ctx, discussion, style)
		if err != nil {
			o.log.Error("Generation failed, skipping record", "thread", discussion.Thread.ID, "style", style, "error", err.Error())
			continue
		}
		posts = append(posts, post)
		o.log.Info("Generated post", "thread", discussion.Thread.ID, "style", style)
	}

	o.log.Info("Generation batch complete", "succeeded", len(posts), "requested", len(discussions))
	return posts
}

func (o *Orchestrator) generateOne(ctx context.Context, discussion core.ThreadDiscussion, style string) (core.GeneratedPost, error) {
	prompt := buildPrompt(discussion.Thread, discussion.Replies, style)

	content, err := o.generator.Generate(ctx, prompt)
	if err != nil {
		return core.GeneratedPost{}, err
	}

	return core.GeneratedPost{
		ID:          uuid.NewString(),
		Content:     content,
		SourceTitle: discussion.Thread.Title,
		SourceURL:   discussion.Thread.URL,
		Style:       style,
		GeneratedAt: time.Now().UTC(),
	}, nil
}
