package summarize

import (
	"context"
	"log/slog"
	"strings"

	"SportsNewsHub/internal/ports"
)

const (
	maxPromptContent = 4000

	systemPrompt = "You are a sports news summarizer. Given a headline and article content, " +
		"produce a 2-4 sentence summary highlighting the key takeaways. " +
		"Be concise, informative, and avoid redundancy."
)

// Summarizer wraps a chat backend with deterministic degradation: when the
// backend is absent or fails, the headline stands in for the summary so the
// candidate is never dropped for this reason.
type Summarizer struct {
	backend ports.ChatCompleter
	logger  *slog.Logger
}

var _ ports.Summarizer = (*Summarizer)(nil)

// New accepts a nil backend; summaries then always degrade to the headline.
func New(backend ports.ChatCompleter, logger *slog.Logger) *Summarizer {
	return &Summarizer{backend: backend, logger: logger}
}

// Summarize returns a short summary of content, or headline-derived text on
// any backend failure. Never returns an empty string.
func (s *Summarizer) Summarize(ctx context.Context, content, headline string) string {
	fallback := strings.TrimSpace(headline)
	if fallback == "" {
		fallback = "No summary available."
	}

	if s.backend == nil {
		return fallback
	}

	if runes := []rune(content); len(runes) > maxPromptContent {
		content = string(runes[:maxPromptContent])
	}

	user := "Headline: " + headline + "\n\nContent: " + content
	summary, err := s.backend.Complete(ctx, systemPrompt, user)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("summarization degraded to headline", "error", err)
		}
		return fallback
	}

	if strings.TrimSpace(summary) == "" {
		return fallback
	}
	return summary
}
