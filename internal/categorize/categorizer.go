package categorize

import (
	"context"
	"log/slog"
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"SportsNewsHub/internal/domain"
	"SportsNewsHub/internal/ports"
)

var cricketTerms = []string{
	"cricket", "cricinfo", "cricbuzz", "ipl", "t20",
	"wicket", "batsman", "bowler", "innings",
}

var soccerTerms = []string{
	"football", "soccer", "premier league", "fifa", "la liga",
	"champions league", "serie a", "bundesliga", "mls", "goal", "penalty",
}

const classifyPrompt = "You are a sports article categorization agent. " +
	"Given a headline and summary, determine the correct sport category. " +
	"Valid sport slugs are: 'cricket', 'soccer'. " +
	"Respond with exactly one of those slugs and nothing else."

// Categorizer resolves sport slugs with keyword matching, a chat-backend
// tie-break, and finally the feed-supplied hint.
type Categorizer struct {
	cricket *ahocorasick.Matcher
	soccer  *ahocorasick.Matcher
	backend ports.ChatCompleter
	logger  *slog.Logger
}

var _ ports.Categorizer = (*Categorizer)(nil)

// New builds the keyword matchers; backend may be nil, in which case
// inconclusive cases resolve to the hint directly.
func New(backend ports.ChatCompleter, logger *slog.Logger) *Categorizer {
	return &Categorizer{
		cricket: ahocorasick.NewStringMatcher(cricketTerms),
		soccer:  ahocorasick.NewStringMatcher(soccerTerms),
		backend: backend,
		logger:  logger,
	}
}

// Categorize returns a supported sport slug for the article. Exactly one
// keyword family present decides the slug; both or neither defers to the
// chat backend, then to the hint. Never fails.
func (c *Categorizer) Categorize(ctx context.Context, headline, content, hint string) string {
	text := []byte(strings.ToLower(headline + " " + content))

	cricketHit := len(c.cricket.Match(text)) > 0
	soccerHit := len(c.soccer.Match(text)) > 0

	switch {
	case cricketHit && !soccerHit:
		return domain.SportCricket
	case soccerHit && !cricketHit:
		return domain.SportSoccer
	}

	if slug, ok := c.classify(ctx, headline, content); ok {
		return slug
	}

	return hint
}

// classify asks the chat backend for a single slug. Any error or an answer
// outside the supported set reports ok=false.
func (c *Categorizer) classify(ctx context.Context, headline, summary string) (string, bool) {
	if c.backend == nil {
		return "", false
	}

	user := "Headline: " + headline + "\n\nSummary: " + summary
	answer, err := c.backend.Complete(ctx, classifyPrompt, user)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("categorization degraded to hint", "error", err)
		}
		return "", false
	}

	slug := strings.ToLower(strings.Trim(strings.TrimSpace(answer), "'\"."))
	if !domain.KnownSlug(slug) {
		return "", false
	}
	return slug, true
}
