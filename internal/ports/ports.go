package ports

import (
	"context"
	"time"

	"SportsNewsHub/internal/domain"
)

// CandidateSource discovers deduplicated article candidates across all
// configured feeds.
type CandidateSource interface {
	Fetch(ctx context.Context) []domain.Candidate
}

// ContentExtractor pulls best-effort plain text for a URL. ok is false when
// nothing usable could be extracted; the candidate is then dropped.
type ContentExtractor interface {
	Extract(ctx context.Context, url string) (text string, ok bool)
}

// Summarizer produces a short summary; it degrades to headline-derived text
// instead of failing.
type Summarizer interface {
	Summarize(ctx context.Context, content, headline string) string
}

// Categorizer resolves the final sport slug, falling back to the feed hint.
type Categorizer interface {
	Categorize(ctx context.Context, headline, content, hint string) string
}

// ChatCompleter is a text-generation backend behind the enrichment stages.
type ChatCompleter interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// ArticleStore owns the sports/articles tables.
type ArticleStore interface {
	// SaveArticles seeds sports idempotently and inserts new articles in one
	// transaction, skipping duplicate URLs and unknown slugs. Returns the
	// number of rows actually inserted.
	SaveArticles(ctx context.Context, articles []domain.ProcessedArticle) (int, error)

	ListArticles(ctx context.Context, filter ArticleFilter) ([]domain.Article, error)
	GetArticle(ctx context.Context, id int64) (*domain.Article, error)
	ListSports(ctx context.Context) ([]domain.Sport, error)
}

// ArticleFilter narrows ListArticles. From/To are inclusive bounds on
// published_at; To is already extended to end of day by the caller.
type ArticleFilter struct {
	SportSlug string
	From      *time.Time
	To        *time.Time
}

// Notifier publishes a short digest after a pipeline run.
type Notifier interface {
	PublishRunSummary(ctx context.Context, saved int) error
}

// Scheduler controls when pipeline runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
