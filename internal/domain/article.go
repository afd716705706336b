package domain

import (
	"errors"
	"time"
)

// ErrArticleNotFound signals a missing single-article lookup.
var ErrArticleNotFound = errors.New("article not found")

// Supported sport slugs. Persistence drops anything outside this set.
const (
	SportCricket = "cricket"
	SportSoccer  = "soccer"
)

// Storage column bounds, shared by the pipeline and the store.
const (
	MaxHeadlineLen   = 500
	MaxSourceURLLen  = 2000
	MaxSourceNameLen = 200
)

// Candidate is an unprocessed article reference discovered from a feed.
// Unique by URL within one aggregation pass.
type Candidate struct {
	Title       string
	URL         string
	PublishedAt *time.Time
	SourceName  string
	SportHint   string
}

// ProcessedArticle is the pipeline output for one surviving candidate,
// ready to be persisted.
type ProcessedArticle struct {
	Headline    string
	Summary     string
	SourceURL   string
	SourceName  string
	PublishedAt *time.Time
	SportSlug   string
}

// Sport is a persisted category row.
type Sport struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// Article is a persisted article row joined with its sport.
type Article struct {
	ID          int64      `json:"id"`
	SportID     int64      `json:"sport_id"`
	Headline    string     `json:"headline"`
	Summary     string     `json:"summary"`
	SourceURL   string     `json:"source_url"`
	SourceName  string     `json:"source_name"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Sport       Sport      `json:"sport"`
}

// SeedSports is the fixed category set; seeding inserts missing slugs and
// never updates existing rows.
func SeedSports() []Sport {
	return []Sport{
		{Name: "Cricket", Slug: SportCricket},
		{Name: "Soccer", Slug: SportSoccer},
	}
}

// KnownSlug reports whether slug belongs to the seeded set.
func KnownSlug(slug string) bool {
	for _, s := range SeedSports() {
		if s.Slug == slug {
			return true
		}
	}
	return false
}

// Truncate bounds s to max runes.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
