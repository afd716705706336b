package feed

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"SportsNewsHub/internal/domain"
)

const (
	fetchTimeout   = 15 * time.Second
	maxFeedEntries = 15
)

// Reader parses a single RSS feed into candidate records.
type Reader struct {
	client *http.Client
	logger *slog.Logger
}

// NewReader wires an HTTP client; a nil client gets a bounded-timeout default.
func NewReader(client *http.Client, logger *slog.Logger) *Reader {
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}
	return &Reader{client: client, logger: logger}
}

// ParseFeed returns at most the first 15 entries of the feed at url as
// candidates. Entries without a link are skipped and malformed dates become
// nil. Any fetch or parse failure yields an empty slice, never an error.
func (r *Reader) ParseFeed(ctx context.Context, url, sourceName, sportHint string) []domain.Candidate {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		r.debug("build feed request", "url", url, "error", err)
		return nil
	}

	resp, err := r.client.Do(req)
	if err != nil {
		r.debug("fetch feed", "url", url, "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.debug("fetch feed", "url", url, "status", resp.Status)
		return nil
	}

	parsed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		r.debug("parse feed", "url", url, "error", err)
		return nil
	}

	items := parsed.Items
	if len(items) > maxFeedEntries {
		items = items[:maxFeedEntries]
	}

	candidates := make([]domain.Candidate, 0, len(items))
	for _, item := range items {
		link := strings.TrimSpace(item.Link)
		if link == "" {
			continue
		}

		candidates = append(candidates, domain.Candidate{
			Title:       strings.TrimSpace(item.Title),
			URL:         link,
			PublishedAt: entryDate(item),
			SourceName:  sourceName,
			SportHint:   sportHint,
		})
	}

	return candidates
}

func entryDate(item *gofeed.Item) *time.Time {
	if item.PublishedParsed != nil {
		return item.PublishedParsed
	}
	return item.UpdatedParsed
}

func (r *Reader) debug(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Debug(msg, args...)
	}
}
