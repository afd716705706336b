package feed

import (
	"context"
	"log/slog"

	"SportsNewsHub/internal/config"
	"SportsNewsHub/internal/domain"
	"SportsNewsHub/internal/ports"
)

// Aggregator merges candidates from every configured sport/feed pair,
// deduplicating by URL across the whole run.
type Aggregator struct {
	reader  *Reader
	sources config.SourcesConfig
	logger  *slog.Logger
}

var _ ports.CandidateSource = (*Aggregator)(nil)

// NewAggregator wires the feed reader with config-defined sources.
func NewAggregator(reader *Reader, sources config.SourcesConfig, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		reader:  reader,
		sources: sources,
		logger:  logger,
	}
}

// Fetch iterates sources in configuration order and returns the deduplicated
// candidate set. First occurrence of a URL wins; output preserves encounter
// order.
func (a *Aggregator) Fetch(ctx context.Context) []domain.Candidate {
	seen := map[string]struct{}{}
	var aggregated []domain.Candidate

	for _, sport := range a.sources {
		for _, feed := range sport.RSS {
			items := a.reader.ParseFeed(ctx, feed.URL, feed.Name, sport.Sport)
			a.debug("feed produced candidates", "sport", sport.Sport, "feed", feed.Name, "count", len(items))

			for _, item := range items {
				if _, ok := seen[item.URL]; ok {
					continue
				}
				seen[item.URL] = struct{}{}
				aggregated = append(aggregated, item)
			}
		}
	}

	a.debug("aggregation done", "total_candidates", len(aggregated))
	return aggregated
}

func (a *Aggregator) debug(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Debug(msg, args...)
	}
}
