package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"SportsNewsHub/internal/domain"
	"SportsNewsHub/internal/ports"
)

// Minimum extracted-content length, in characters, below which a candidate
// is dropped.
const minContentLen = 50

// PipelineDeps wires all driven adapters into the ingestion pipeline.
type PipelineDeps struct {
	Source      ports.CandidateSource
	Extractor   ports.ContentExtractor
	Summarizer  ports.Summarizer
	Categorizer ports.Categorizer
	Store       ports.ArticleStore
	Logger      *slog.Logger
}

// Pipeline implements the sports-news ingestion workflow: aggregate feed
// candidates, extract and enrich each one, then persist the survivors.
type Pipeline struct {
	source      ports.CandidateSource
	extractor   ports.ContentExtractor
	summarizer  ports.Summarizer
	categorizer ports.Categorizer
	store       ports.ArticleStore
	logger      *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		source:      deps.Source,
		extractor:   deps.Extractor,
		summarizer:  deps.Summarizer,
		categorizer: deps.Categorizer,
		store:       deps.Store,
		logger:      deps.Logger,
	}
}

// Run executes one pipeline pass and returns the count of newly saved
// articles. Per-candidate failures drop that candidate only; only a storage
// failure aborts the run.
func (p *Pipeline) Run(ctx context.Context) (int, error) {
	if p.source == nil || p.store == nil {
		return 0, nil
	}

	candidates := p.source.Fetch(ctx)
	p.info("pipeline run started", "candidates", len(candidates))

	processed := make([]domain.ProcessedArticle, 0, len(candidates))
	for _, candidate := range candidates {
		article, ok := p.processCandidate(ctx, candidate)
		if !ok {
			continue
		}
		processed = append(processed, article)
	}

	saved, err := p.store.SaveArticles(ctx, processed)
	if err != nil {
		return 0, fmt.Errorf("save articles: %w", err)
	}

	p.info("pipeline run finished", "processed", len(processed), "saved", saved)
	return saved, nil
}

// processCandidate runs extraction and enrichment for one candidate. A panic
// anywhere inside is confined to this candidate.
func (p *Pipeline) processCandidate(ctx context.Context, candidate domain.Candidate) (article domain.ProcessedArticle, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			p.warn("candidate dropped after panic", "url", candidate.URL, "panic", r)
			ok = false
		}
	}()

	content, extracted := p.extractor.Extract(ctx, candidate.URL)
	if !extracted || utf8.RuneCountInString(content) < minContentLen {
		p.debug("candidate dropped, no usable content", "url", candidate.URL)
		return domain.ProcessedArticle{}, false
	}

	headline := candidate.Title
	if headline == "" {
		headline = "No headline"
	}

	summary := p.summarizer.Summarize(ctx, content, headline)
	slug := p.categorizer.Categorize(ctx, headline, content, candidate.SportHint)

	return domain.ProcessedArticle{
		Headline:    domain.Truncate(headline, domain.MaxHeadlineLen),
		Summary:     summary,
		SourceURL:   domain.Truncate(candidate.URL, domain.MaxSourceURLLen),
		SourceName:  domain.Truncate(candidate.SourceName, domain.MaxSourceNameLen),
		PublishedAt: candidate.PublishedAt,
		SportSlug:   slug,
	}, true
}

func (p *Pipeline) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}

func (p *Pipeline) debug(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}
