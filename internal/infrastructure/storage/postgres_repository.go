package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"SportsNewsHub/internal/domain"
	"SportsNewsHub/internal/ports"
)

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresRepository persists sports and articles into Postgres.
type PostgresRepository struct {
	db *sql.DB
}

var _ ports.ArticleStore = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Migrate creates the schema when absent. Safe to call every startup.
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sports (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			slug VARCHAR(50) NOT NULL UNIQUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS articles (
			id BIGSERIAL PRIMARY KEY,
			sport_id BIGINT NOT NULL REFERENCES sports(id),
			headline VARCHAR(500) NOT NULL,
			summary TEXT NOT NULL,
			source_url VARCHAR(2000) NOT NULL UNIQUE,
			source_name VARCHAR(200) NOT NULL,
			published_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_sport_id ON articles (sport_id)`,
	}

	for _, stmt := range statements {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// SaveArticles seeds the sport table idempotently and inserts new articles,
// all within one transaction. Duplicate source URLs and unknown sport slugs
// are skipped, not errors. Returns the count of rows actually inserted.
func (r *PostgresRepository) SaveArticles(ctx context.Context, articles []domain.ProcessedArticle) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := seedSports(ctx, tx); err != nil {
		return 0, err
	}

	sportIDs, err := sportIDsBySlug(ctx, tx)
	if err != nil {
		return 0, err
	}

	saved := 0
	for _, article := range articles {
		sportID, ok := sportIDs[article.SportSlug]
		if !ok {
			continue
		}

		query, args, err := builder.
			Insert("articles").
			Columns("sport_id", "headline", "summary", "source_url", "source_name", "published_at").
			Values(sportID,
				domain.Truncate(article.Headline, domain.MaxHeadlineLen),
				article.Summary,
				domain.Truncate(article.SourceURL, domain.MaxSourceURLLen),
				domain.Truncate(article.SourceName, domain.MaxSourceNameLen),
				nullableTime(article.PublishedAt)).
			Suffix("ON CONFLICT (source_url) DO NOTHING").
			ToSql()
		if err != nil {
			return 0, fmt.Errorf("build insert: %w", err)
		}

		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, fmt.Errorf("insert article %s: %w", article.SourceURL, err)
		}

		if rows, err := res.RowsAffected(); err == nil && rows > 0 {
			saved++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}

	return saved, nil
}

func seedSports(ctx context.Context, tx *sql.Tx) error {
	for _, sport := range domain.SeedSports() {
		query, args, err := builder.
			Insert("sports").
			Columns("name", "slug").
			Values(sport.Name, sport.Slug).
			Suffix("ON CONFLICT (slug) DO NOTHING").
			ToSql()
		if err != nil {
			return fmt.Errorf("build seed: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seed sport %s: %w", sport.Slug, err)
		}
	}
	return nil
}

func sportIDsBySlug(ctx context.Context, tx *sql.Tx) (map[string]int64, error) {
	query, args, err := builder.Select("slug", "id").From("sports").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sport lookup: %w", err)
	}

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sports: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]int64)
	for rows.Next() {
		var slug string
		var id int64
		if err := rows.Scan(&slug, &id); err != nil {
			return nil, fmt.Errorf("scan sport: %w", err)
		}
		ids[slug] = id
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sports iteration: %w", err)
	}

	return ids, nil
}

var articleColumns = []string{
	"a.id", "a.sport_id", "a.headline", "a.summary", "a.source_url",
	"a.source_name", "a.published_at", "a.created_at", "a.updated_at",
	"s.id", "s.name", "s.slug", "s.created_at",
}

// ListArticles returns articles with their sport, optionally filtered,
// ordered by published date descending (nulls last) then creation time
// descending. Filters matching nothing yield an empty slice.
func (r *PostgresRepository) ListArticles(ctx context.Context, filter ports.ArticleFilter) ([]domain.Article, error) {
	q := builder.
		Select(articleColumns...).
		From("articles a").
		Join("sports s ON s.id = a.sport_id").
		OrderBy("a.published_at DESC NULLS LAST", "a.created_at DESC")

	if filter.SportSlug != "" {
		q = q.Where(sq.Eq{"s.slug": filter.SportSlug})
	}
	if filter.From != nil {
		q = q.Where(sq.GtOrEq{"a.published_at": *filter.From})
	}
	if filter.To != nil {
		q = q.Where(sq.LtOrEq{"a.published_at": *filter.To})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	articles := make([]domain.Article, 0)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("articles iteration: %w", err)
	}

	return articles, nil
}

// GetArticle fetches a single article by id; a missing row yields
// domain.ErrArticleNotFound.
func (r *PostgresRepository) GetArticle(ctx context.Context, id int64) (*domain.Article, error) {
	query, args, err := builder.
		Select(articleColumns...).
		From("articles a").
		Join("sports s ON s.id = a.sport_id").
		Where(sq.Eq{"a.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query article: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("article iteration: %w", err)
		}
		return nil, domain.ErrArticleNotFound
	}

	article, err := scanArticle(rows)
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// ListSports returns all sports ordered by id.
func (r *PostgresRepository) ListSports(ctx context.Context) ([]domain.Sport, error) {
	query, args, err := builder.
		Select("id", "name", "slug", "created_at").
		From("sports").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sports query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sports: %w", err)
	}
	defer rows.Close()

	sports := make([]domain.Sport, 0)
	for rows.Next() {
		var sport domain.Sport
		if err := rows.Scan(&sport.ID, &sport.Name, &sport.Slug, &sport.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sport: %w", err)
		}
		sports = append(sports, sport)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sports iteration: %w", err)
	}

	return sports, nil
}

func scanArticle(rows *sql.Rows) (domain.Article, error) {
	var article domain.Article
	var publishedAt sql.NullTime

	err := rows.Scan(
		&article.ID, &article.SportID, &article.Headline, &article.Summary,
		&article.SourceURL, &article.SourceName, &publishedAt,
		&article.CreatedAt, &article.UpdatedAt,
		&article.Sport.ID, &article.Sport.Name, &article.Sport.Slug, &article.Sport.CreatedAt,
	)
	if err != nil {
		return domain.Article{}, fmt.Errorf("scan article: %w", err)
	}

	if publishedAt.Valid {
		article.PublishedAt = &publishedAt.Time
	}
	return article, nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
