package extract

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"SportsNewsHub/internal/ports"
)

const (
	userAgent       = "Mozilla/5.0 (compatible; SportsNewsBot/1.0)"
	fetchTimeout    = 15 * time.Second
	minContainerLen = 100
	maxContentLen   = 8000
)

// Container selectors tried in priority order.
var contentSelectors = []string{
	"article",
	"main",
	".article-body",
	".post-content",
	".content",
	"#content",
}

var whitespaceExpr = regexp.MustCompile(`\s+`)

// Extractor fetches article pages and pulls best-effort plain text.
type Extractor struct {
	client *http.Client
	logger *slog.Logger
}

var _ ports.ContentExtractor = (*Extractor)(nil)

// NewExtractor wires an HTTP client; nil gets a bounded-timeout default.
func NewExtractor(client *http.Client, logger *slog.Logger) *Extractor {
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}
	return &Extractor{client: client, logger: logger}
}

// Extract issues a single GET and returns cleaned article text. The first
// matching container selector with more than 100 characters wins, falling
// back to body text, then whole-document text. Any failure reports ok=false
// instead of an error.
func (e *Extractor) Extract(ctx context.Context, url string) (string, bool) {
	doc, err := e.fetchDocument(ctx, url)
	if err != nil {
		e.debug("extract failed", "url", url, "error", err)
		return "", false
	}

	doc.Find("script, style").Remove()

	for _, selector := range contentSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		text := cleanText(sel.Text())
		if utf8.RuneCountInString(text) > minContainerLen {
			return text, true
		}
	}

	if body := doc.Find("body").First(); body.Length() > 0 {
		return cleanText(body.Text()), true
	}

	return cleanText(doc.Text()), true
}

func (e *Extractor) fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &statusError{status: resp.Status}
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

// cleanText collapses whitespace and truncates to the content cap with a
// marker appended.
func cleanText(text string) string {
	text = strings.TrimSpace(whitespaceExpr.ReplaceAllString(text, " "))
	if runes := []rune(text); len(runes) > maxContentLen {
		text = string(runes[:maxContentLen]) + "..."
	}
	return text
}

type statusError struct {
	status string
}

func (s *statusError) Error() string {
	return "unexpected status " + s.status
}

func (e *Extractor) debug(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Debug(msg, args...)
	}
}
