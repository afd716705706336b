package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func rssDocument(items ...string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Test Feed</title>` + strings.Join(items, "") + `</channel></rss>`
}

func rssItem(title, link, pubDate string) string {
	var b strings.Builder
	b.WriteString("<item><title>")
	b.WriteString(title)
	b.WriteString("</title>")
	if link != "" {
		b.WriteString("<link>" + link + "</link>")
	}
	if pubDate != "" {
		b.WriteString("<pubDate>" + pubDate + "</pubDate>")
	}
	b.WriteString("</item>")
	return b.String()
}

func TestParseFeed(t *testing.T) {
	t.Parallel()

	doc := rssDocument(
		rssItem("IPL Final Today", "http://x/1", "Mon, 02 Jan 2006 15:04:05 GMT"),
		rssItem("No Link Entry", "", ""),
		rssItem("Bad Date Entry", "http://x/2", "not a date"),
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(doc))
	}))
	defer server.Close()

	reader := NewReader(server.Client(), nil)
	candidates := reader.ParseFeed(context.Background(), server.URL, "Test Source", "cricket")

	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}

	first := candidates[0]
	if first.Title != "IPL Final Today" || first.URL != "http://x/1" {
		t.Fatalf("unexpected first candidate: %+v", first)
	}
	if first.PublishedAt == nil {
		t.Fatal("expected parsed published date")
	}
	if first.SourceName != "Test Source" || first.SportHint != "cricket" {
		t.Fatalf("unexpected source tagging: %+v", first)
	}

	if candidates[1].URL != "http://x/2" {
		t.Fatalf("unexpected second candidate: %+v", candidates[1])
	}
	if candidates[1].PublishedAt != nil {
		t.Fatalf("malformed date must yield nil, got %v", candidates[1].PublishedAt)
	}
}

func TestParseFeedCapsEntries(t *testing.T) {
	t.Parallel()

	items := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		items = append(items, rssItem(fmt.Sprintf("Entry %d", i), fmt.Sprintf("http://x/%d", i), ""))
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(rssDocument(items...)))
	}))
	defer server.Close()

	reader := NewReader(server.Client(), nil)
	candidates := reader.ParseFeed(context.Background(), server.URL, "Test Source", "soccer")

	if len(candidates) != maxFeedEntries {
		t.Fatalf("expected %d candidates, got %d", maxFeedEntries, len(candidates))
	}
	if candidates[0].Title != "Entry 0" {
		t.Fatalf("expected feed order preserved, got %s", candidates[0].Title)
	}
}

func TestParseFeedFailuresYieldEmpty(t *testing.T) {
	t.Parallel()

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer failing.Close()

	malformed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("this is not xml"))
	}))
	defer malformed.Close()

	reader := NewReader(nil, nil)

	if got := reader.ParseFeed(context.Background(), failing.URL, "s", "cricket"); len(got) != 0 {
		t.Fatalf("expected empty on server error, got %d", len(got))
	}
	if got := reader.ParseFeed(context.Background(), malformed.URL, "s", "cricket"); len(got) != 0 {
		t.Fatalf("expected empty on malformed feed, got %d", len(got))
	}
	if got := reader.ParseFeed(context.Background(), "http://127.0.0.1:1/feed", "s", "cricket"); len(got) != 0 {
		t.Fatalf("expected empty on unreachable host, got %d", len(got))
	}
}
