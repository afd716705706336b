package categorize

import (
	"context"
	"errors"
	"testing"
)

type fakeBackend struct {
	reply  string
	err    error
	called bool
}

func (f *fakeBackend) Complete(ctx context.Context, system, user string) (string, error) {
	f.called = true
	return f.reply, f.err
}

func TestCategorizeKeywordDeterminism(t *testing.T) {
	t.Parallel()

	c := New(nil, nil)
	ctx := context.Background()

	// Cricket terms always win over the hint.
	for _, hint := range []string{"cricket", "soccer"} {
		if got := c.Categorize(ctx, "IPL Final Today", "a great day at the stadium", hint); got != "cricket" {
			t.Fatalf("hint %s: expected cricket, got %s", hint, got)
		}
	}

	for _, hint := range []string{"cricket", "soccer"} {
		if got := c.Categorize(ctx, "Premier League roundup", "weekend results", hint); got != "soccer" {
			t.Fatalf("hint %s: expected soccer, got %s", hint, got)
		}
	}
}

func TestCategorizeIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	c := New(nil, nil)
	if got := c.Categorize(context.Background(), "WICKET falls early", "", "soccer"); got != "cricket" {
		t.Fatalf("expected cricket, got %s", got)
	}
}

func TestCategorizeFallsBackToHint(t *testing.T) {
	t.Parallel()

	c := New(nil, nil)
	ctx := context.Background()

	// Neither keyword family.
	if got := c.Categorize(ctx, "Local club news", "community update", "soccer"); got != "soccer" {
		t.Fatalf("expected hint, got %s", got)
	}

	// Both families present.
	if got := c.Categorize(ctx, "Cricket and football weekend", "ipl and premier league", "cricket"); got != "cricket" {
		t.Fatalf("expected hint on ambiguous text, got %s", got)
	}
}

func TestCategorizeBackendTieBreak(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	backend := &fakeBackend{reply: "soccer"}
	c := New(backend, nil)
	if got := c.Categorize(ctx, "Weekend sports digest", "mixed coverage", "cricket"); got != "soccer" {
		t.Fatalf("expected backend answer, got %s", got)
	}
	if !backend.called {
		t.Fatal("backend should be consulted for inconclusive text")
	}

	// Keyword hits never reach the backend.
	backend = &fakeBackend{reply: "soccer"}
	c = New(backend, nil)
	if got := c.Categorize(ctx, "Wicket falls", "", "cricket"); got != "cricket" {
		t.Fatalf("expected cricket, got %s", got)
	}
	if backend.called {
		t.Fatal("backend must not be consulted when keywords decide")
	}
}

func TestCategorizeBackendDegradation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	// Backend error → hint.
	c := New(&fakeBackend{err: errors.New("unreachable")}, nil)
	if got := c.Categorize(ctx, "Weekend digest", "", "soccer"); got != "soccer" {
		t.Fatalf("expected hint on backend error, got %s", got)
	}

	// Unsupported slug from the backend → hint.
	c = New(&fakeBackend{reply: "tennis"}, nil)
	if got := c.Categorize(ctx, "Weekend digest", "", "cricket"); got != "cricket" {
		t.Fatalf("expected hint on unknown slug, got %s", got)
	}

	// Quoted answer is normalized.
	c = New(&fakeBackend{reply: "'Soccer'"}, nil)
	if got := c.Categorize(ctx, "Weekend digest", "", "cricket"); got != "soccer" {
		t.Fatalf("expected normalized backend answer, got %s", got)
	}
}
