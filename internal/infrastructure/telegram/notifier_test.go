package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPublishRunSummary(t *testing.T) {
	t.Parallel()

	var gotPath, gotChatID, gotText string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotChatID = r.PostFormValue("chat_id")
		gotText = r.PostFormValue("text")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	n := NewNotifier("test-token", "42")
	n.apiBase = server.URL
	n.client = server.Client()

	if err := n.PublishRunSummary(context.Background(), 3); err != nil {
		t.Fatalf("PublishRunSummary error: %v", err)
	}

	if gotPath != "/bottest-token/sendMessage" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if gotChatID != "42" {
		t.Fatalf("unexpected chat id: %s", gotChatID)
	}
	if !strings.Contains(gotText, "saved 3 new articles") {
		t.Fatalf("unexpected message: %s", gotText)
	}
}

func TestPublishRunSummaryErrors(t *testing.T) {
	t.Parallel()

	misconfigured := NewNotifier("", "")
	if err := misconfigured.PublishRunSummary(context.Background(), 1); err == nil {
		t.Fatal("expected error for missing credentials")
	}

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"ok":false}`, http.StatusForbidden)
	}))
	defer failing.Close()

	n := NewNotifier("token", "42")
	n.apiBase = failing.URL
	n.client = failing.Client()

	if err := n.PublishRunSummary(context.Background(), 1); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}
