package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestFetchReturnsBodyOnOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != DefaultUserAgent {
			t.Errorf("User-Agent = %q", got)
		}
		_, _ = w.Write([]byte("hello"))
	}))
	defer srv.Close()

	body, err := Fetch(context.Background(), NewRestyClient(2*time.Second), srv.URL, nil)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(body) != "hello" {
		t.Fatalf("body = %q", body)
	}
}

func TestFetchReportsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := Fetch(context.Background(), NewRestyClient(2*time.Second), srv.URL, nil)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusNotFound || !strings.Contains(statusErr.Snippet, "gone") {
		t.Fatalf("unexpected status error %#v", statusErr)
	}
}

func TestFetchCustomHeaderOverridesDefault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "custom" {
			t.Errorf("User-Agent = %q", got)
		}
	}))
	defer srv.Close()

	if _, err := Fetch(context.Background(), NewRestyClient(2*time.Second), srv.URL, map[string]string{"User-Agent": "custom"}); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
}

func TestSnippet(t *testing.T) {
	if got := Snippet(nil); got != "<empty>" {
		t.Fatalf("Snippet(nil) = %q", got)
	}
	if got := Snippet([]byte(strings.Repeat("a", 600))); len(got) != maxSnippetLen+3 {
		t.Fatalf("expected truncated snippet, got len %d", len(got))
	}

	// "é" is two bytes; an odd prefix puts the cut inside a rune.
	body := "a" + strings.Repeat("é", 400)
	got := Snippet([]byte(body))
	if !utf8.ValidString(got) {
		t.Fatalf("snippet split a rune: %q", got[len(got)-6:])
	}
	if want := body[:maxSnippetLen-1] + "..."; got != want {
		t.Fatalf("snippet should end at the last whole rune, got len %d", len(got))
	}
}
