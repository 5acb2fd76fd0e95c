package comments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/samvad-hq/pkgnews/pkg/httpclient"
)

const samplePage = `
<html>
  <body>
    <div class="comments package-comments">
      <h4 id="comment-1" class="comment-header">
        alice commented on 2024-01-02 10:00 (UTC)
      </h4>
      <div id="comment-1-content" class="article-content">
        <p>Works fine, <code>makepkg -si</code>.</p>
      </div>
      <h4 id="comment-2" class="comment-header">bob commented on 2024-01-03 11:00 (UTC)</h4>
      <div id="comment-2-content" class="article-content"><p>Needs a rebuild.</p></div>
      <h4 id="comment-3" class="comment-header">orphan header</h4>
    </div>
    <div class="article-content">not a comment</div>
  </body>
</html>`

func TestParsePairsHeadersAndBodies(t *testing.T) {
	got, err := Parse(strings.NewReader(samplePage))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 comments, got %d: %#v", len(got), got)
	}
	if got[0].Title != "alice commented on 2024-01-02 10:00 (UTC)" {
		t.Errorf("title[0] = %q", got[0].Title)
	}
	if got[0].Content != "Works fine, makepkg -si." {
		t.Errorf("content[0] = %q", got[0].Content)
	}
	if got[1].Content != "Needs a rebuild." {
		t.Errorf("content[1] = %q", got[1].Content)
	}
}

func TestURL(t *testing.T) {
	got, err := URL(DefaultBaseURL, "yay")
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if got != "https://aur.archlinux.org/packages/yay/comments?&PP=1000000" {
		t.Fatalf("URL = %q", got)
	}

	if _, err := URL(DefaultBaseURL, " "); err == nil {
		t.Fatal("expected error for empty package")
	}
	if _, err := URL("aur.archlinux.org", "yay"); err == nil {
		t.Fatal("expected error for relative base")
	}
}

func TestFetchAgainstServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/packages/paru/comments" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("PP") != "1000000" {
			t.Errorf("missing PP query: %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	client := httpclient.NewRestyClient(2 * time.Second)
	got, err := Fetch(context.Background(), client, srv.URL+"/", "paru")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(got))
	}

	if _, err := Fetch(context.Background(), client, srv.URL+"/", "missing"); err == nil {
		t.Fatal("expected error for 404")
	}
}
