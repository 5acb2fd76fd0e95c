package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feed = `<?xml version="1.0"?>
<rss version="2.0"><channel><title>news</title>
<item><title>Second</title><pubDate>Tue, 02 Jan 2024 00:00:00 +0000</pubDate><description>&lt;p&gt;two&lt;/p&gt;</description></item>
<item><title>First</title><pubDate>Mon, 01 Jan 2024 00:00:00 +0000</pubDate><description>&lt;p&gt;one &lt;code&gt;pacman -Syu&lt;/code&gt;&lt;/p&gt;</description></item>
</channel></rss>`

const inventory = `
repos:
  - name: core
    packages:
      - name: pacman
      - name: linux
        provides: [kernel]
  - name: extra
    packages:
      - name: vim
        groups: [editors]
`

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("BBOLT_PATH", filepath.Join(dir, "seen.db"))
	t.Setenv("LOG_LEVEL", "error")
	return dir
}

func TestRunRequiresKnownCommand(t *testing.T) {
	var out, errb bytes.Buffer
	assert.Error(t, run(context.Background(), nil, &out, &errb))
	assert.Error(t, run(context.Background(), []string{"bogus"}, &out, &errb))
	assert.Contains(t, errb.String(), "Usage: pkgnews")

	require.NoError(t, run(context.Background(), []string{"help"}, &out, &errb))
	assert.Contains(t, out.String(), "Commands:")
}

func TestNewsUnreadAndMark(t *testing.T) {
	setupEnv(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(feed))
	}))
	defer srv.Close()

	var out, errb bytes.Buffer
	args := []string{"news", "--url", srv.URL, "--color", "never", "--unread", "--mark", "-n", "1"}
	require.NoError(t, run(context.Background(), args, &out, &errb))
	assert.Equal(t, "Tue, 02 Jan 2024 00:00:00 +0000 -- Second\n\ntwo\n\n", out.String())

	// The first entry is now read; the next unread run shows only the other one.
	out.Reset()
	require.NoError(t, run(context.Background(), args, &out, &errb))
	assert.True(t, strings.HasPrefix(out.String(), "Mon, 01 Jan 2024 00:00:00 +0000 -- First\n\none pacman -Syu\n"), out.String())

	out.Reset()
	require.NoError(t, run(context.Background(), args, &out, &errb))
	assert.Empty(t, out.String())
}

func TestNewsRejectsBadColor(t *testing.T) {
	setupEnv(t)
	var out, errb bytes.Buffer
	assert.Error(t, run(context.Background(), []string{"news", "--color", "rainbow"}, &out, &errb))
}

func TestCommentsCommand(t *testing.T) {
	setupEnv(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/packages/yay/comments" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`<html><body><div class="comments">
<h4 class="comment-header">alice commented</h4><div class="article-content"><p>works</p></div>
</div></body></html>`))
	}))
	defer srv.Close()

	var out, errb bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"comments", "--url", srv.URL, "--color", "never", "yay"}, &out, &errb))
	assert.Contains(t, out.String(), "alice commented\nworks")

	assert.Error(t, run(context.Background(), []string{"comments"}, &out, &errb))
}

func TestSplitCommand(t *testing.T) {
	dir := setupEnv(t)
	invPath := filepath.Join(dir, "inventory.yaml")
	require.NoError(t, os.WriteFile(invPath, []byte(inventory), 0o644))

	var out, errb bytes.Buffer
	args := []string{"split", "--inventory", invPath, "vim", "aur/pacman", "kernel", "editors", "yay", "extra/foo"}
	require.NoError(t, run(context.Background(), args, &out, &errb))
	assert.Equal(t, "repo:\n  vim\n  kernel\n  editors\n  extra/foo\naur:\n  aur/pacman\n  yay\n", out.String())

	out.Reset()
	require.NoError(t, run(context.Background(), []string{"split", "--mode", "aur", "vim"}, &out, &errb))
	assert.Equal(t, "aur:\n  vim\n", out.String())

	assert.Error(t, run(context.Background(), []string{"split"}, &out, &errb))
	assert.Error(t, run(context.Background(), []string{"split", "--mode", "both", "vim"}, &out, &errb))
}
