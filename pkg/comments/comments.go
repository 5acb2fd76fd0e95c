// Package comments scrapes package comments from an AUR web page.
package comments

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/samvad-hq/pkgnews/pkg/httpclient"
)

// DefaultBaseURL is the AUR web interface.
const DefaultBaseURL = "https://aur.archlinux.org/"

const (
	headerSelector  = "div.comments h4.comment-header"
	contentSelector = "div.comments div.article-content"
)

// Comment is one comment on a package page.
type Comment struct {
	// Title holds the author and date line.
	Title   string `json:"title"`
	Content string `json:"content"`
}

// URL builds the comments page address for pkg under base.
func URL(base, pkg string) (string, error) {
	pkg = strings.TrimSpace(pkg)
	if pkg == "" {
		return "", fmt.Errorf("package name is empty")
	}

	baseURL, err := url.Parse(strings.TrimSpace(base))
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return "", fmt.Errorf("base url %q must be absolute", base)
	}

	ref, err := url.Parse(fmt.Sprintf("packages/%s/comments?&PP=1000000", url.PathEscape(pkg)))
	if err != nil {
		return "", fmt.Errorf("build comments url: %w", err)
	}
	return baseURL.ResolveReference(ref).String(), nil
}

// Fetch downloads and parses every comment for pkg.
func Fetch(ctx context.Context, client httpclient.Client, base, pkg string) ([]Comment, error) {
	target, err := URL(base, pkg)
	if err != nil {
		return nil, err
	}

	body, err := httpclient.Fetch(ctx, client, target, nil)
	if err != nil {
		return nil, err
	}

	comments, err := Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse comments for %s: %w", pkg, err)
	}
	return comments, nil
}

// Parse extracts comments from a package page. Headers and bodies are paired
// in document order; an unmatched trailing element is dropped.
func Parse(r io.Reader) ([]Comment, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	titles := doc.Find(headerSelector)
	contents := doc.Find(contentSelector)

	n := min(titles.Length(), contents.Length())
	out := make([]Comment, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Comment{
			Title:   strings.TrimSpace(titles.Eq(i).Text()),
			Content: strings.TrimSpace(contents.Eq(i).Text()),
		})
	}
	return out, nil
}
