package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

const maxSnippetLen = 512

// StatusError reports a response whose status was not 200 OK.
type StatusError struct {
	URL        string
	StatusCode int
	Snippet    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d body: %s", e.URL, e.StatusCode, e.Snippet)
}

// Fetch GETs url and returns the body, failing on transport errors and on
// any status other than 200.
func Fetch(ctx context.Context, client Client, url string, headers map[string]string) ([]byte, error) {
	if client == nil {
		return nil, fmt.Errorf("http client is nil")
	}

	resp, err := client.Get(ctx, url, headers)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}

	body := resp.Body()
	if resp.StatusCode() != http.StatusOK {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode(), Snippet: Snippet(body)}
	}
	return body, nil
}

// Snippet trims a response body for inclusion in error messages.
func Snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxSnippetLen {
		cut := maxSnippetLen
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		return s[:cut] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
