package news

import (
	"bytes"
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tokens := []Token{
		Text("Run "),
		Code("pacman -Syu"),
		Text("\n"),
		URL("https://x", "label"),
	}
	assert.Equal(t, "Run pacman -Syu\nlabel (https://x)", Render(slices.Values(tokens)))
	assert.Equal(t, "", Render(slices.Values([]Token(nil))))
}

func TestRenderFromMarkup(t *testing.T) {
	assert.Equal(t, "label (https://x)", Render(NewTokenizer(`<a href="https://x">label</a>`).All()))
	assert.Equal(t, "a\nb", Render(NewTokenizer("a</p>b").All()))
	assert.Equal(t, "", Render(NewTokenizer("").All()))
}

type failingWriter struct{ n int }

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.n == 0 {
		return 0, errors.New("closed")
	}
	w.n--
	return len(p), nil
}

func TestWriteTokensStopsOnError(t *testing.T) {
	w := &failingWriter{n: 1}
	err := WriteTokens(w, NewTokenizer("a</p>b").All())
	require.Error(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteTokens(&buf, NewTokenizer("<code>x</code>").All()))
	assert.Equal(t, "x", buf.String())
}

func TestEntryAccessors(t *testing.T) {
	e := NewEntry(" Title ", "Mon, 01 Jan 2024 00:00:00 +0000", "https://x/1", "<p>body</p>")

	title, ok := e.Title()
	assert.True(t, ok)
	assert.Equal(t, "Title", title)

	date, ok := e.Date()
	assert.True(t, ok)
	assert.Equal(t, "Mon, 01 Jan 2024 00:00:00 +0000", date)
	assert.Equal(t, "https://x/1", e.Link())
	assert.Equal(t, "<p>body</p>", e.Description())

	missing := NewEntry("", "  ", "", "")
	_, ok = missing.Title()
	assert.False(t, ok)
	_, ok = missing.Date()
	assert.False(t, ok)
}

func TestEntryContentStartsFresh(t *testing.T) {
	e := NewEntry("t", "d", "", "one</p>two")

	first := e.Content()
	_, ok := first.Next()
	require.True(t, ok)

	second := e.Content()
	assert.Equal(t, 0, second.Offset())
	assert.Equal(t, []Token{Text("one"), Text("\n"), Text("two")}, second.Tokens())
}

func TestEntryRenderingIsIdempotent(t *testing.T) {
	e := NewEntry("t", "d", "", `<p>Use <code>a &amp;&amp; b</code> or <a href="https://x">x</a></p>`)
	first := Render(e.Content().All())
	second := Render(e.Content().All())
	assert.Equal(t, first, second)
	assert.Equal(t, "Use a && b or x (https://x)\n", first)
}

func TestEntryString(t *testing.T) {
	e := NewEntry("Title", "Date", "", "a</p>b")
	assert.Equal(t, "Date -- Title\n\na\nb", e.String())

	missing := NewEntry("", "", "", "")
	assert.Equal(t, "No Date -- No Title\n\n", missing.String())
}

func TestEntryID(t *testing.T) {
	a := NewEntry("t", "d", "", "x")
	b := NewEntry("t", "d", "https://other", "x")
	c := NewEntry("t", "d", "", "y")

	assert.Equal(t, a.ID(), b.ID())
	assert.NotEqual(t, a.ID(), c.ID())
	assert.Len(t, a.ID(), 40)
}
