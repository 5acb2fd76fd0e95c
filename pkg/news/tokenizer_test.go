package news

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenize(s string) []Token {
	return NewTokenizer(s).Tokens()
}

func TestTokenizerRecognizedConstructs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
		{
			name:  "plain text",
			input: "plain text",
			want:  []Token{Text("plain text")},
		},
		{
			name:  "code span decodes entities",
			input: "<code>x &lt; y</code>",
			want:  []Token{Code("x < y")},
		},
		{
			name:  "anchor",
			input: `<a href="https://x">label</a>`,
			want:  []Token{URL("https://x", "label")},
		},
		{
			name:  "paragraph close",
			input: "a</p>b",
			want:  []Token{Text("a"), Text("\n"), Text("b")},
		},
		{
			name:  "unknown tags are dropped",
			input: "<em>hi</em>",
			want:  []Token{Text("hi")},
		},
		{
			name:  "consecutive unknown tags",
			input: "<p><strong><em>x</em></strong>",
			want:  []Token{Text("x")},
		},
		{
			name:  "anchor with extra attributes and entities",
			input: `<a title="t" href="https://x/?a=1&amp;b=2" rel="nofollow">A &amp; B</a> tail`,
			want:  []Token{URL("https://x/?a=1&b=2", "A & B"), Text(" tail")},
		},
		{
			name:  "full paragraph",
			input: "<p>Run <code>pacman -Syu</code> now, see <a href=\"https://wiki\">the wiki</a>.</p><p>Next</p>",
			want: []Token{
				Text("Run "),
				Code("pacman -Syu"),
				Text(" now, see "),
				URL("https://wiki", "the wiki"),
				Text("."),
				Text("\n"),
				Text("Next"),
				Text("\n"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tokenize(tt.input))
		})
	}
}

func TestTokenizerBestEffortQuirks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			// A literal '<' ends the span and the following tag closes it.
			name:  "code truncated at inner tag",
			input: "<code>a <b>c</b></code>",
			want:  []Token{Code("a "), Text("c")},
		},
		{
			// The closing step stops at the first '>' after the opener.
			name:  "code containing greater-than",
			input: "<code>a > b</code>",
			want:  []Token{Code("a > b"), Text(" b")},
		},
		{
			name:  "anchor without href uses remainder up to quote",
			input: "<a>x</a>",
			want:  []Token{URL("<a>x</a>", "x")},
		},
		{
			name:  "anchor prefix matches other tags",
			input: "<abbr>NVMe</abbr>",
			want:  []Token{URL("<abbr>NVMe</abbr>", "NVMe")},
		},
		{
			name:  "truncated code",
			input: "<code>unterminated",
			want:  []Token{Code("unterminated")},
		},
		{
			name:  "truncated tag",
			input: "text<span class=",
			want:  []Token{Text("text")},
		},
		{
			name:  "truncated anchor",
			input: `<a href="https://x`,
			want:  []Token{URL("https://x", "")},
		},
		{
			name:  "bogus entity kept verbatim",
			input: "Tom &bogus; Jerry",
			want:  []Token{Text("Tom &bogus; Jerry")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tokenize(tt.input))
		})
	}
}

func TestTokenizerConsumesWholeInput(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"<",
		">",
		"<<<>>>",
		"<a",
		"<code>",
		"</p></p></p>",
		`<a href="x">y`,
		"<p>ünïcödé <code>ß</code> ✓</p>",
		strings.Repeat("<br>", 10000) + "end",
	}

	for _, in := range inputs {
		tok := NewTokenizer(in)
		prev := 0
		steps := 0
		for {
			_, ok := tok.Next()
			if !ok {
				break
			}
			require.Greater(t, tok.Offset(), prev, "input %q: cursor did not advance", in)
			prev = tok.Offset()
			steps++
			require.LessOrEqual(t, steps, len(in), "input %q: too many tokens", in)
		}
		assert.Equal(t, len(in), tok.Offset(), "input %q: not fully consumed", in)
	}
}

func TestTokenizerStringDoesNotAdvance(t *testing.T) {
	tok := NewTokenizer("a</p>b")
	assert.Equal(t, "a\nb", tok.String())
	assert.Equal(t, "a\nb", tok.String())
	assert.Equal(t, 0, tok.Offset())

	first, ok := tok.Next()
	require.True(t, ok)
	assert.Equal(t, Text("a"), first)
	assert.Equal(t, "\nb", tok.String())
}

func TestTokenizerAllStopsEarly(t *testing.T) {
	tok := NewTokenizer("a</p>b</p>c")
	for range tok.All() {
		break
	}
	rest := tok.Tokens()
	assert.Equal(t, []Token{Text("\n"), Text("b"), Text("\n"), Text("c")}, rest)
}
