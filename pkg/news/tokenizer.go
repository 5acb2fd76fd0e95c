package news

import (
	"iter"
	"strings"
)

const (
	codeOpen  = "<code>"
	paraClose = "</p>"
	anchorTag = "<a"
	hrefAttr  = `href="`
)

// Tokenizer scans feed markup into Tokens. Only <code>, <a> and </p> are
// recognized; every other tag is skipped.
//
// The scan is best effort: a literal '<' inside a code span or link label
// ends the capture early, and the closing step consumes through whichever '>'
// comes next rather than the matching end tag. Existing rendered output
// depends on both rules.
//
// A Tokenizer keeps a cursor into the source string and is not safe for
// concurrent use.
type Tokenizer struct {
	src string
	pos int
}

// NewTokenizer returns a Tokenizer positioned at the start of src.
func NewTokenizer(src string) *Tokenizer {
	return &Tokenizer{src: src}
}

// Offset reports how many bytes of the source have been consumed.
func (t *Tokenizer) Offset() int {
	return t.pos
}

// Next returns the next token, or false once the input is exhausted.
func (t *Tokenizer) Next() (Token, bool) {
	for {
		rest := t.src[t.pos:]

		switch {
		case rest == "":
			return Token{}, false

		case strings.HasPrefix(rest, codeOpen):
			t.pos += len(codeOpen)
			code := t.untilTag()
			t.skipTag()
			return Code(DecodeEntities(code)), true

		case strings.HasPrefix(rest, paraClose):
			t.pos += len(paraClose)
			return Text("\n"), true

		case strings.HasPrefix(rest, anchorTag):
			target := hrefValue(rest)
			t.skipTag()
			label := t.untilTag()
			t.skipTag()
			return URL(DecodeEntities(target), DecodeEntities(label)), true

		case rest[0] == '<':
			t.skipTag()

		default:
			text := t.untilTag()
			t.pos += len(text)
			return Text(DecodeEntities(text)), true
		}
	}
}

// All yields the remaining tokens, advancing the tokenizer.
func (t *Tokenizer) All() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for {
			tok, ok := t.Next()
			if !ok || !yield(tok) {
				return
			}
		}
	}
}

// Tokens collects the remaining tokens.
func (t *Tokenizer) Tokens() []Token {
	var out []Token
	for tok := range t.All() {
		out = append(out, tok)
	}
	return out
}

// String renders the remaining tokens without advancing t.
func (t *Tokenizer) String() string {
	clone := *t
	return Render(clone.All())
}

// untilTag returns the input from the cursor up to the next '<' without
// consuming it.
func (t *Tokenizer) untilTag() string {
	rest := t.src[t.pos:]
	if i := strings.IndexByte(rest, '<'); i >= 0 {
		return rest[:i]
	}
	return rest
}

// skipTag consumes through the next '>', or to the end of input if there is none.
func (t *Tokenizer) skipTag() {
	rest := t.src[t.pos:]
	if i := strings.IndexByte(rest, '>'); i >= 0 {
		t.pos += i + 1
		return
	}
	t.pos = len(t.src)
}

// hrefValue extracts the quoted href value following the first href=" in s.
// Without an href the remainder of s is used, cut at the next quote.
func hrefValue(s string) string {
	if _, after, ok := strings.Cut(s, hrefAttr); ok {
		s = after
	}
	value, _, _ := strings.Cut(s, `"`)
	return value
}
