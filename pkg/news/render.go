package news

import (
	"io"
	"iter"
	"strings"
)

// Render joins tokens into display text. Text and code are written verbatim
// and links as "label (target)"; nothing is inserted between tokens.
func Render(seq iter.Seq[Token]) string {
	var b strings.Builder
	_ = WriteTokens(&b, seq)
	return b.String()
}

// WriteTokens writes the rendered form of each token to w, stopping at the
// first write error.
func WriteTokens(w io.Writer, seq iter.Seq[Token]) error {
	for tok := range seq {
		if _, err := io.WriteString(w, tok.String()); err != nil {
			return err
		}
	}
	return nil
}
