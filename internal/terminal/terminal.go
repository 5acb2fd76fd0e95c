// Package terminal prints news entries, comments and package lists for a
// human reader, optionally with ANSI color and wrapped to the terminal width.
package terminal

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/term"

	"github.com/samvad-hq/pkgnews/pkg/comments"
	"github.com/samvad-hq/pkgnews/pkg/news"
)

// ColorMode selects when ANSI styling is emitted.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode accepts auto, always or never (case-insensitive).
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ColorAuto, nil
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	default:
		return "", fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
	}
}

const (
	sgrReset     = "\x1b[0m"
	sgrBold      = "\x1b[1m"
	sgrCode      = "\x1b[36m"
	sgrLink      = "\x1b[4;34m"
	sgrSeparator = "\x1b[2m"
)

// Printer writes styled output to w.
type Printer struct {
	w     io.Writer
	color bool
	width int
}

// NewPrinter resolves the color mode and width against w. A width of zero
// uses the terminal width when w is a terminal and disables wrapping otherwise.
func NewPrinter(w io.Writer, mode ColorMode, width int) *Printer {
	tty := isTerminal(w)

	color := false
	switch mode {
	case ColorAlways:
		color = true
	case ColorNever:
	default:
		color = tty && os.Getenv("NO_COLOR") == ""
	}

	if width <= 0 && tty {
		width = terminalWidth(w)
	}
	return &Printer{w: w, color: color, width: width}
}

// Entry prints the entry header, a blank line and its content.
func (p *Printer) Entry(e news.Entry) error {
	var b strings.Builder
	b.WriteString(p.style(sgrBold, e.Header()))
	b.WriteString("\n\n")
	for tok := range e.Content().All() {
		b.WriteString(p.token(tok))
	}
	_, err := io.WriteString(p.w, p.wrap(b.String())+"\n")
	return err
}

// Entries prints entries separated by a rule.
func (p *Printer) Entries(entries []news.Entry) error {
	for i, e := range entries {
		if i > 0 {
			if err := p.rule(); err != nil {
				return err
			}
		}
		if err := p.Entry(e); err != nil {
			return err
		}
	}
	return nil
}

// Comments prints AUR comments, header first.
func (p *Printer) Comments(cs []comments.Comment) error {
	for i, c := range cs {
		if i > 0 {
			if err := p.rule(); err != nil {
				return err
			}
		}
		text := p.style(sgrBold, c.Title) + "\n" + c.Content
		if _, err := io.WriteString(p.w, p.wrap(text)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// List prints a labelled list, one item per line.
func (p *Printer) List(label string, items []string) error {
	if len(items) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(p.w, "%s\n", p.style(sgrBold, label+":")); err != nil {
		return err
	}
	for _, it := range items {
		if _, err := fmt.Fprintf(p.w, "  %s\n", it); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) token(tok news.Token) string {
	switch tok.Kind {
	case news.KindCode:
		return p.style(sgrCode, tok.Text)
	case news.KindURL:
		return tok.Text + " (" + p.style(sgrLink, tok.Target) + ")"
	default:
		return tok.Text
	}
}

func (p *Printer) rule() error {
	n := p.width
	if n <= 0 || n > 80 {
		n = 80
	}
	_, err := io.WriteString(p.w, p.style(sgrSeparator, strings.Repeat("-", n))+"\n")
	return err
}

func (p *Printer) style(sgr, s string) string {
	if !p.color || s == "" {
		return s
	}
	return sgr + s + sgrReset
}

func (p *Printer) wrap(s string) string {
	if p.width <= 0 {
		return s
	}
	return wordwrap.String(s, p.width)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
			return cols
		}
	}
	if cols, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && cols > 0 {
		return cols
	}
	return 0
}
