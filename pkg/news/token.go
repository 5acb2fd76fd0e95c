package news

// Kind identifies which variant a Token holds.
type Kind int

const (
	// KindText is literal prose, including the "\n" emitted for a closing paragraph.
	KindText Kind = iota
	// KindCode is the contents of a <code> span.
	KindCode
	// KindURL is a hyperlink with a target and a visible label.
	KindURL
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindCode:
		return "code"
	case KindURL:
		return "url"
	default:
		return "unknown"
	}
}

// Token is one classified fragment of an entry's content.
//
// Text carries the payload for every kind; for KindURL it is the link label
// and Target holds the decoded href value.
type Token struct {
	Kind   Kind
	Text   string
	Target string
}

// Text returns a plain text token.
func Text(s string) Token { return Token{Kind: KindText, Text: s} }

// Code returns a code span token.
func Code(s string) Token { return Token{Kind: KindCode, Text: s} }

// URL returns a hyperlink token.
func URL(target, label string) Token { return Token{Kind: KindURL, Text: label, Target: target} }

// String formats the token the way Render does.
func (t Token) String() string {
	if t.Kind == KindURL {
		return t.Text + " (" + t.Target + ")"
	}
	return t.Text
}
