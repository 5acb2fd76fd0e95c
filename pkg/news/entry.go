package news

import (
	"crypto/sha1" //nolint:gosec // non-cryptographic id generation
	"encoding/hex"
	"strings"
)

const (
	noDate  = "No Date"
	noTitle = "No Title"
)

// Entry is one announcement from a feed. It is immutable once built and may
// be shared between goroutines; each call to Content starts a new scan.
type Entry struct {
	title       string
	date        string
	link        string
	description string
}

// NewEntry builds an Entry. An empty title or date is treated as absent.
func NewEntry(title, date, link, description string) Entry {
	return Entry{
		title:       strings.TrimSpace(title),
		date:        strings.TrimSpace(date),
		link:        strings.TrimSpace(link),
		description: description,
	}
}

// Title returns the entry title and whether the feed supplied one.
func (e Entry) Title() (string, bool) { return e.title, e.title != "" }

// Date returns the raw publish date and whether the feed supplied one.
func (e Entry) Date() (string, bool) { return e.date, e.date != "" }

// Link returns the entry permalink, if any.
func (e Entry) Link() string { return e.link }

// Description returns the raw, undecoded markup.
func (e Entry) Description() string { return e.description }

// Content returns a fresh Tokenizer over the description.
func (e Entry) Content() *Tokenizer { return NewTokenizer(e.description) }

// ID is a stable identifier derived from the date, title and description.
func (e Entry) ID() string {
	h := sha1.New() //nolint:gosec // non-cryptographic id generation
	h.Write([]byte(e.date))
	h.Write([]byte{0})
	h.Write([]byte(e.title))
	h.Write([]byte{0})
	h.Write([]byte(e.description))
	return hex.EncodeToString(h.Sum(nil))
}

// Header renders "date -- title" with placeholders for missing fields.
func (e Entry) Header() string {
	date, ok := e.Date()
	if !ok {
		date = noDate
	}
	title, ok := e.Title()
	if !ok {
		title = noTitle
	}
	return date + " -- " + title
}

// String renders the header, a blank line and the rendered content.
func (e Entry) String() string {
	return e.Header() + "\n\n" + Render(e.Content().All())
}
