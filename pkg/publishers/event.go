package publishers

import (
	"strings"
	"time"

	"github.com/samvad-hq/pkgnews/pkg/news"
)

// Link is a hyperlink found in an entry.
type Link struct {
	Label  string `json:"label"`
	Target string `json:"target"`
}

// EntryPayload is the serialized form of a news entry.
type EntryPayload struct {
	ID    string   `json:"id"`
	Title string   `json:"title,omitempty"`
	Date  string   `json:"date,omitempty"`
	Link  string   `json:"link,omitempty"`
	Text  string   `json:"text"`
	Links []Link   `json:"links,omitempty"`
	Code  []string `json:"code,omitempty"`
}

// Event represents the payload published downstream.
type Event struct {
	SourceID    string       `json:"source_id"`
	SourceName  string       `json:"source_name"`
	Entry       EntryPayload `json:"entry"`
	CollectedAt time.Time    `json:"collected_at"`
}

// NewEvent renders entry and collects its links and code spans.
func NewEvent(sourceID, sourceName string, entry news.Entry) Event {
	title, _ := entry.Title()
	date, _ := entry.Date()
	payload := EntryPayload{
		ID:    entry.ID(),
		Title: title,
		Date:  date,
		Link:  entry.Link(),
	}

	var text strings.Builder
	for tok := range entry.Content().All() {
		text.WriteString(tok.String())
		switch tok.Kind {
		case news.KindURL:
			payload.Links = append(payload.Links, Link{Label: tok.Text, Target: tok.Target})
		case news.KindCode:
			payload.Code = append(payload.Code, tok.Text)
		}
	}
	payload.Text = text.String()

	return Event{
		SourceID:    sourceID,
		SourceName:  sourceName,
		Entry:       payload,
		CollectedAt: time.Now().UTC(),
	}
}
