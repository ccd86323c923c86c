package events

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// eventsURL is the campus events listing page
const eventsURL = "https://www.umass.edu/events/"

// Fetcher retrieves a raw page; satisfied by dining.HTTPFetcher
type Fetcher interface {
	FetchDocument(ctx context.Context, url string) (string, error)
}

// Event is one entry on the campus events page
type Event struct {
	Title       string
	Description string
	Date        string
	Location    string
}

// Format renders the event for chat
func (e Event) Format() string {
	if e.Location != "" {
		return fmt.Sprintf("%s at %s:\n%s", e.Title, e.Location, e.Description)
	}
	return fmt.Sprintf("%s:\n%s", e.Title, e.Description)
}

// Fetch scrapes today's events. The selectors track the events page's
// markup and yield partial events rather than errors when a field moves.
func Fetch(ctx context.Context, fetcher Fetcher) ([]Event, error) {
	raw, err := fetcher.FetchDocument(ctx, eventsURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse events page: %w", err)
	}

	var events []Event
	doc.Find(".views-row").Each(func(_ int, node *goquery.Selection) {
		events = append(events, Event{
			Title:       strings.TrimSpace(node.Find(".views-field-title").Text()),
			Description: strings.TrimSpace(node.Find(".views-field-field-short-desc").Text()),
			Date:        strings.TrimSpace(node.Find(".event-date").Text()),
			Location:    strings.TrimSpace(node.Find(".event-location").Text()),
		})
	})

	return events, nil
}
