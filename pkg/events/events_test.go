package events

import (
	"context"
	"errors"
	"testing"
)

type stubFetcher struct {
	doc string
	err error
}

func (f *stubFetcher) FetchDocument(context.Context, string) (string, error) {
	return f.doc, f.err
}

const eventsPage = `<html><body>
<div class="views-row">
  <div class="views-field-title">Spring Concert</div>
  <div class="views-field-field-short-desc">Live music on the lawn</div>
  <div class="event-date">April 25</div>
  <div class="event-location">Campus Pond</div>
</div>
<div class="views-row">
  <div class="views-field-title">Career Fair</div>
  <div class="views-field-field-short-desc">Bring a resume</div>
  <div class="event-date">April 26</div>
</div>
</body></html>`

func TestFetchParsesEvents(t *testing.T) {
	got, err := Fetch(context.Background(), &stubFetcher{doc: eventsPage})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}

	want := "Spring Concert at Campus Pond:\nLive music on the lawn"
	if got[0].Format() != want {
		t.Fatalf("Format = %q, want %q", got[0].Format(), want)
	}

	// No location: the "at" clause is dropped
	want = "Career Fair:\nBring a resume"
	if got[1].Format() != want {
		t.Fatalf("Format = %q, want %q", got[1].Format(), want)
	}
}

func TestFetchPropagatesFetchErrors(t *testing.T) {
	wantErr := errors.New("connection refused")
	if _, err := Fetch(context.Background(), &stubFetcher{err: wantErr}); !errors.Is(err, wantErr) {
		t.Fatalf("expected fetch error, got %v", err)
	}
}
