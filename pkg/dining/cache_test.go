package dining

import (
	"context"
	"errors"
	"testing"
	"time"
)

type countingFetcher struct {
	calls int
	fail  bool
	doc   string
}

func (f *countingFetcher) FetchDocument(_ context.Context, url string) (string, error) {
	f.calls++
	if f.fail {
		return "", errors.New("connection refused")
	}
	return f.doc + " " + url, nil
}

func TestCacheFetchesOncePerDate(t *testing.T) {
	now := time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)
	fetcher := &countingFetcher{doc: "menu"}
	cache := NewCache(fetcher, func() time.Time { return now }, nil)

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		for _, hall := range Halls {
			if _, err := cache.Document(ctx, hall); err != nil {
				t.Fatalf("Document: %v", err)
			}
		}
	}

	// One refresh pass fetches all four halls exactly once
	if fetcher.calls != len(Halls) {
		t.Fatalf("expected %d fetches for one date, got %d", len(Halls), fetcher.calls)
	}
}

func TestCacheRefetchesOnDateChange(t *testing.T) {
	now := time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)
	fetcher := &countingFetcher{doc: "menu"}
	cache := NewCache(fetcher, func() time.Time { return now }, nil)

	ctx := context.Background()
	if _, err := cache.Document(ctx, Berk); err != nil {
		t.Fatalf("Document: %v", err)
	}

	now = now.AddDate(0, 0, 1)
	if _, err := cache.Document(ctx, Berk); err != nil {
		t.Fatalf("Document after date change: %v", err)
	}

	if fetcher.calls != 2*len(Halls) {
		t.Fatalf("expected %d fetches across two dates, got %d", 2*len(Halls), fetcher.calls)
	}

	// Same date again: no further fetches
	if _, err := cache.Document(ctx, Worcester); err != nil {
		t.Fatalf("Document: %v", err)
	}
	if fetcher.calls != 2*len(Halls) {
		t.Fatalf("expected no refetch within the same date, got %d calls", fetcher.calls)
	}
}

func TestCacheServesStaleOnRefreshFailure(t *testing.T) {
	now := time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)
	fetcher := &countingFetcher{doc: "monday menu"}
	cache := NewCache(fetcher, func() time.Time { return now }, nil)

	ctx := context.Background()
	doc, err := cache.Document(ctx, Berk)
	if err != nil {
		t.Fatalf("Document: %v", err)
	}

	now = now.AddDate(0, 0, 1)
	fetcher.fail = true

	stale, err := cache.Document(ctx, Berk)
	if err != nil {
		t.Fatalf("expected stale snapshot on refresh failure, got error %v", err)
	}
	if stale != doc {
		t.Fatalf("expected the prior day's document, got %q", stale)
	}
}

func TestCacheErrorsWhenNeverFetched(t *testing.T) {
	now := time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)
	fetcher := &countingFetcher{fail: true}
	cache := NewCache(fetcher, func() time.Time { return now }, nil)

	if _, err := cache.Document(context.Background(), Berk); err == nil {
		t.Fatal("expected error when no snapshot has ever been fetched")
	}
}

func TestCachePartialFailureKeepsPriorSnapshotDate(t *testing.T) {
	now := time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)
	fetcher := &countingFetcher{doc: "menu"}
	cache := NewCache(fetcher, func() time.Time { return now }, nil)

	ctx := context.Background()
	if err := cache.EnsureFresh(ctx); err != nil {
		t.Fatalf("EnsureFresh: %v", err)
	}
	date := cache.snap.Date

	now = now.AddDate(0, 0, 1)
	fetcher.fail = true
	if err := cache.EnsureFresh(ctx); err != nil {
		t.Fatalf("EnsureFresh with stale fallback: %v", err)
	}

	if cache.snap.Date != date {
		t.Fatalf("failed refresh must not advance the snapshot date: %s -> %s", date, cache.snap.Date)
	}
}
