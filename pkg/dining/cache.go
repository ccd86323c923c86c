package dining

import (
	"context"
	"sync"
	"time"

	"github.com/example/umass-dining-bot/pkg/clock"
	"github.com/example/umass-dining-bot/pkg/logger"
	"github.com/example/umass-dining-bot/pkg/storage"
)

// storeKey is where the snapshot is mirrored in BadgerDB
const storeKey = "menu_snapshot"

// snapshot holds one raw menu document per hall for a single calendar date.
// It is replaced wholesale on refresh, never partially updated.
type snapshot struct {
	Date string            `json:"date"`
	Docs map[string]string `json:"docs"` // keyed by the hall's remote code
}

// Cache owns the current menu snapshot. All access goes through Document,
// which refreshes at most once per calendar date; the check-date, refetch and
// read happen in one critical section so readers never observe mixed-date
// documents.
//
// Refresh failures keep the prior snapshot and serve it stale with a logged
// warning; the error propagates only when no snapshot has ever been fetched.
type Cache struct {
	mu      sync.Mutex
	snap    snapshot
	fetcher Fetcher
	now     func() time.Time
	store   *storage.Store

	logger *logger.Logger
}

// NewCache creates a menu cache. The store may be nil (no durable mirror);
// when present, a snapshot persisted by an earlier run is warmed so a
// same-day restart does not refetch all four halls.
func NewCache(fetcher Fetcher, now func() time.Time, store *storage.Store) *Cache {
	c := &Cache{
		fetcher: fetcher,
		now:     now,
		store:   store,
		logger:  logger.New("dining"),
	}

	if store != nil {
		var snap snapshot
		if err := store.Get(storeKey, &snap); err == nil {
			c.snap = snap
			c.logger.Info("Warmed menu snapshot for %s from storage", snap.Date)
		} else if err != storage.ErrKeyNotFound {
			c.logger.Warn("Failed to warm menu snapshot: %v", err)
		}
	}

	return c
}

// Document returns the current-day raw menu document for a hall, refreshing
// the snapshot first if the stored date is no longer today.
func (c *Cache) Document(ctx context.Context, hall Hall) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureFreshLocked(ctx); err != nil {
		return "", err
	}

	return c.snap.Docs[hall.remoteCode()], nil
}

// EnsureFresh refreshes the snapshot if it is stale. Exposed so startup can
// populate the cache eagerly.
func (c *Cache) EnsureFresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ensureFreshLocked(ctx)
}

// ensureFreshLocked refetches all four halls when the snapshot's date is not
// today. Either every fetch succeeds and the snapshot is replaced atomically,
// or the prior snapshot is retained unchanged. Callers must hold c.mu.
func (c *Cache) ensureFreshLocked(ctx context.Context) error {
	today := clock.Date(c.now())
	if c.snap.Date == today {
		return nil
	}

	docs := make(map[string]string, len(Halls))
	for _, hall := range Halls {
		doc, err := c.fetcher.FetchDocument(ctx, menuURL(hall))
		if err != nil {
			if c.snap.Date != "" {
				// Stale-but-available beats no answer for a once-daily menu.
				c.logger.Warn("Menu refresh failed, serving %s snapshot: %v", c.snap.Date, err)
				return nil
			}
			return err
		}
		docs[hall.remoteCode()] = doc
	}

	c.snap = snapshot{Date: today, Docs: docs}
	c.logger.Info("Refreshed menu snapshot for %s", today)

	if c.store != nil {
		if err := c.store.Set(storeKey, c.snap); err != nil {
			c.logger.Error("Failed to persist menu snapshot: %v", err)
		}
	}

	return nil
}
