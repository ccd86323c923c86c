package listeners

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/example/umass-dining-bot/pkg/logger"
	"github.com/example/umass-dining-bot/pkg/models"
)

// Registry is the in-memory subscription list, mirrored to a flat text file.
// The running process's memory is authoritative; the file exists so
// subscriptions survive a restart. Every mutation rewrites the whole file.
type Registry struct {
	mu   sync.Mutex
	subs []models.Subscription
	path string

	logger *logger.Logger
}

// Load reads the listeners file and returns a registry backed by it.
// A missing file yields an empty registry; a malformed line is a hard error,
// since silently dropping subscribers is worse than refusing to start.
func Load(path string) (*Registry, error) {
	r := &Registry{
		path:   path,
		logger: logger.New("listeners"),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			r.logger.Info("No listeners file at %s, starting empty", path)
			return r, nil
		}
		return nil, fmt.Errorf("failed to read listeners file: %w", err)
	}

	for i, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		sub, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("listeners file %s line %d: %w", path, i+1, err)
		}
		r.subs = append(r.subs, sub)
	}

	r.logger.Info("Loaded %d listeners from %s", len(r.subs), path)
	return r, nil
}

// parseLine parses "<platform> <channel-address> <query...>". The query is
// everything after the second space, so it may itself contain spaces.
func parseLine(line string) (models.Subscription, error) {
	sections := strings.Split(line, " ")
	if len(sections) < 3 {
		return models.Subscription{}, fmt.Errorf("expected at least 3 fields, got %d", len(sections))
	}

	channel, err := models.ParseChannel(sections[0], sections[1])
	if err != nil {
		return models.Subscription{}, err
	}

	return models.Subscription{
		Channel: channel,
		Query:   strings.Join(sections[2:], " "),
	}, nil
}

// Add appends a subscription and rewrites the mirror file
func (r *Registry) Add(channel models.Channel, query string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.subs = append(r.subs, models.Subscription{Channel: channel, Query: query})
	r.save()
}

// RemoveIfPresent removes the first structurally-equal (channel, query) pair.
// It returns whether a removal occurred; the mirror file is rewritten only
// when it did.
func (r *Registry) RemoveIfPresent(channel models.Channel, query string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	target := models.Subscription{Channel: channel, Query: query}
	for i, sub := range r.subs {
		if sub == target {
			r.subs = append(r.subs[:i], r.subs[i+1:]...)
			r.save()
			return true
		}
	}
	return false
}

// Snapshot returns a copy of the subscription list, safe to iterate without
// holding the registry lock during slow network operations.
func (r *Registry) Snapshot() []models.Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Subscription, len(r.subs))
	copy(out, r.subs)
	return out
}

// save rewrites the mirror file from the in-memory list. A failed write is
// logged but does not roll back the mutation. Callers must hold r.mu.
func (r *Registry) save() {
	var b strings.Builder
	for _, sub := range r.subs {
		fmt.Fprintf(&b, "%s %s\n", sub.Channel, sub.Query)
	}

	if err := os.WriteFile(r.path, []byte(b.String()), 0o644); err != nil {
		r.logger.Error("Failed to save listeners to %s: %v", r.path, err)
	}
}
