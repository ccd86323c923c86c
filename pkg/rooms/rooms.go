package rooms

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/example/umass-dining-bot/pkg/logger"
)

// Section is one meeting of a class in a room
type Section struct {
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`
	Days      []string `json:"days"`
	Room      string   `json:"room"`
	Number    string   `json:"number"`
}

// Format renders a section for chat
func (s Section) Format() string {
	return fmt.Sprintf("%s: %s-%s on %s", s.Number, s.StartTime, s.EndTime, strings.Join(s.Days, ", "))
}

// class mirrors one record of the exported schedule file
type class struct {
	Name     string    `json:"name"`
	Sections []Section `json:"sections"`
}

// Store is a static room -> sections table, loaded once and never mutated,
// so it needs no locking.
type Store struct {
	byRoom map[string][]Section
}

// Load reads the class schedule export and indexes its sections by room.
// A missing file is not fatal: the room command just reports no matches.
func Load(path string) (*Store, error) {
	store := &Store{byRoom: make(map[string][]Section)}
	log := logger.New("rooms")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn("No room data file at %s, room lookups will be empty", path)
			return store, nil
		}
		return nil, fmt.Errorf("failed to read room data: %w", err)
	}

	var classes []class
	if err := json.Unmarshal(data, &classes); err != nil {
		return nil, fmt.Errorf("failed to parse room data: %w", err)
	}

	for _, cl := range classes {
		for _, section := range cl.Sections {
			if err := validateTimes(section); err != nil {
				return nil, fmt.Errorf("class %s section %s: %w", cl.Name, section.Number, err)
			}
			store.byRoom[section.Room] = append(store.byRoom[section.Room], section)
		}
	}

	log.Info("Loaded sections for %d rooms from %s", len(store.byRoom), path)
	return store, nil
}

func validateTimes(s Section) error {
	for _, v := range []string{s.StartTime, s.EndTime} {
		if _, err := time.Parse("3:04PM", v); err != nil {
			return fmt.Errorf("bad time %q: %w", v, err)
		}
	}
	return nil
}

// Lookup returns the sections meeting in a room
func (s *Store) Lookup(room string) ([]Section, bool) {
	sections, ok := s.byRoom[room]
	return sections, ok
}
