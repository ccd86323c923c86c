package dining

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/example/umass-dining-bot/pkg/clock"
	"github.com/example/umass-dining-bot/pkg/logger"
)

// Engine answers "is this food on a menu today" questions against the cache
type Engine struct {
	cache *Cache
	now   func() time.Time

	logger *logger.Logger
}

// NewEngine creates a search engine over the given cache
func NewEngine(cache *Cache, now func() time.Time) *Engine {
	return &Engine{
		cache:  cache,
		now:    now,
		logger: logger.New("dining"),
	}
}

// FindItem returns the menu items served at the given hall and meal today
// whose text contains item, case-insensitively. A menu page missing the
// meal's section is not an error: the site changed shape or the hall simply
// is not serving that meal, and both mean "no results".
func (e *Engine) FindItem(ctx context.Context, hall Hall, meal Meal, item string) ([]string, error) {
	raw, err := e.cache.Document(ctx, hall)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %v menu page: %w", hall, err)
	}

	section := doc.Find("#" + meal.anchorID()).Find("#content_text").First()
	if section.Length() == 0 {
		e.logger.Debug("No %v section on the %v menu page", meal.anchorID(), hall)
		return nil, nil
	}

	query := strings.ToLower(item)
	var matches []string
	section.Find(".lightbox-nutrition").Each(func(_ int, node *goquery.Selection) {
		text := strings.ToLower(node.Text())
		if strings.Contains(text, query) {
			matches = append(matches, text)
		}
	})

	return matches, nil
}

// Places returns one line per (hall, meal) serving the food today, in hall
// then meal order: "<Hall> <Meal>: <matches joined by commas>".
func (e *Engine) Places(ctx context.Context, food string) ([]string, error) {
	weekday := clock.Weekday(e.now())

	var places []string
	for _, hall := range Halls {
		for _, meal := range WhichMeals(hall, weekday) {
			matches, err := e.FindItem(ctx, hall, meal, food)
			if err != nil {
				return nil, err
			}
			if len(matches) > 0 {
				places = append(places, fmt.Sprintf("%v %s: %s",
					hall, meal.DisplayName(weekday), strings.Join(matches, ", ")))
			}
		}
	}

	return places, nil
}

// ReportFor builds the user-facing answer for a food query
func (e *Engine) ReportFor(ctx context.Context, food string) (string, error) {
	places, err := e.Places(ctx, food)
	if err != nil {
		return "", err
	}

	if len(places) == 0 {
		return fmt.Sprintf("%s not found", food), nil
	}
	return fmt.Sprintf("%s: \n%s", food, strings.Join(places, "\n")), nil
}
