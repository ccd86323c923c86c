package dining

import "time"

// Hall is one of the four campus dining commons
type Hall int

const (
	Berk Hall = iota
	Hamp
	Frank
	Worcester
)

// Halls lists every hall in report order
var Halls = []Hall{Berk, Hamp, Frank, Worcester}

// String returns the short display name used in reports
func (h Hall) String() string {
	switch h {
	case Berk:
		return "Berk"
	case Hamp:
		return "Hamp"
	case Frank:
		return "Frank"
	case Worcester:
		return "Worcester"
	}
	return "Unknown"
}

// remoteCode is the hall's identifier in the dining site's menu URLs
func (h Hall) remoteCode() string {
	switch h {
	case Berk:
		return "berkshire"
	case Hamp:
		return "hampshire"
	case Frank:
		return "franklin"
	case Worcester:
		return "worcester"
	}
	return ""
}

// Meal is a named meal period
type Meal int

const (
	Breakfast Meal = iota
	Lunch
	Dinner
	LateNight
	GrabAndGo
)

// anchorID is the element id of the meal's section on a hall's menu page
func (m Meal) anchorID() string {
	switch m {
	case Breakfast:
		return "breakfast_menu"
	case Lunch:
		return "lunch_menu"
	case Dinner:
		return "dinner_menu"
	case LateNight:
		return "latenight_menu"
	case GrabAndGo:
		return "grabngo"
	}
	return ""
}

// DisplayName renders the meal for users. Lunch is served as brunch on
// weekends.
func (m Meal) DisplayName(weekday time.Weekday) string {
	switch m {
	case Breakfast:
		return "Breakfast"
	case Lunch:
		if weekday == time.Saturday || weekday == time.Sunday {
			return "Brunch"
		}
		return "Lunch"
	case Dinner:
		return "Dinner"
	case LateNight:
		return "Late Night"
	case GrabAndGo:
		return "Grab n' Go"
	}
	return "Unknown"
}

// WhichMeals returns the meals a hall serves on the given weekday.
// The table mirrors the dining commons' published hours.
func WhichMeals(hall Hall, weekday time.Weekday) []Meal {
	switch weekday {
	case time.Monday, time.Tuesday, time.Wednesday, time.Thursday:
		switch hall {
		case Berk:
			return []Meal{Lunch, Dinner, LateNight, GrabAndGo}
		case Hamp, Frank:
			return []Meal{Breakfast, Lunch, Dinner, GrabAndGo}
		case Worcester:
			return []Meal{Breakfast, Lunch, Dinner, LateNight, GrabAndGo}
		}
	case time.Friday:
		switch hall {
		case Berk:
			return []Meal{Lunch, Dinner, LateNight, GrabAndGo}
		case Hamp, Frank, Worcester:
			return []Meal{Breakfast, Lunch, Dinner, GrabAndGo}
		}
	case time.Saturday:
		switch hall {
		case Berk:
			return []Meal{Lunch, Dinner, LateNight}
		case Hamp, Frank, Worcester:
			return []Meal{Lunch, Dinner}
		}
	case time.Sunday:
		switch hall {
		case Berk, Worcester:
			return []Meal{Lunch, Dinner, LateNight}
		case Hamp, Frank:
			return []Meal{Lunch, Dinner}
		}
	}
	return nil
}
