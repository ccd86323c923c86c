package dining

import (
	"reflect"
	"testing"
	"time"
)

func TestWhichMeals(t *testing.T) {
	tests := []struct {
		hall    Hall
		weekday time.Weekday
		want    []Meal
	}{
		{Berk, time.Monday, []Meal{Lunch, Dinner, LateNight, GrabAndGo}},
		{Hamp, time.Monday, []Meal{Breakfast, Lunch, Dinner, GrabAndGo}},
		{Frank, time.Wednesday, []Meal{Breakfast, Lunch, Dinner, GrabAndGo}},
		{Worcester, time.Thursday, []Meal{Breakfast, Lunch, Dinner, LateNight, GrabAndGo}},
		{Berk, time.Friday, []Meal{Lunch, Dinner, LateNight, GrabAndGo}},
		{Worcester, time.Friday, []Meal{Breakfast, Lunch, Dinner, GrabAndGo}},
		{Berk, time.Saturday, []Meal{Lunch, Dinner, LateNight}},
		{Hamp, time.Saturday, []Meal{Lunch, Dinner}},
		{Worcester, time.Saturday, []Meal{Lunch, Dinner}},
		{Berk, time.Sunday, []Meal{Lunch, Dinner, LateNight}},
		{Hamp, time.Sunday, []Meal{Lunch, Dinner}},
		{Worcester, time.Sunday, []Meal{Lunch, Dinner, LateNight}},
	}

	for _, tt := range tests {
		got := WhichMeals(tt.hall, tt.weekday)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("WhichMeals(%v, %v) = %v, want %v", tt.hall, tt.weekday, got, tt.want)
		}
	}
}

func TestMealDisplayName(t *testing.T) {
	if got := Lunch.DisplayName(time.Wednesday); got != "Lunch" {
		t.Fatalf("weekday lunch = %q", got)
	}
	if got := Lunch.DisplayName(time.Saturday); got != "Brunch" {
		t.Fatalf("saturday lunch = %q", got)
	}
	if got := Lunch.DisplayName(time.Sunday); got != "Brunch" {
		t.Fatalf("sunday lunch = %q", got)
	}
	if got := LateNight.DisplayName(time.Monday); got != "Late Night" {
		t.Fatalf("late night = %q", got)
	}
	if got := GrabAndGo.DisplayName(time.Monday); got != "Grab n' Go" {
		t.Fatalf("grab and go = %q", got)
	}
}

func TestMenuURL(t *testing.T) {
	if got := menuURL(Berk); got != "http://umassdining.com/locations-menus/berkshire/menu" {
		t.Fatalf("menuURL(Berk) = %q", got)
	}
	if got := menuURL(Worcester); got != "http://umassdining.com/locations-menus/worcester/menu" {
		t.Fatalf("menuURL(Worcester) = %q", got)
	}
}
