// Package foodlog stores meal entries, the source of truth every derived
// aggregate (streaks, weekly progress, analytics) is recomputed from.
package foodlog

import (
	"fmt"
	"time"
)

// MealType classifies an entry within the day.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// Valid reports whether m is one of the known meal types.
func (m MealType) Valid() bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

// Entry is a single logged meal.
type Entry struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	MealType MealType  `json:"meal_type"`
	FoodName string    `json:"food_name"`
	Calories int       `json:"calories"`
	Protein  float64   `json:"protein_g"`
	Carbs    float64   `json:"carbs_g"`
	Fats     float64   `json:"fats_g"`
	LoggedAt time.Time `json:"logged_at"`
}

// Validate checks the entry fields against the data model constraints.
func (e *Entry) Validate() error {
	if e.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if !e.MealType.Valid() {
		return fmt.Errorf("invalid meal type %q", e.MealType)
	}
	if e.FoodName == "" {
		return fmt.Errorf("food name is required")
	}
	if e.Calories < 0 {
		return fmt.Errorf("calories must be >= 0")
	}
	if e.Protein < 0 || e.Carbs < 0 || e.Fats < 0 {
		return fmt.Errorf("macros must be >= 0")
	}
	return nil
}

// DayCalories is one day's summed calorie total.
type DayCalories struct {
	Day      string `json:"date"`
	Calories int    `json:"calories"`
}
