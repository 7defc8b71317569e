package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/saidtaznakhte/Vitatrak/internal/model"
)

func validateNonNegativeInt(name string, value int) error {
	if value < 0 {
		return fmt.Errorf("%s must be >= 0", name)
	}
	return nil
}

func validateNonNegativeFloat(name string, value float64) error {
	if value < 0 {
		return fmt.Errorf("%s must be >= 0", name)
	}
	return nil
}

func validateMealType(value string) (model.MealType, error) {
	switch mt := model.MealType(strings.TrimSpace(value)); mt {
	case model.MealBreakfast, model.MealLunch, model.MealDinner, model.MealSnack:
		return mt, nil
	default:
		return "", fmt.Errorf("invalid meal type %q (use Breakfast, Lunch, Dinner, or Snack)", value)
	}
}

func validateDay(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return LocalDay(time.Now()), nil
	}
	if _, err := time.ParseInLocation("2006-01-02", value, time.Local); err != nil {
		return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return value, nil
}

// LocalDay renders a device-local calendar day; rollover and meal
// bucketing both key off this, never a UTC-shifted day.
func LocalDay(t time.Time) string {
	return t.Local().Format("2006-01-02")
}
