package service_test

import (
	"strings"
	"testing"

	"github.com/saidtaznakhte/Vitatrak/internal/service"
)

func TestLogMealValidation(t *testing.T) {
	sqldb := newTestDB(t)
	defer sqldb.Close()

	cases := []struct {
		name  string
		input service.LogMealInput
		want  string
	}{
		{"missing name", service.LogMealInput{MealType: "Lunch"}, "meal name is required"},
		{"negative calories", service.LogMealInput{Name: "Toast", Calories: -1, MealType: "Breakfast"}, "calories must be >= 0"},
		{"negative protein", service.LogMealInput{Name: "Toast", ProteinG: -0.5, MealType: "Breakfast"}, "protein must be >= 0"},
		{"bad meal type", service.LogMealInput{Name: "Toast", MealType: "Brunch"}, "invalid meal type"},
		{"bad date", service.LogMealInput{Name: "Toast", MealType: "Breakfast", Day: "01-02-2026"}, "invalid date"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.LogMeal(sqldb, tc.input)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLogAndListMealsByDay(t *testing.T) {
	sqldb := newTestDB(t)
	defer sqldb.Close()

	if _, err := service.LogMeal(sqldb, service.LogMealInput{Name: "Oatmeal", Calories: 320, ProteinG: 12, CarbsG: 54, FatG: 6, MealType: "Breakfast", Day: "2026-08-29"}); err != nil {
		t.Fatalf("log meal: %v", err)
	}
	if _, err := service.LogMeal(sqldb, service.LogMealInput{Name: "Chicken Salad", Calories: 450, ProteinG: 38, CarbsG: 20, FatG: 22, MealType: "Lunch", Day: "2026-08-29"}); err != nil {
		t.Fatalf("log meal: %v", err)
	}
	if _, err := service.LogMeal(sqldb, service.LogMealInput{Name: "Pasta", Calories: 700, ProteinG: 25, CarbsG: 90, FatG: 20, MealType: "Dinner", Day: "2026-08-30"}); err != nil {
		t.Fatalf("log meal: %v", err)
	}

	meals, err := service.ListMeals(sqldb, service.ListMealsFilter{Day: "2026-08-29"})
	if err != nil {
		t.Fatalf("list meals: %v", err)
	}
	if len(meals) != 2 {
		t.Fatalf("expected 2 meals on 2026-08-29, got %d", len(meals))
	}
	if meals[0].Name != "Oatmeal" || meals[1].Name != "Chicken Salad" {
		t.Fatalf("unexpected order: %q, %q", meals[0].Name, meals[1].Name)
	}
	if meals[0].SourceType != "manual" {
		t.Fatalf("expected default source_type manual, got %q", meals[0].SourceType)
	}

	byType, err := service.ListMeals(sqldb, service.ListMealsFilter{MealType: "Lunch"})
	if err != nil {
		t.Fatalf("list meals by type: %v", err)
	}
	if len(byType) != 1 || byType[0].Name != "Chicken Salad" {
		t.Fatalf("unexpected lunch list: %+v", byType)
	}
}

func TestSetMealType(t *testing.T) {
	sqldb := newTestDB(t)
	defer sqldb.Close()

	id, err := service.LogMeal(sqldb, service.LogMealInput{Name: "Leftovers", Calories: 400, MealType: "Dinner", Day: "2026-08-29"})
	if err != nil {
		t.Fatalf("log meal: %v", err)
	}
	if err := service.SetMealType(sqldb, id, "Lunch"); err != nil {
		t.Fatalf("set meal type: %v", err)
	}
	meals, err := service.ListMeals(sqldb, service.ListMealsFilter{Day: "2026-08-29"})
	if err != nil {
		t.Fatalf("list meals: %v", err)
	}
	if len(meals) != 1 || string(meals[0].MealType) != "Lunch" {
		t.Fatalf("expected reassigned meal type Lunch, got %+v", meals)
	}
	if err := service.SetMealType(sqldb, 9999, "Snack"); err == nil {
		t.Fatalf("expected not-found error for unknown meal id")
	}
}

func TestDeleteMeal(t *testing.T) {
	sqldb := newTestDB(t)
	defer sqldb.Close()

	id, err := service.LogMeal(sqldb, service.LogMealInput{Name: "Cookie", Calories: 150, MealType: "Snack"})
	if err != nil {
		t.Fatalf("log meal: %v", err)
	}
	if err := service.DeleteMeal(sqldb, id); err != nil {
		t.Fatalf("delete meal: %v", err)
	}
	if err := service.DeleteMeal(sqldb, id); err == nil {
		t.Fatalf("expected not-found error on second delete")
	}
}

func TestDayTotalsScopedToDay(t *testing.T) {
	sqldb := newTestDB(t)
	defer sqldb.Close()

	if _, err := service.LogMeal(sqldb, service.LogMealInput{Name: "Eggs", Calories: 220, ProteinG: 18, CarbsG: 2, FatG: 15, MealType: "Breakfast", Day: "2026-08-29"}); err != nil {
		t.Fatalf("log meal: %v", err)
	}
	if _, err := service.LogMeal(sqldb, service.LogMealInput{Name: "Burrito", Calories: 650, ProteinG: 30, CarbsG: 70, FatG: 25, MealType: "Lunch", Day: "2026-08-29"}); err != nil {
		t.Fatalf("log meal: %v", err)
	}
	if _, err := service.LogMeal(sqldb, service.LogMealInput{Name: "Soup", Calories: 300, ProteinG: 10, CarbsG: 30, FatG: 12, MealType: "Dinner", Day: "2026-08-28"}); err != nil {
		t.Fatalf("log meal: %v", err)
	}

	totals, err := service.DayTotals(sqldb, "2026-08-29")
	if err != nil {
		t.Fatalf("day totals: %v", err)
	}
	if totals.Calories != 870 || totals.ProteinG != 48 || totals.CarbsG != 72 || totals.FatG != 40 {
		t.Fatalf("unexpected totals: %+v", totals)
	}

	empty, err := service.DayTotals(sqldb, "2026-01-01")
	if err != nil {
		t.Fatalf("day totals: %v", err)
	}
	if empty.Calories != 0 || empty.ProteinG != 0 {
		t.Fatalf("expected zero totals for empty day, got %+v", empty)
	}
}
