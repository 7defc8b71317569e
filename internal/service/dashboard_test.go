package service_test

import (
	"testing"
	"time"

	"github.com/saidtaznakhte/Vitatrak/internal/model"
	"github.com/saidtaznakhte/Vitatrak/internal/service"
)

func TestDashboardSummary(t *testing.T) {
	sqldb := newTestDB(t)
	defer sqldb.Close()

	day := "2026-08-29"
	if err := service.SetMacroGoals(sqldb, model.MacroGoals{Calories: 2000, ProteinG: 150, CarbsG: 200, FatG: 70}); err != nil {
		t.Fatalf("set goals: %v", err)
	}
	if _, err := service.LogMeal(sqldb, service.LogMealInput{Name: "Omelette", Calories: 350, ProteinG: 24, CarbsG: 4, FatG: 26, MealType: "Breakfast", Day: day}); err != nil {
		t.Fatalf("log meal: %v", err)
	}
	if _, err := service.LogMeal(sqldb, service.LogMealInput{Name: "Rice Bowl", Calories: 650, ProteinG: 35, CarbsG: 80, FatG: 18, MealType: "Lunch", Day: day}); err != nil {
		t.Fatalf("log meal: %v", err)
	}
	if err := service.SetSteps(sqldb, 7500); err != nil {
		t.Fatalf("set steps: %v", err)
	}
	if err := service.SetWater(sqldb, 5); err != nil {
		t.Fatalf("set water: %v", err)
	}
	if err := service.SetSleep(sqldb, 7); err != nil {
		t.Fatalf("set sleep: %v", err)
	}

	at, err := time.ParseInLocation("2006-01-02", day, time.Local)
	if err != nil {
		t.Fatalf("parse day: %v", err)
	}
	status, err := service.DashboardSummary(sqldb, at)
	if err != nil {
		t.Fatalf("dashboard summary: %v", err)
	}
	if status.Date != day {
		t.Fatalf("unexpected date %q", status.Date)
	}
	if status.Consumed.Calories != 1000 || status.Consumed.ProteinG != 59 {
		t.Fatalf("unexpected consumed totals: %+v", status.Consumed)
	}
	if status.Remaining.Calories != 1000 || status.Remaining.ProteinG != 91 {
		t.Fatalf("unexpected remaining: %+v", status.Remaining)
	}
	if status.Steps != 7500 {
		t.Fatalf("unexpected steps: %d", status.Steps)
	}
	if status.ActiveCalories != 300 {
		t.Fatalf("expected 7500 steps as 300 active calories, got %d", status.ActiveCalories)
	}
	if status.WaterCups != 5 || status.SleepHours != 7 {
		t.Fatalf("unexpected wellness counters: %d cups, %v hours", status.WaterCups, status.SleepHours)
	}
	if status.Health.Score <= 0 || status.Health.Score > 10 {
		t.Fatalf("health score out of range: %v", status.Health.Score)
	}
}

func TestSetStepsRecomputesActiveCalories(t *testing.T) {
	sqldb := newTestDB(t)
	defer sqldb.Close()

	if err := service.SetSteps(sqldb, 10000); err != nil {
		t.Fatalf("set steps: %v", err)
	}
	cals, err := service.GetStateInt(sqldb, service.StateActiveCals, -1)
	if err != nil {
		t.Fatalf("get active calories: %v", err)
	}
	if cals != 400 {
		t.Fatalf("expected 400 active calories for 10000 steps, got %d", cals)
	}
	if err := service.SetSteps(sqldb, -5); err == nil {
		t.Fatalf("expected error for negative steps")
	}
}

func TestAddWaterFloorsAtZero(t *testing.T) {
	sqldb := newTestDB(t)
	defer sqldb.Close()

	got, err := service.AddWater(sqldb, 3)
	if err != nil {
		t.Fatalf("add water: %v", err)
	}
	if got != 3 {
		t.Fatalf("expected 3 cups, got %d", got)
	}
	got, err = service.AddWater(sqldb, -5)
	if err != nil {
		t.Fatalf("remove water: %v", err)
	}
	if got != 0 {
		t.Fatalf("expected floor at 0, got %d", got)
	}
}

func TestSetSleepRange(t *testing.T) {
	sqldb := newTestDB(t)
	defer sqldb.Close()

	if err := service.SetSleep(sqldb, 25); err == nil {
		t.Fatalf("expected error for sleep above 24 hours")
	}
	if err := service.SetSleep(sqldb, -1); err == nil {
		t.Fatalf("expected error for negative sleep")
	}
	if err := service.SetSleep(sqldb, 7.5); err != nil {
		t.Fatalf("set sleep: %v", err)
	}
}

func TestSyncDataStampsLastSynced(t *testing.T) {
	sqldb := newTestDB(t)
	defer sqldb.Close()

	at := time.Date(2026, 8, 29, 9, 30, 0, 0, time.Local)
	if err := service.SyncData(sqldb, 6400, 7.2, at); err != nil {
		t.Fatalf("sync data: %v", err)
	}
	steps, err := service.GetStateInt(sqldb, service.StateDailySteps, -1)
	if err != nil {
		t.Fatalf("get steps: %v", err)
	}
	if steps != 6400 {
		t.Fatalf("expected synced steps 6400, got %d", steps)
	}
	synced, ok, err := service.LastSynced(sqldb)
	if err != nil {
		t.Fatalf("last synced: %v", err)
	}
	if !ok || !synced.Equal(at) {
		t.Fatalf("expected last synced %v, got %v (ok=%v)", at, synced, ok)
	}
}
