package service

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/saidtaznakhte/Vitatrak/internal/model"
)

type DashboardStatus struct {
	Date           string           `json:"date"`
	Consumed       ConsumedTotals   `json:"consumed"`
	Goals          model.MacroGoals `json:"goals"`
	Remaining      RemainingMacros  `json:"remaining"`
	Steps          int              `json:"steps"`
	ActiveCalories int              `json:"active_calories"`
	WaterCups      int              `json:"water_cups"`
	SleepHours     float64          `json:"sleep_hours"`
	Mood           model.Mood       `json:"mood"`
	Health         HealthScore      `json:"health"`
}

// DashboardSummary assembles everything the dashboard view shows for
// one day. The wellness counters are today's regardless of the
// requested date; only meal totals are date-selectable, matching the
// day picker in the source of record.
func DashboardSummary(db *sql.DB, date time.Time) (*DashboardStatus, error) {
	day := LocalDay(date)
	consumed, err := DayTotals(db, day)
	if err != nil {
		return nil, err
	}
	goals, err := GetMacroGoals(db)
	if err != nil {
		return nil, err
	}
	steps, err := GetStateInt(db, StateDailySteps, 0)
	if err != nil {
		return nil, err
	}
	activeCals, err := GetStateInt(db, StateActiveCals, 0)
	if err != nil {
		return nil, err
	}
	water, err := GetStateInt(db, StateWaterIntake, 0)
	if err != nil {
		return nil, err
	}
	sleep, err := GetStateFloat(db, StateSleepHours, 0)
	if err != nil {
		return nil, err
	}
	mood, err := GetMood(db)
	if err != nil {
		return nil, err
	}

	return &DashboardStatus{
		Date:           day,
		Consumed:       consumed,
		Goals:          goals,
		Remaining:      Remaining(goals, consumed),
		Steps:          steps,
		ActiveCalories: activeCals,
		WaterCups:      water,
		SleepHours:     sleep,
		Mood:           mood,
		Health: ComputeHealthScore(ScoreInputs{
			Goals:      goals,
			Consumed:   consumed,
			Steps:      steps,
			WaterCups:  water,
			SleepHours: sleep,
		}),
	}, nil
}

// SetSteps overwrites today's step count and recomputes active
// calories from the linear calories-per-step model.
func SetSteps(db *sql.DB, steps int) error {
	if err := validateNonNegativeInt("steps", steps); err != nil {
		return err
	}
	if err := SetStateInt(db, StateDailySteps, steps); err != nil {
		return err
	}
	return SetStateInt(db, StateActiveCals, ActiveCaloriesForSteps(steps))
}

// ActiveCaloriesForSteps is the fixed linear model: no pace or terrain
// distinction.
func ActiveCaloriesForSteps(steps int) int {
	return int(math.Round(float64(steps) * 0.04))
}

func SetWater(db *sql.DB, cups int) error {
	if err := validateNonNegativeInt("water", cups); err != nil {
		return err
	}
	return SetStateInt(db, StateWaterIntake, cups)
}

func AddWater(db *sql.DB, cups int) (int, error) {
	current, err := GetStateInt(db, StateWaterIntake, 0)
	if err != nil {
		return 0, err
	}
	next := max(0, current+cups)
	if err := SetStateInt(db, StateWaterIntake, next); err != nil {
		return 0, err
	}
	return next, nil
}

func SetSleep(db *sql.DB, hours float64) error {
	if hours < 0 || hours > 24 {
		return fmt.Errorf("sleep hours must be between 0 and 24")
	}
	return SetStateFloat(db, StateSleepHours, hours)
}

// SyncData applies an external device snapshot: steps and sleep in one
// shot, then stamps last_synced.
func SyncData(db *sql.DB, steps int, sleepHours float64, at time.Time) error {
	if err := SetSteps(db, steps); err != nil {
		return err
	}
	if err := SetStateFloat(db, StateSleepHours, sleepHours); err != nil {
		return err
	}
	return MarkSynced(db, at)
}
