package service

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/saidtaznakhte/Vitatrak/internal/model"
)

type LogWeightInput struct {
	// Weight in the unit the caller works in; Unit selects kg or lb.
	Weight     float64
	UnitSystem model.UnitSystem
	RecordedAt time.Time
}

// LogWeight upserts the entry for the calendar day of RecordedAt: a
// second weight logged on the same day replaces the first instead of
// appending. The weights table keeps at most one row per day.
func LogWeight(db *sql.DB, in LogWeightInput) (int64, error) {
	if in.Weight <= 0 {
		return 0, fmt.Errorf("weight must be > 0")
	}
	weightKg := WeightToKg(in.Weight, in.UnitSystem)
	if in.RecordedAt.IsZero() {
		in.RecordedAt = time.Now()
	}
	day := LocalDay(in.RecordedAt)

	res, err := db.Exec(`
INSERT INTO weights(recorded_at, day, weight_kg)
VALUES(?, ?, ?)
ON CONFLICT(day) DO UPDATE SET
  recorded_at=excluded.recorded_at,
  weight_kg=excluded.weight_kg,
  updated_at=CURRENT_TIMESTAMP
`, in.RecordedAt.Format(time.RFC3339), day, weightKg)
	if err != nil {
		return 0, fmt.Errorf("log weight for %s: %w", day, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve weight entry id: %w", err)
	}
	return id, nil
}

// ListWeights returns the full history sorted ascending by date.
func ListWeights(db *sql.DB) ([]model.WeightEntry, error) {
	rows, err := db.Query(`
SELECT id, recorded_at, day, weight_kg FROM weights ORDER BY recorded_at ASC
`)
	if err != nil {
		return nil, fmt.Errorf("list weights: %w", err)
	}
	defer rows.Close()

	entries := make([]model.WeightEntry, 0)
	for rows.Next() {
		var e model.WeightEntry
		var recordedRaw string
		if err := rows.Scan(&e.ID, &recordedRaw, &e.Day, &e.WeightKg); err != nil {
			return nil, fmt.Errorf("scan weight entry: %w", err)
		}
		recorded, err := time.Parse(time.RFC3339, recordedRaw)
		if err != nil {
			return nil, fmt.Errorf("parse recorded_at for weight %d: %w", e.ID, err)
		}
		e.RecordedAt = recorded
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate weights: %w", err)
	}
	return entries, nil
}

func DeleteWeight(db *sql.DB, id int64) error {
	if id <= 0 {
		return fmt.Errorf("weight entry id must be > 0")
	}
	res, err := db.Exec(`DELETE FROM weights WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete weight entry %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected for weight entry %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("weight entry %d not found", id)
	}
	return nil
}

// CurrentWeightKg returns the latest logged weight, or 0 when the
// history is empty.
func CurrentWeightKg(db *sql.DB) (float64, error) {
	var kg float64
	err := db.QueryRow(`SELECT weight_kg FROM weights ORDER BY recorded_at DESC LIMIT 1`).Scan(&kg)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("current weight: %w", err)
	}
	return kg, nil
}

func SetGoalWeight(db *sql.DB, weight float64, system model.UnitSystem) error {
	if weight <= 0 {
		return fmt.Errorf("goal weight must be > 0")
	}
	return SetStateFloat(db, StateGoalWeightKg, WeightToKg(weight, system))
}

func GoalWeightKg(db *sql.DB) (float64, error) {
	return GetStateFloat(db, StateGoalWeightKg, 0)
}

// SetWeightAndGoal writes the current weight and the goal weight in a
// single transaction so a crash cannot leave one updated without the
// other.
func SetWeightAndGoal(db *sql.DB, current, goal float64, system model.UnitSystem) error {
	if current <= 0 {
		return fmt.Errorf("weight must be > 0")
	}
	if goal <= 0 {
		return fmt.Errorf("goal weight must be > 0")
	}
	now := time.Now()
	day := LocalDay(now)
	currentKg := WeightToKg(current, system)
	goalKg := WeightToKg(goal, system)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin weight update tx: %w", err)
	}
	if _, err := tx.Exec(`
INSERT INTO weights(recorded_at, day, weight_kg)
VALUES(?, ?, ?)
ON CONFLICT(day) DO UPDATE SET
  recorded_at=excluded.recorded_at,
  weight_kg=excluded.weight_kg,
  updated_at=CURRENT_TIMESTAMP
`, now.Format(time.RFC3339), day, currentKg); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("log weight for %s: %w", day, err)
	}
	if _, err := tx.Exec(`
INSERT INTO app_state(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, StateGoalWeightKg, fmt.Sprintf("%g", goalKg)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("set goal weight: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit weight update tx: %w", err)
	}
	return nil
}

// GoalReached reports whether the latest weight has met the goal. Both
// must be set; with no history or no goal it is false.
func GoalReached(currentKg, goalKg float64) bool {
	return currentKg > 0 && goalKg > 0 && currentKg <= goalKg
}
