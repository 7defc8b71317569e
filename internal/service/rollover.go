package service

import (
	"database/sql"
	"fmt"
	"time"
)

// Day-scoped counters zeroed when the calendar day changes. Weight
// history and the meal log carry their own dates and never roll over.
var dayScopedKeys = []string{
	StateDailySteps,
	StateWaterIntake,
	StateSleepHours,
	StateActiveCals,
}

// RolloverIfNeeded compares the stored last-login date with today's
// device-local date. On mismatch it zeroes the day-scoped counters and
// records the new date, all in one transaction. Calling it again on the
// same day is a no-op.
func RolloverIfNeeded(db *sql.DB, now time.Time) (bool, error) {
	today := LocalDay(now)
	last, ok, err := GetState(db, StateLastLoginDate)
	if err != nil {
		return false, err
	}
	if ok && last == today {
		return false, nil
	}

	tx, err := db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin rollover tx: %w", err)
	}
	for _, key := range dayScopedKeys {
		if _, err := tx.Exec(`
INSERT INTO app_state(key, value, updated_at)
VALUES(?, '0', CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value='0', updated_at=CURRENT_TIMESTAMP
`, key); err != nil {
			_ = tx.Rollback()
			return false, fmt.Errorf("reset %s: %w", key, err)
		}
	}
	if _, err := tx.Exec(`
INSERT INTO app_state(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=CURRENT_TIMESTAMP
`, StateLastLoginDate, today); err != nil {
		_ = tx.Rollback()
		return false, fmt.Errorf("record login date: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit rollover tx: %w", err)
	}
	return true, nil
}
