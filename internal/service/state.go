package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/saidtaznakhte/Vitatrak/internal/model"
)

// app_state keys. Each key is read and written independently; there is
// no combined snapshot record.
const (
	StateLastLoginDate = "last_login_date"
	StateDailySteps    = "daily_steps"
	StateWaterIntake   = "water_intake"
	StateSleepHours    = "sleep_hours"
	StateMood          = "mood"
	StateActiveCals    = "active_calories"
	StateGoalWeightKg  = "goal_weight_kg"
	StateProfile       = "profile"
	StateVitals        = "vitals"
	StateLastSynced    = "last_synced"
	StateTheme         = "theme"
	StateOnboarded     = "has_completed_onboarding"
	StateLanguage      = "language"
)

func SetState(db *sql.DB, key, value string) error {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return fmt.Errorf("state key is required")
	}
	_, err := db.Exec(`
INSERT INTO app_state(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("set state %q: %w", key, err)
	}
	return nil
}

func GetState(db *sql.DB, key string) (string, bool, error) {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return "", false, fmt.Errorf("state key is required")
	}
	var value string
	err := db.QueryRow(`SELECT value FROM app_state WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get state %q: %w", key, err)
	}
	return value, true, nil
}

func DeleteState(db *sql.DB, key string) error {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return fmt.Errorf("state key is required")
	}
	if _, err := db.Exec(`DELETE FROM app_state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete state %q: %w", key, err)
	}
	return nil
}

func ListState(db *sql.DB) (map[string]string, error) {
	rows, err := db.Query(`SELECT key, value FROM app_state ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("list state: %w", err)
	}
	defer rows.Close()
	out := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan state: %w", err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate state: %w", err)
	}
	return out, nil
}

// GetStateInt reads an integer state key. A missing key or a value that
// no longer parses both yield the fallback; the next write repairs the
// row. Startup never fails on a corrupt value.
func GetStateInt(db *sql.DB, key string, fallback int) (int, error) {
	raw, ok, err := GetState(db, key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return fallback, nil
	}
	var v int
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return fallback, nil
	}
	return v, nil
}

func GetStateFloat(db *sql.DB, key string, fallback float64) (float64, error) {
	raw, ok, err := GetState(db, key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return fallback, nil
	}
	var v float64
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return fallback, nil
	}
	return v, nil
}

func SetStateInt(db *sql.DB, key string, value int) error {
	return SetState(db, key, fmt.Sprintf("%d", value))
}

func SetStateFloat(db *sql.DB, key string, value float64) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal state %q: %w", key, err)
	}
	return SetState(db, key, string(raw))
}

func GetProfile(db *sql.DB) (model.Profile, error) {
	profile := model.Profile{Name: "New User", Age: 25, UnitSystem: model.UnitsMetric}
	raw, ok, err := GetState(db, StateProfile)
	if err != nil {
		return model.Profile{}, err
	}
	if !ok {
		return profile, nil
	}
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		// Corrupt profile falls back to defaults; doctor reports it.
		return model.Profile{Name: "New User", Age: 25, UnitSystem: model.UnitsMetric}, nil
	}
	if profile.UnitSystem != model.UnitsImperial {
		profile.UnitSystem = model.UnitsMetric
	}
	return profile, nil
}

func SetProfile(db *sql.DB, p model.Profile) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return fmt.Errorf("profile name is required")
	}
	if p.Age <= 0 {
		return fmt.Errorf("profile age must be > 0")
	}
	if p.HeightCm < 0 {
		return fmt.Errorf("height must be >= 0")
	}
	switch p.UnitSystem {
	case model.UnitsMetric, model.UnitsImperial:
	case "":
		p.UnitSystem = model.UnitsMetric
	default:
		return fmt.Errorf("invalid unit system %q (use metric or imperial)", p.UnitSystem)
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	return SetState(db, StateProfile, string(raw))
}

func GetVitals(db *sql.DB) (model.Vitals, error) {
	var v model.Vitals
	raw, ok, err := GetState(db, StateVitals)
	if err != nil {
		return model.Vitals{}, err
	}
	if !ok {
		return v, nil
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return model.Vitals{}, nil
	}
	return v, nil
}

// SetVitals merges the provided fields into the stored record; nil
// fields leave the stored value untouched.
func SetVitals(db *sql.DB, update model.Vitals) (model.Vitals, error) {
	current, err := GetVitals(db)
	if err != nil {
		return model.Vitals{}, err
	}
	if update.HeartRate != nil {
		if *update.HeartRate <= 0 {
			return model.Vitals{}, fmt.Errorf("heart rate must be > 0")
		}
		current.HeartRate = update.HeartRate
	}
	if update.SpO2 != nil {
		if *update.SpO2 <= 0 || *update.SpO2 > 100 {
			return model.Vitals{}, fmt.Errorf("spo2 must be between 1 and 100")
		}
		current.SpO2 = update.SpO2
	}
	if update.BloodPressure != nil {
		bp := strings.TrimSpace(*update.BloodPressure)
		if bp == "" {
			return model.Vitals{}, fmt.Errorf("blood pressure is required when set")
		}
		current.BloodPressure = &bp
	}
	raw, err := json.Marshal(current)
	if err != nil {
		return model.Vitals{}, fmt.Errorf("marshal vitals: %w", err)
	}
	if err := SetState(db, StateVitals, string(raw)); err != nil {
		return model.Vitals{}, err
	}
	return current, nil
}

func GetMood(db *sql.DB) (model.Mood, error) {
	raw, ok, err := GetState(db, StateMood)
	if err != nil {
		return "", err
	}
	if !ok {
		return model.MoodHappy, nil
	}
	switch m := model.Mood(raw); m {
	case model.MoodHappy, model.MoodNeutral, model.MoodSad:
		return m, nil
	default:
		return model.MoodHappy, nil
	}
}

func SetMood(db *sql.DB, mood string) error {
	switch m := model.Mood(strings.TrimSpace(mood)); m {
	case model.MoodHappy, model.MoodNeutral, model.MoodSad:
		return SetState(db, StateMood, string(m))
	default:
		return fmt.Errorf("invalid mood %q (use Happy, Neutral, or Sad)", mood)
	}
}

func MarkSynced(db *sql.DB, at time.Time) error {
	return SetState(db, StateLastSynced, at.Format(time.RFC3339))
}

func LastSynced(db *sql.DB) (time.Time, bool, error) {
	raw, ok, err := GetState(db, StateLastSynced)
	if err != nil || !ok {
		return time.Time{}, false, err
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false, nil
	}
	return t, true, nil
}
