package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/saidtaznakhte/Vitatrak/internal/model"
)

type ExportMeal struct {
	Name       string  `json:"name"`
	Calories   int     `json:"calories"`
	ProteinG   float64 `json:"protein_g"`
	CarbsG     float64 `json:"carbs_g"`
	FatG       float64 `json:"fat_g"`
	MealType   string  `json:"meal_type"`
	EatenOn    string  `json:"eaten_on"`
	SourceType string  `json:"source_type"`
}

type ExportWeight struct {
	RecordedAt string  `json:"recorded_at"`
	Day        string  `json:"day"`
	WeightKg   float64 `json:"weight_kg"`
}

type ExportData struct {
	Meals   []ExportMeal      `json:"meals"`
	Weights []ExportWeight    `json:"weights"`
	Goals   *model.MacroGoals `json:"goals,omitempty"`
	State   map[string]string `json:"state"`
}

type ImportMode string

const (
	ImportModeFail    ImportMode = "fail"
	ImportModeSkip    ImportMode = "skip"
	ImportModeMerge   ImportMode = "merge"
	ImportModeReplace ImportMode = "replace"
)

type ImportOptions struct {
	Mode   ImportMode
	DryRun bool
}

type ImportReport struct {
	Inserted  int      `json:"inserted"`
	Updated   int      `json:"updated"`
	Skipped   int      `json:"skipped"`
	Conflicts int      `json:"conflicts"`
	Warnings  []string `json:"warnings,omitempty"`
}

func ExportDataSnapshot(db *sql.DB) (*ExportData, error) {
	out := &ExportData{State: map[string]string{}}

	mealRows, err := db.Query(`
SELECT name, calories, protein_g, carbs_g, fat_g, meal_type, eaten_on, source_type
FROM meals ORDER BY eaten_on ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("export meals: %w", err)
	}
	for mealRows.Next() {
		var m ExportMeal
		if err := mealRows.Scan(&m.Name, &m.Calories, &m.ProteinG, &m.CarbsG, &m.FatG, &m.MealType, &m.EatenOn, &m.SourceType); err != nil {
			_ = mealRows.Close()
			return nil, fmt.Errorf("scan export meal: %w", err)
		}
		out.Meals = append(out.Meals, m)
	}
	_ = mealRows.Close()

	weightRows, err := db.Query(`SELECT recorded_at, day, weight_kg FROM weights ORDER BY recorded_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("export weights: %w", err)
	}
	for weightRows.Next() {
		var w ExportWeight
		if err := weightRows.Scan(&w.RecordedAt, &w.Day, &w.WeightKg); err != nil {
			_ = weightRows.Close()
			return nil, fmt.Errorf("scan export weight: %w", err)
		}
		out.Weights = append(out.Weights, w)
	}
	_ = weightRows.Close()

	var goals model.MacroGoals
	err = db.QueryRow(`SELECT calories, protein_g, carbs_g, fat_g FROM macro_goals WHERE id = 1`).
		Scan(&goals.Calories, &goals.ProteinG, &goals.CarbsG, &goals.FatG)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("export goals: %w", err)
	}
	if err == nil {
		out.Goals = &goals
	}

	state, err := ListState(db)
	if err != nil {
		return nil, err
	}
	out.State = state

	return out, nil
}

func ImportDataSnapshot(db *sql.DB, data *ExportData) (ImportReport, error) {
	return ImportDataSnapshotWithOptions(db, data, ImportOptions{Mode: ImportModeMerge})
}

func ImportDataSnapshotWithOptions(db *sql.DB, data *ExportData, opts ImportOptions) (ImportReport, error) {
	report := ImportReport{}
	mode := normalizeImportMode(opts.Mode)

	tx, err := db.Begin()
	if err != nil {
		return report, fmt.Errorf("begin import tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if mode == ImportModeReplace && !opts.DryRun {
		if err := clearUserData(tx); err != nil {
			return report, err
		}
	}

	for idx, m := range data.Meals {
		if strings.TrimSpace(m.Name) == "" {
			report.Warnings = append(report.Warnings, fmt.Sprintf("meal[%d] missing name", idx))
			report.Conflicts++
			continue
		}
		mealType, err := validateMealType(m.MealType)
		if err != nil {
			report.Warnings = append(report.Warnings, fmt.Sprintf("meal[%d] %q: %v", idx, m.Name, err))
			report.Conflicts++
			continue
		}
		day, err := validateDay(m.EatenOn)
		if err != nil {
			report.Warnings = append(report.Warnings, fmt.Sprintf("meal[%d] %q: %v", idx, m.Name, err))
			report.Conflicts++
			continue
		}
		sourceType := strings.TrimSpace(m.SourceType)
		if sourceType == "" {
			sourceType = "manual"
		}

		existingID, err := findExistingMealID(tx, m.Name, string(mealType), day, sourceType)
		if err != nil {
			return report, err
		}
		if existingID > 0 {
			switch mode {
			case ImportModeFail:
				report.Conflicts++
				return report, fmt.Errorf("import conflict for meal %q on %s", m.Name, day)
			case ImportModeSkip:
				report.Skipped++
				continue
			case ImportModeMerge, ImportModeReplace:
				if opts.DryRun {
					report.Updated++
					continue
				}
				if _, err := tx.Exec(`
UPDATE meals SET calories=?, protein_g=?, carbs_g=?, fat_g=?, updated_at=CURRENT_TIMESTAMP WHERE id=?
`, m.Calories, m.ProteinG, m.CarbsG, m.FatG, existingID); err != nil {
					return report, fmt.Errorf("merge meal %q: %w", m.Name, err)
				}
				report.Updated++
				continue
			}
		}
		if opts.DryRun {
			report.Inserted++
			continue
		}
		if _, err := tx.Exec(`
INSERT INTO meals(name, calories, protein_g, carbs_g, fat_g, meal_type, eaten_on, source_type)
VALUES(?, ?, ?, ?, ?, ?, ?, ?)
`, m.Name, m.Calories, m.ProteinG, m.CarbsG, m.FatG, string(mealType), day, sourceType); err != nil {
			return report, fmt.Errorf("import meal %q: %w", m.Name, err)
		}
		report.Inserted++
	}

	for idx, w := range data.Weights {
		day, err := validateDay(w.Day)
		if err != nil {
			report.Warnings = append(report.Warnings, fmt.Sprintf("weight[%d]: %v", idx, err))
			report.Conflicts++
			continue
		}
		if w.WeightKg <= 0 {
			report.Warnings = append(report.Warnings, fmt.Sprintf("weight[%d] for %s: weight must be > 0", idx, day))
			report.Conflicts++
			continue
		}
		recordedAt := strings.TrimSpace(w.RecordedAt)
		if recordedAt == "" {
			recordedAt = time.Now().Format(time.RFC3339)
		} else if _, err := time.Parse(time.RFC3339, recordedAt); err != nil {
			report.Warnings = append(report.Warnings, fmt.Sprintf("weight[%d] for %s: invalid recorded_at", idx, day))
			report.Conflicts++
			continue
		}

		var existingID int64
		err = tx.QueryRow(`SELECT id FROM weights WHERE day = ?`, day).Scan(&existingID)
		if err != nil && err != sql.ErrNoRows {
			return report, fmt.Errorf("check existing weight for %s: %w", day, err)
		}
		if existingID > 0 {
			switch mode {
			case ImportModeFail:
				report.Conflicts++
				return report, fmt.Errorf("import conflict for weight on %s", day)
			case ImportModeSkip:
				report.Skipped++
				continue
			}
			if opts.DryRun {
				report.Updated++
				continue
			}
		} else if opts.DryRun {
			report.Inserted++
			continue
		}
		if _, err := tx.Exec(`
INSERT INTO weights(recorded_at, day, weight_kg)
VALUES(?, ?, ?)
ON CONFLICT(day) DO UPDATE SET
  recorded_at=excluded.recorded_at,
  weight_kg=excluded.weight_kg,
  updated_at=CURRENT_TIMESTAMP
`, recordedAt, day, w.WeightKg); err != nil {
			return report, fmt.Errorf("import weight for %s: %w", day, err)
		}
		if existingID > 0 {
			report.Updated++
		} else {
			report.Inserted++
		}
	}

	if data.Goals != nil && !opts.DryRun {
		g := *data.Goals
		if g.Calories < 0 || g.ProteinG < 0 || g.CarbsG < 0 || g.FatG < 0 {
			report.Warnings = append(report.Warnings, "goals contain negative values; skipped")
			report.Conflicts++
		} else {
			if _, err := tx.Exec(`
INSERT INTO macro_goals(id, calories, protein_g, carbs_g, fat_g)
VALUES(1, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  calories=excluded.calories, protein_g=excluded.protein_g,
  carbs_g=excluded.carbs_g, fat_g=excluded.fat_g, updated_at=CURRENT_TIMESTAMP
`, g.Calories, g.ProteinG, g.CarbsG, g.FatG); err != nil {
				return report, fmt.Errorf("import goals: %w", err)
			}
			report.Updated++
		}
	}

	for key, value := range data.State {
		if strings.TrimSpace(key) == "" {
			continue
		}
		if opts.DryRun {
			report.Updated++
			continue
		}
		if _, err := tx.Exec(`
INSERT INTO app_state(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, strings.ToLower(strings.TrimSpace(key)), value); err != nil {
			return report, fmt.Errorf("import state key %q: %w", key, err)
		}
		report.Updated++
	}

	if opts.DryRun {
		return report, nil
	}
	if err := tx.Commit(); err != nil {
		return report, fmt.Errorf("commit import tx: %w", err)
	}
	return report, nil
}

func normalizeImportMode(mode ImportMode) ImportMode {
	switch mode {
	case ImportModeFail, ImportModeSkip, ImportModeMerge, ImportModeReplace:
		return mode
	default:
		return ImportModeMerge
	}
}

func findExistingMealID(tx *sql.Tx, name, mealType, day, sourceType string) (int64, error) {
	var id int64
	err := tx.QueryRow(`
SELECT id FROM meals
WHERE name = ? AND meal_type = ? AND eaten_on = ? AND source_type = ?
LIMIT 1
`, name, mealType, day, sourceType).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("check existing meal %q: %w", name, err)
	}
	return id, nil
}

func clearUserData(tx *sql.Tx) error {
	stmts := []string{
		`DELETE FROM meals`,
		`DELETE FROM weights`,
		`DELETE FROM macro_goals`,
		`DELETE FROM app_state`,
		`DELETE FROM lookup_cache`,
	}
	for _, s := range stmts {
		if _, err := tx.Exec(s); err != nil {
			return fmt.Errorf("clear data for replace mode: %w", err)
		}
	}
	return nil
}
