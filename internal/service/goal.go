package service

import (
	"database/sql"
	"fmt"

	"github.com/saidtaznakhte/Vitatrak/internal/model"
)

var defaultMacroGoals = model.MacroGoals{
	Calories: 2000,
	ProteinG: 150,
	CarbsG:   200,
	FatG:     70,
}

// SetMacroGoals replaces all four targets at once; there is no goal
// history, matching the settings flow that edits them wholesale.
func SetMacroGoals(db *sql.DB, g model.MacroGoals) error {
	if err := validateNonNegativeInt("calories", g.Calories); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("protein", g.ProteinG); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("carbs", g.CarbsG); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("fats", g.FatG); err != nil {
		return err
	}
	_, err := db.Exec(`
INSERT INTO macro_goals(id, calories, protein_g, carbs_g, fat_g, updated_at)
VALUES(1, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(id) DO UPDATE SET
  calories=excluded.calories,
  protein_g=excluded.protein_g,
  carbs_g=excluded.carbs_g,
  fat_g=excluded.fat_g,
  updated_at=excluded.updated_at
`, g.Calories, g.ProteinG, g.CarbsG, g.FatG)
	if err != nil {
		return fmt.Errorf("set macro goals: %w", err)
	}
	return nil
}

func GetMacroGoals(db *sql.DB) (model.MacroGoals, error) {
	var g model.MacroGoals
	err := db.QueryRow(`
SELECT calories, protein_g, carbs_g, fat_g FROM macro_goals WHERE id = 1
`).Scan(&g.Calories, &g.ProteinG, &g.CarbsG, &g.FatG)
	if err == sql.ErrNoRows {
		return defaultMacroGoals, nil
	}
	if err != nil {
		return model.MacroGoals{}, fmt.Errorf("get macro goals: %w", err)
	}
	return g, nil
}

type RemainingMacros struct {
	Calories int     `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// Remaining floors every macro at zero; overshooting a goal never
// produces a negative remainder.
func Remaining(goals model.MacroGoals, consumed ConsumedTotals) RemainingMacros {
	return RemainingMacros{
		Calories: max(0, goals.Calories-consumed.Calories),
		ProteinG: max(0, goals.ProteinG-consumed.ProteinG),
		CarbsG:   max(0, goals.CarbsG-consumed.CarbsG),
		FatG:     max(0, goals.FatG-consumed.FatG),
	}
}
