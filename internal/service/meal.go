package service

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/saidtaznakhte/Vitatrak/internal/model"
)

type LogMealInput struct {
	Name       string
	Calories   int
	ProteinG   float64
	CarbsG     float64
	FatG       float64
	MealType   string
	Day        string
	SourceType string
}

type ListMealsFilter struct {
	Day      string
	FromDay  string
	ToDay    string
	MealType string
	Limit    int
}

func LogMeal(db *sql.DB, in LogMealInput) (int64, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return 0, fmt.Errorf("meal name is required")
	}
	if err := validateNonNegativeInt("calories", in.Calories); err != nil {
		return 0, err
	}
	if err := validateNonNegativeFloat("protein", in.ProteinG); err != nil {
		return 0, err
	}
	if err := validateNonNegativeFloat("carbs", in.CarbsG); err != nil {
		return 0, err
	}
	if err := validateNonNegativeFloat("fats", in.FatG); err != nil {
		return 0, err
	}
	mealType, err := validateMealType(in.MealType)
	if err != nil {
		return 0, err
	}
	day, err := validateDay(in.Day)
	if err != nil {
		return 0, err
	}
	if strings.TrimSpace(in.SourceType) == "" {
		in.SourceType = "manual"
	}

	res, err := db.Exec(`
INSERT INTO meals(name, calories, protein_g, carbs_g, fat_g, meal_type, eaten_on, source_type)
VALUES(?, ?, ?, ?, ?, ?, ?, ?)
`, in.Name, in.Calories, in.ProteinG, in.CarbsG, in.FatG, string(mealType), day, in.SourceType)
	if err != nil {
		return 0, fmt.Errorf("insert meal: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve inserted meal id: %w", err)
	}
	return id, nil
}

func ListMeals(db *sql.DB, f ListMealsFilter) ([]model.Meal, error) {
	query := `
SELECT id, name, calories, protein_g, carbs_g, fat_g, meal_type, eaten_on, source_type, created_at
FROM meals
WHERE 1=1`
	args := make([]any, 0)

	if strings.TrimSpace(f.Day) != "" {
		day, err := validateDay(f.Day)
		if err != nil {
			return nil, err
		}
		query += ` AND eaten_on = ?`
		args = append(args, day)
	}
	if strings.TrimSpace(f.FromDay) != "" {
		from, err := validateDay(f.FromDay)
		if err != nil {
			return nil, err
		}
		query += ` AND eaten_on >= ?`
		args = append(args, from)
	}
	if strings.TrimSpace(f.ToDay) != "" {
		to, err := validateDay(f.ToDay)
		if err != nil {
			return nil, err
		}
		query += ` AND eaten_on <= ?`
		args = append(args, to)
	}
	if strings.TrimSpace(f.MealType) != "" {
		mealType, err := validateMealType(f.MealType)
		if err != nil {
			return nil, err
		}
		query += ` AND meal_type = ?`
		args = append(args, string(mealType))
	}
	query += ` ORDER BY eaten_on ASC, id ASC`

	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	defer rows.Close()

	meals := make([]model.Meal, 0)
	for rows.Next() {
		var m model.Meal
		var mealType string
		if err := rows.Scan(&m.ID, &m.Name, &m.Calories, &m.ProteinG, &m.CarbsG, &m.FatG, &mealType, &m.EatenOn, &m.SourceType, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan meal: %w", err)
		}
		m.MealType = model.MealType(mealType)
		meals = append(meals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meals: %w", err)
	}
	return meals, nil
}

// SetMealType is the only mutation a logged meal supports besides delete.
func SetMealType(db *sql.DB, id int64, mealType string) error {
	if id <= 0 {
		return fmt.Errorf("meal id must be > 0")
	}
	mt, err := validateMealType(mealType)
	if err != nil {
		return err
	}
	res, err := db.Exec(`
UPDATE meals SET meal_type = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
`, string(mt), id)
	if err != nil {
		return fmt.Errorf("update meal %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected for meal %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("meal %d not found", id)
	}
	return nil
}

func DeleteMeal(db *sql.DB, id int64) error {
	if id <= 0 {
		return fmt.Errorf("meal id must be > 0")
	}
	res, err := db.Exec(`DELETE FROM meals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete meal %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected for meal %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("meal %d not found", id)
	}
	return nil
}

// DayTotals sums consumed macros over the meals logged for a single
// calendar day. Meals for other days never contribute.
func DayTotals(db *sql.DB, day string) (ConsumedTotals, error) {
	day, err := validateDay(day)
	if err != nil {
		return ConsumedTotals{}, err
	}
	var t ConsumedTotals
	t.Day = day
	err = db.QueryRow(`
SELECT IFNULL(SUM(calories), 0), IFNULL(SUM(protein_g), 0), IFNULL(SUM(carbs_g), 0), IFNULL(SUM(fat_g), 0)
FROM meals
WHERE eaten_on = ?
`, day).Scan(&t.Calories, &t.ProteinG, &t.CarbsG, &t.FatG)
	if err != nil {
		return ConsumedTotals{}, fmt.Errorf("sum meals for %s: %w", day, err)
	}
	return t, nil
}

type ConsumedTotals struct {
	Day      string  `json:"date"`
	Calories int     `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}
