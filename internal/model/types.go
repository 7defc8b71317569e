package model

import "time"

type MealType string

const (
	MealBreakfast MealType = "Breakfast"
	MealLunch     MealType = "Lunch"
	MealDinner    MealType = "Dinner"
	MealSnack     MealType = "Snack"
)

type Meal struct {
	ID         int64
	Name       string
	Calories   int
	ProteinG   float64
	CarbsG     float64
	FatG       float64
	MealType   MealType
	EatenOn    string
	SourceType string
	CreatedAt  time.Time
}

type WeightEntry struct {
	ID         int64
	RecordedAt time.Time
	Day        string
	WeightKg   float64
}

type MacroGoals struct {
	Calories int
	ProteinG float64
	CarbsG   float64
	FatG     float64
}

type UnitSystem string

const (
	UnitsMetric   UnitSystem = "metric"
	UnitsImperial UnitSystem = "imperial"
)

type Profile struct {
	Name       string     `json:"name"`
	Age        int        `json:"age"`
	AvatarURL  string     `json:"avatar_url,omitempty"`
	HeightCm   float64    `json:"height_cm,omitempty"`
	UnitSystem UnitSystem `json:"unit_system,omitempty"`
}

type Mood string

const (
	MoodHappy   Mood = "Happy"
	MoodNeutral Mood = "Neutral"
	MoodSad     Mood = "Sad"
)

// Vitals fields stay nil until a scan or manual update fills them in.
// They are not day-scoped and survive rollover.
type Vitals struct {
	HeartRate     *int    `json:"heart_rate"`
	SpO2          *int    `json:"sp_o2"`
	BloodPressure *string `json:"blood_pressure"`
}

type MealNutrition struct {
	Name     string  `json:"name"`
	Calories int     `json:"calories"`
	ProteinG float64 `json:"protein"`
	CarbsG   float64 `json:"carbs"`
	FatG     float64 `json:"fats"`
}
