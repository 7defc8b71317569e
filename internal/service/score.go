package service

import (
	"math"

	"github.com/saidtaznakhte/Vitatrak/internal/model"
)

const (
	stepsTarget = 10000
	waterTarget = 8
	sleepTarget = 8.0
)

type ScoreInputs struct {
	Goals      model.MacroGoals
	Consumed   ConsumedTotals
	Steps      int
	WaterCups  int
	SleepHours float64
}

type HealthScore struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

type subScore struct {
	name     string
	value    float64
	feedback string
}

// ComputeHealthScore folds five weighted sub-scores into a 0-10 value.
// Calorie adherence is symmetric around the goal (weight 2.5), protein
// is capped at full credit (1.5), and steps, water, and sleep each
// contribute up to 2 against fixed daily targets.
//
// The feedback tie-break walks the sub-scores in declaration order:
// calories, protein, steps, water, sleep. The first lowest wins.
func ComputeHealthScore(in ScoreInputs) HealthScore {
	var calorieScore float64
	if in.Goals.Calories > 0 {
		goal := float64(in.Goals.Calories)
		calorieScore = math.Max(0, 2.5*(1-math.Abs(float64(in.Consumed.Calories)-goal)/goal))
	}
	var proteinScore float64
	if in.Goals.ProteinG > 0 {
		proteinScore = math.Min(1.5, in.Consumed.ProteinG/in.Goals.ProteinG*1.5)
	}

	scores := []subScore{
		{"calories", calorieScore, "Focus on your calorie goal to improve your score."},
		{"protein", proteinScore, "A bit more protein could boost your results."},
		{"steps", math.Min(2, float64(in.Steps)/stepsTarget*2), "A short walk could make a big difference today!"},
		{"water", math.Min(2, float64(in.WaterCups)/waterTarget*2), "Stay hydrated to elevate your health score."},
		{"sleep", math.Min(2, in.SleepHours/sleepTarget*2), "A good night's rest is key to a better score."},
	}

	var total float64
	for _, s := range scores {
		total += s.value
	}

	feedback := "You're doing great! Keep up the balanced effort."
	if total < 8 {
		lowest := scores[0]
		for _, s := range scores[1:] {
			if s.value < lowest.value {
				lowest = s
			}
		}
		feedback = lowest.feedback
	}

	return HealthScore{
		Score:    round1(math.Min(10, total)),
		Feedback: feedback,
	}
}
