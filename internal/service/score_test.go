package service_test

import (
	"testing"

	"github.com/saidtaznakhte/Vitatrak/internal/model"
	"github.com/saidtaznakhte/Vitatrak/internal/service"
)

func TestHealthScorePerfectDay(t *testing.T) {
	score := service.ComputeHealthScore(service.ScoreInputs{
		Goals:      model.MacroGoals{Calories: 2000, ProteinG: 150},
		Consumed:   service.ConsumedTotals{Calories: 2000, ProteinG: 150},
		Steps:      10000,
		WaterCups:  8,
		SleepHours: 8,
	})
	if score.Score != 10 {
		t.Fatalf("expected perfect 10, got %v", score.Score)
	}
	if score.Feedback != "You're doing great! Keep up the balanced effort." {
		t.Fatalf("unexpected feedback: %q", score.Feedback)
	}
}

func TestHealthScoreEmptyDay(t *testing.T) {
	score := service.ComputeHealthScore(service.ScoreInputs{
		Goals: model.MacroGoals{Calories: 2000, ProteinG: 150},
	})
	if score.Score != 0 {
		t.Fatalf("expected 0 for an empty day, got %v", score.Score)
	}
	if score.Feedback != "Focus on your calorie goal to improve your score." {
		t.Fatalf("expected calorie feedback as first lowest, got %q", score.Feedback)
	}
}

func TestHealthScoreOvershootGivesNoCalorieCredit(t *testing.T) {
	score := service.ComputeHealthScore(service.ScoreInputs{
		Goals:      model.MacroGoals{Calories: 2000, ProteinG: 150},
		Consumed:   service.ConsumedTotals{Calories: 4000, ProteinG: 300},
		Steps:      10000,
		WaterCups:  8,
		SleepHours: 8,
	})
	// Calories at double the goal score 0; protein is capped at 1.5.
	if score.Score != 7.5 {
		t.Fatalf("expected 7.5, got %v", score.Score)
	}
	if score.Feedback != "Focus on your calorie goal to improve your score." {
		t.Fatalf("unexpected feedback: %q", score.Feedback)
	}
}

func TestHealthScoreZeroCalorieGoal(t *testing.T) {
	score := service.ComputeHealthScore(service.ScoreInputs{
		Goals:      model.MacroGoals{Calories: 0, ProteinG: 150},
		Consumed:   service.ConsumedTotals{Calories: 1500, ProteinG: 150},
		Steps:      10000,
		WaterCups:  8,
		SleepHours: 8,
	})
	if score.Score != 7.5 {
		t.Fatalf("expected calorie component to contribute 0 with no goal, got %v", score.Score)
	}
}

func TestHealthScoreTieBreakPrefersEarlierComponent(t *testing.T) {
	score := service.ComputeHealthScore(service.ScoreInputs{
		Goals:      model.MacroGoals{Calories: 2000, ProteinG: 150},
		Consumed:   service.ConsumedTotals{Calories: 2000, ProteinG: 150},
		Steps:      2500,
		WaterCups:  2,
		SleepHours: 8,
	})
	// Steps and water both score 0.5; steps is declared first and wins.
	if score.Score != 7 {
		t.Fatalf("expected 7.0, got %v", score.Score)
	}
	if score.Feedback != "A short walk could make a big difference today!" {
		t.Fatalf("expected steps feedback on tie, got %q", score.Feedback)
	}
}

func TestHealthScoreRounding(t *testing.T) {
	score := service.ComputeHealthScore(service.ScoreInputs{
		Goals:      model.MacroGoals{Calories: 2000, ProteinG: 150},
		Consumed:   service.ConsumedTotals{Calories: 2000, ProteinG: 150},
		Steps:      3333,
		WaterCups:  8,
		SleepHours: 8,
	})
	// 2.5 + 1.5 + 0.6666 + 2 + 2 = 8.6666, rounded to one decimal.
	if score.Score != 8.7 {
		t.Fatalf("expected 8.7, got %v", score.Score)
	}
}
