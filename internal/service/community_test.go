package service_test

import (
	"testing"

	"github.com/saidtaznakhte/Vitatrak/internal/model"
	"github.com/saidtaznakhte/Vitatrak/internal/service"
)

func TestLeaderboardRanksCurrentUser(t *testing.T) {
	sqldb := newTestDB(t)
	defer sqldb.Close()

	if err := service.SetProfile(sqldb, model.Profile{Name: "Said", Age: 31}); err != nil {
		t.Fatalf("set profile: %v", err)
	}
	if err := service.SetSteps(sqldb, 10500); err != nil {
		t.Fatalf("set steps: %v", err)
	}

	entries, err := service.Leaderboard(sqldb)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(entries))
	}
	var current *service.LeaderboardEntry
	for i := range entries {
		if entries[i].Rank != i+1 {
			t.Fatalf("entry %d has rank %d", i, entries[i].Rank)
		}
		if i > 0 && entries[i].Steps > entries[i-1].Steps {
			t.Fatalf("leaderboard not sorted descending at %d", i)
		}
		if entries[i].IsCurrent {
			current = &entries[i]
		}
	}
	if current == nil {
		t.Fatalf("current user missing from leaderboard")
	}
	if current.Name != "Said" || current.Steps != 10500 || current.Rank != 2 {
		t.Fatalf("unexpected current user row: %+v", current)
	}
}

func TestLeaderboardZeroStepsLastPlace(t *testing.T) {
	sqldb := newTestDB(t)
	defer sqldb.Close()

	entries, err := service.Leaderboard(sqldb)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	last := entries[len(entries)-1]
	if !last.IsCurrent || last.Steps != 0 {
		t.Fatalf("expected user with no steps in last place, got %+v", last)
	}
}
