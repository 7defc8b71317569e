package service

import (
	"database/sql"
	"sort"
)

type LeaderboardEntry struct {
	Rank      int    `json:"rank"`
	Name      string `json:"name"`
	Steps     int    `json:"steps"`
	IsCurrent bool   `json:"is_current_user"`
}

// Seed roster shown until real friend sync exists. Only the current
// user's row is live data.
var communityRoster = []LeaderboardEntry{
	{Name: "Jessica", Steps: 12500},
	{Name: "Mike", Steps: 9800},
	{Name: "Sarah", Steps: 7200},
	{Name: "David", Steps: 5400},
}

// Leaderboard ranks the seed roster together with the user's own step
// count for today. Ties keep the user below the friend with the same
// count.
func Leaderboard(db *sql.DB) ([]LeaderboardEntry, error) {
	profile, err := GetProfile(db)
	if err != nil {
		return nil, err
	}
	steps, err := GetStateInt(db, StateDailySteps, 0)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(communityRoster)+1)
	entries = append(entries, communityRoster...)
	entries = append(entries, LeaderboardEntry{Name: profile.Name, Steps: steps, IsCurrent: true})

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Steps > entries[j].Steps })
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}
