package service_test

import (
	"testing"

	"github.com/saidtaznakhte/Vitatrak/internal/model"
	"github.com/saidtaznakhte/Vitatrak/internal/service"
)

func TestStateIntFallbacks(t *testing.T) {
	sqldb := newTestDB(t)
	defer sqldb.Close()

	got, err := service.GetStateInt(sqldb, service.StateDailySteps, 0)
	if err != nil {
		t.Fatalf("get missing key: %v", err)
	}
	if got != 0 {
		t.Fatalf("expected fallback 0 for missing key, got %d", got)
	}

	if err := service.SetStateInt(sqldb, service.StateDailySteps, 4200); err != nil {
		t.Fatalf("set state: %v", err)
	}
	got, err = service.GetStateInt(sqldb, service.StateDailySteps, 0)
	if err != nil {
		t.Fatalf("get state: %v", err)
	}
	if got != 4200 {
		t.Fatalf("expected 4200, got %d", got)
	}

	// A corrupt value reads as the fallback instead of failing.
	if err := service.SetState(sqldb, service.StateDailySteps, "not-a-number"); err != nil {
		t.Fatalf("set corrupt state: %v", err)
	}
	got, err = service.GetStateInt(sqldb, service.StateDailySteps, 7)
	if err != nil {
		t.Fatalf("get corrupt state: %v", err)
	}
	if got != 7 {
		t.Fatalf("expected fallback 7 for corrupt value, got %d", got)
	}
}

func TestProfileDefaultsAndRoundTrip(t *testing.T) {
	sqldb := newTestDB(t)
	defer sqldb.Close()

	profile, err := service.GetProfile(sqldb)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile.Name != "New User" || profile.Age != 25 || profile.UnitSystem != model.UnitsMetric {
		t.Fatalf("unexpected defaults: %+v", profile)
	}

	if err := service.SetProfile(sqldb, model.Profile{Name: "Said", Age: 31, HeightCm: 178, UnitSystem: model.UnitsImperial}); err != nil {
		t.Fatalf("set profile: %v", err)
	}
	profile, err = service.GetProfile(sqldb)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile.Name != "Said" || profile.Age != 31 || profile.HeightCm != 178 || profile.UnitSystem != model.UnitsImperial {
		t.Fatalf("unexpected profile after write: %+v", profile)
	}

	if err := service.SetProfile(sqldb, model.Profile{Name: "", Age: 30}); err == nil {
		t.Fatalf("expected error for empty name")
	}
	if err := service.SetProfile(sqldb, model.Profile{Name: "X", Age: 30, UnitSystem: "stone"}); err == nil {
		t.Fatalf("expected error for unknown unit system")
	}
}

func TestProfileCorruptValueFallsBack(t *testing.T) {
	sqldb := newTestDB(t)
	defer sqldb.Close()

	if err := service.SetState(sqldb, service.StateProfile, "{truncated"); err != nil {
		t.Fatalf("set corrupt profile: %v", err)
	}
	profile, err := service.GetProfile(sqldb)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile.Name != "New User" || profile.Age != 25 {
		t.Fatalf("expected defaults for corrupt profile, got %+v", profile)
	}
}

func TestVitalsMerge(t *testing.T) {
	sqldb := newTestDB(t)
	defer sqldb.Close()

	hr := 72
	if _, err := service.SetVitals(sqldb, model.Vitals{HeartRate: &hr}); err != nil {
		t.Fatalf("set heart rate: %v", err)
	}
	spo2 := 98
	merged, err := service.SetVitals(sqldb, model.Vitals{SpO2: &spo2})
	if err != nil {
		t.Fatalf("set spo2: %v", err)
	}
	if merged.HeartRate == nil || *merged.HeartRate != 72 {
		t.Fatalf("expected heart rate preserved through merge, got %+v", merged)
	}
	if merged.SpO2 == nil || *merged.SpO2 != 98 {
		t.Fatalf("expected spo2 98, got %+v", merged)
	}

	bad := 0
	if _, err := service.SetVitals(sqldb, model.Vitals{HeartRate: &bad}); err == nil {
		t.Fatalf("expected error for non-positive heart rate")
	}
	over := 120
	if _, err := service.SetVitals(sqldb, model.Vitals{SpO2: &over}); err == nil {
		t.Fatalf("expected error for spo2 above 100")
	}
}

func TestMoodValidation(t *testing.T) {
	sqldb := newTestDB(t)
	defer sqldb.Close()

	mood, err := service.GetMood(sqldb)
	if err != nil {
		t.Fatalf("get mood: %v", err)
	}
	if mood != model.MoodHappy {
		t.Fatalf("expected default mood Happy, got %q", mood)
	}

	if err := service.SetMood(sqldb, "Sad"); err != nil {
		t.Fatalf("set mood: %v", err)
	}
	mood, err = service.GetMood(sqldb)
	if err != nil {
		t.Fatalf("get mood: %v", err)
	}
	if mood != model.MoodSad {
		t.Fatalf("expected Sad, got %q", mood)
	}

	if err := service.SetMood(sqldb, "Ecstatic"); err == nil {
		t.Fatalf("expected error for unknown mood")
	}
}
