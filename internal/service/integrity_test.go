package service_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/saidtaznakhte/Vitatrak/internal/db"
	"github.com/saidtaznakhte/Vitatrak/internal/service"
)

func TestBackupAndRestore(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "vita.db")

	sqldb, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if _, err := service.LogMeal(sqldb, service.LogMealInput{Name: "Soup", Calories: 250, MealType: "Dinner", Day: "2026-08-29"}); err != nil {
		t.Fatalf("log meal: %v", err)
	}
	sqldb.Close()

	backupPath := filepath.Join(dir, "backups", "vita-2026-08-29.db")
	info, err := service.CreateBackup(dbPath, backupPath)
	if err != nil {
		t.Fatalf("create backup: %v", err)
	}
	if info.Checksum == "" || info.SizeBytes == 0 || info.ID == "" {
		t.Fatalf("incomplete backup info: %+v", info)
	}
	if _, err := os.Stat(backupPath + ".manifest.json"); err != nil {
		t.Fatalf("manifest missing: %v", err)
	}

	restorePath := filepath.Join(dir, "restored.db")
	if err := service.RestoreBackup(backupPath, restorePath, false); err != nil {
		t.Fatalf("restore: %v", err)
	}

	restored, err := db.Open(restorePath)
	if err != nil {
		t.Fatalf("open restored db: %v", err)
	}
	defer restored.Close()
	meals, err := service.ListMeals(restored, service.ListMealsFilter{Day: "2026-08-29"})
	if err != nil {
		t.Fatalf("list restored meals: %v", err)
	}
	if len(meals) != 1 || meals[0].Name != "Soup" {
		t.Fatalf("restored data mismatch: %+v", meals)
	}

	if err := service.RestoreBackup(backupPath, restorePath, false); err == nil {
		t.Fatalf("expected refusal to overwrite without force")
	}
	if err := service.RestoreBackup(backupPath, restorePath, true); err != nil {
		t.Fatalf("forced restore: %v", err)
	}
}

func TestRestoreDetectsTamperedBackup(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "vita.db")

	sqldb, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	sqldb.Close()

	backupPath := filepath.Join(dir, "backup.db")
	if _, err := service.CreateBackup(dbPath, backupPath); err != nil {
		t.Fatalf("create backup: %v", err)
	}
	f, err := os.OpenFile(backupPath, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open backup for tamper: %v", err)
	}
	if _, err := f.WriteString("garbage"); err != nil {
		t.Fatalf("tamper: %v", err)
	}
	f.Close()

	if err := service.RestoreBackup(backupPath, filepath.Join(dir, "out.db"), false); err == nil {
		t.Fatalf("expected checksum mismatch error")
	}
}

func TestListBackups(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "vita.db")

	sqldb, err := db.Open(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	sqldb.Close()

	backupDir := filepath.Join(dir, "backups")
	if _, err := service.CreateBackup(dbPath, filepath.Join(backupDir, "a.db")); err != nil {
		t.Fatalf("backup a: %v", err)
	}
	if _, err := service.CreateBackup(dbPath, filepath.Join(backupDir, "b.db")); err != nil {
		t.Fatalf("backup b: %v", err)
	}

	items, err := service.ListBackups(backupDir)
	if err != nil {
		t.Fatalf("list backups: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 backups, got %d", len(items))
	}
	for _, it := range items {
		if it.Checksum == "" || it.ID == "" {
			t.Fatalf("expected manifest fields populated: %+v", it)
		}
	}
}

func TestDoctorFindsAndFixesCorruptState(t *testing.T) {
	sqldb := newTestDB(t)
	defer sqldb.Close()

	if err := service.SetState(sqldb, service.StateProfile, "{broken"); err != nil {
		t.Fatalf("seed corrupt profile: %v", err)
	}
	if err := service.SetState(sqldb, service.StateDailySteps, "many"); err != nil {
		t.Fatalf("seed corrupt steps: %v", err)
	}
	// Plain-string keys are exempt from the JSON check.
	if err := service.SetState(sqldb, service.StateMood, "Happy"); err != nil {
		t.Fatalf("seed mood: %v", err)
	}

	report, err := service.RunDoctor(sqldb, false)
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if report.CorruptStateValues != 2 {
		t.Fatalf("expected 2 corrupt values, got %+v", report)
	}
	if report.FixedStateRows != 0 {
		t.Fatalf("dry doctor must not fix rows: %+v", report)
	}

	report, err = service.RunDoctor(sqldb, true)
	if err != nil {
		t.Fatalf("doctor --fix: %v", err)
	}
	if report.FixedStateRows != 2 {
		t.Fatalf("expected 2 fixed rows, got %+v", report)
	}

	report, err = service.RunDoctor(sqldb, false)
	if err != nil {
		t.Fatalf("doctor after fix: %v", err)
	}
	if report.CorruptStateValues != 0 {
		t.Fatalf("expected clean state after fix, got %+v", report)
	}
}

func TestDoctorCountsDuplicateMeals(t *testing.T) {
	sqldb := newTestDB(t)
	defer sqldb.Close()

	for i := 0; i < 3; i++ {
		if _, err := service.LogMeal(sqldb, service.LogMealInput{Name: "Coffee", Calories: 5, MealType: "Snack", Day: "2026-08-29"}); err != nil {
			t.Fatalf("log meal: %v", err)
		}
	}
	report, err := service.RunDoctor(sqldb, false)
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if report.DuplicateMealRows != 2 {
		t.Fatalf("expected 2 duplicate rows beyond the first, got %+v", report)
	}
}
