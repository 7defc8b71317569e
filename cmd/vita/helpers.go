package vita

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/saidtaznakhte/Vitatrak/internal/app"
	"github.com/saidtaznakhte/Vitatrak/internal/db"
	"github.com/saidtaznakhte/Vitatrak/internal/model"
	"github.com/saidtaznakhte/Vitatrak/internal/provider/gemini"
	"github.com/saidtaznakhte/Vitatrak/internal/service"
)

// withDB opens the database, migrates it, and runs the daily rollover
// before handing control to the command. Every data command goes
// through here so day-scoped counters are always current.
func withDB(run func(*sql.DB) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	if _, err := service.RolloverIfNeeded(sqldb, time.Now()); err != nil {
		return err
	}
	return run(sqldb)
}

func parseInt64Arg(name, value string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be > 0", name)
	}
	return v, nil
}

func parseDateOrNow(date string) (time.Time, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Now(), nil
	}
	t, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", date)
	}
	return t, nil
}

// resolveUnits prefers an explicit --units flag over the profile's
// stored unit system.
func resolveUnits(sqldb *sql.DB, flag string) (model.UnitSystem, error) {
	switch strings.ToLower(strings.TrimSpace(flag)) {
	case "":
	case "metric":
		return model.UnitsMetric, nil
	case "imperial":
		return model.UnitsImperial, nil
	default:
		return "", fmt.Errorf("invalid --units %q (use metric or imperial)", flag)
	}
	profile, err := service.GetProfile(sqldb)
	if err != nil {
		return "", err
	}
	return profile.UnitSystem, nil
}

func geminiClient() (*gemini.Client, error) {
	key := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if key == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set (export it or add it to .env)")
	}
	return &gemini.Client{APIKey: key}, nil
}
