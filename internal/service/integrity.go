package service

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

type BackupInfo struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	CreatedAt time.Time `json:"created_at"`
	SizeBytes int64     `json:"size_bytes"`
}

type DoctorReport struct {
	CorruptStateValues int `json:"corrupt_state_values"`
	DuplicateMealRows  int `json:"duplicate_meal_rows"`
	ExpiredCacheRows   int `json:"expired_cache_rows"`
	FixedStateRows     int `json:"fixed_state_rows,omitempty"`
	PurgedCacheRows    int `json:"purged_cache_rows,omitempty"`
}

// CreateBackup copies the db file and writes a manifest next to it with
// the checksum, so restore can verify the copy was not truncated.
func CreateBackup(dbPath, outPath string) (BackupInfo, error) {
	if strings.TrimSpace(dbPath) == "" {
		return BackupInfo{}, fmt.Errorf("db path is required")
	}
	if strings.TrimSpace(outPath) == "" {
		return BackupInfo{}, fmt.Errorf("backup output path is required")
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return BackupInfo{}, fmt.Errorf("create backup directory: %w", err)
	}
	if err := copyFile(dbPath, outPath); err != nil {
		return BackupInfo{}, err
	}
	checksum, err := fileSHA256(outPath)
	if err != nil {
		return BackupInfo{}, err
	}
	st, err := os.Stat(outPath)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("stat backup: %w", err)
	}
	info := BackupInfo{
		ID:        uuid.New().String(),
		Path:      outPath,
		Checksum:  checksum,
		CreatedAt: st.ModTime(),
		SizeBytes: st.Size(),
	}
	manifest, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return BackupInfo{}, fmt.Errorf("marshal backup manifest: %w", err)
	}
	if err := os.WriteFile(outPath+".manifest.json", append(manifest, '\n'), 0o644); err != nil {
		return BackupInfo{}, fmt.Errorf("write backup manifest: %w", err)
	}
	return info, nil
}

func RestoreBackup(backupPath, dbPath string, force bool) error {
	if strings.TrimSpace(backupPath) == "" || strings.TrimSpace(dbPath) == "" {
		return fmt.Errorf("backup path and db path are required")
	}
	if !force {
		if _, err := os.Stat(dbPath); err == nil {
			return fmt.Errorf("target db already exists; use --force to overwrite")
		}
	}
	if raw, err := os.ReadFile(backupPath + ".manifest.json"); err == nil {
		var manifest BackupInfo
		if err := json.Unmarshal(raw, &manifest); err != nil {
			return fmt.Errorf("parse backup manifest: %w", err)
		}
		actual, err := fileSHA256(backupPath)
		if err != nil {
			return err
		}
		if manifest.Checksum != "" && manifest.Checksum != actual {
			return fmt.Errorf("backup checksum mismatch")
		}
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	return copyFile(backupPath, dbPath)
}

func ListBackups(dir string) ([]BackupInfo, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read backup dir: %w", err)
	}
	out := make([]BackupInfo, 0)
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".db") {
			continue
		}
		full := filepath.Join(dir, f.Name())
		st, err := os.Stat(full)
		if err != nil {
			continue
		}
		info := BackupInfo{Path: full, CreatedAt: st.ModTime(), SizeBytes: st.Size()}
		if raw, err := os.ReadFile(full + ".manifest.json"); err == nil {
			var manifest BackupInfo
			if json.Unmarshal(raw, &manifest) == nil {
				info.ID = manifest.ID
				info.Checksum = manifest.Checksum
			}
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// jsonStateKeys are the app_state keys whose values must parse as JSON.
// Plain-string keys (mood, theme, language, dates) are exempt.
var jsonStateKeys = map[string]bool{
	StateDailySteps:   true,
	StateWaterIntake:  true,
	StateSleepHours:   true,
	StateActiveCals:   true,
	StateGoalWeightKg: true,
	StateProfile:      true,
	StateVitals:       true,
}

func RunDoctor(db *sql.DB, fix bool) (DoctorReport, error) {
	report := DoctorReport{}

	rows, err := db.Query(`SELECT key, value FROM app_state`)
	if err != nil {
		return report, fmt.Errorf("doctor state query: %w", err)
	}
	corruptKeys := make([]string, 0)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			_ = rows.Close()
			return report, fmt.Errorf("doctor state scan: %w", err)
		}
		if !jsonStateKeys[key] {
			continue
		}
		if !json.Valid([]byte(value)) {
			report.CorruptStateValues++
			corruptKeys = append(corruptKeys, key)
		}
	}
	_ = rows.Close()

	if err := db.QueryRow(`
SELECT COALESCE(SUM(cnt-1),0) FROM (
  SELECT COUNT(*) AS cnt
  FROM meals
  GROUP BY name, meal_type, eaten_on, source_type
  HAVING cnt > 1
)
`).Scan(&report.DuplicateMealRows); err != nil {
		return report, fmt.Errorf("doctor duplicate query: %w", err)
	}

	if err := db.QueryRow(`SELECT COUNT(1) FROM lookup_cache WHERE expires_at < ?`, time.Now().UTC().Format(time.RFC3339)).
		Scan(&report.ExpiredCacheRows); err != nil {
		return report, fmt.Errorf("doctor cache query: %w", err)
	}

	if fix {
		tx, err := db.Begin()
		if err != nil {
			return report, fmt.Errorf("doctor fix begin tx: %w", err)
		}
		for _, key := range corruptKeys {
			// Corrupt values are dropped, not repaired; readers fall
			// back to defaults and the next write restores the key.
			if _, err := tx.Exec(`DELETE FROM app_state WHERE key = ?`, key); err != nil {
				_ = tx.Rollback()
				return report, fmt.Errorf("doctor fix state key %q: %w", key, err)
			}
			report.FixedStateRows++
		}
		res, err := tx.Exec(`DELETE FROM lookup_cache WHERE expires_at < ?`, time.Now().UTC().Format(time.RFC3339))
		if err != nil {
			_ = tx.Rollback()
			return report, fmt.Errorf("doctor fix cache purge: %w", err)
		}
		if purged, err := res.RowsAffected(); err == nil {
			report.PurgedCacheRows = int(purged)
		}
		if err := tx.Commit(); err != nil {
			return report, fmt.Errorf("doctor fix commit: %w", err)
		}
	}

	return report, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source file: %w", err)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination file: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy file: %w", err)
	}
	if err := out.Sync(); err != nil {
		return fmt.Errorf("sync destination file: %w", err)
	}
	return nil
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for checksum: %w", err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
