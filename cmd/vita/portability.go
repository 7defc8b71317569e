package vita

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/saidtaznakhte/Vitatrak/internal/service"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOut    string
	importFormat string
	importIn     string
	importMode   string
	importDryRun bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export local data (json or csv)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(exportOut) == "" {
			return fmt.Errorf("--out is required")
		}
		return withDB(func(sqldb *sql.DB) error {
			switch strings.ToLower(strings.TrimSpace(exportFormat)) {
			case "json":
				data, err := service.ExportDataSnapshot(sqldb)
				if err != nil {
					return err
				}
				b, err := json.MarshalIndent(data, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal export json: %w", err)
				}
				if err := os.WriteFile(exportOut, b, 0o644); err != nil {
					return fmt.Errorf("write export file: %w", err)
				}
			case "csv":
				data, err := service.ExportDataSnapshot(sqldb)
				if err != nil {
					return err
				}
				f, err := os.Create(exportOut)
				if err != nil {
					return fmt.Errorf("create export csv: %w", err)
				}
				defer f.Close()
				w := csv.NewWriter(f)
				defer w.Flush()
				if err := w.Write([]string{"name", "calories", "protein_g", "carbs_g", "fat_g", "meal_type", "eaten_on", "source_type"}); err != nil {
					return fmt.Errorf("write export csv header: %w", err)
				}
				for _, m := range data.Meals {
					record := []string{
						m.Name,
						strconv.Itoa(m.Calories),
						strconv.FormatFloat(m.ProteinG, 'f', -1, 64),
						strconv.FormatFloat(m.CarbsG, 'f', -1, 64),
						strconv.FormatFloat(m.FatG, 'f', -1, 64),
						m.MealType,
						m.EatenOn,
						m.SourceType,
					}
					if err := w.Write(record); err != nil {
						return fmt.Errorf("write export csv row: %w", err)
					}
				}
			default:
				return fmt.Errorf("unsupported --format %q (use json or csv)", exportFormat)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported data to %s\n", exportOut)
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import local data (json or csv)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(importIn) == "" {
			return fmt.Errorf("--in is required")
		}
		return withDB(func(sqldb *sql.DB) error {
			switch strings.ToLower(strings.TrimSpace(importFormat)) {
			case "json":
				raw, err := os.ReadFile(importIn)
				if err != nil {
					return fmt.Errorf("read import file: %w", err)
				}
				var payload service.ExportData
				if err := json.Unmarshal(raw, &payload); err != nil {
					return fmt.Errorf("parse import json: %w", err)
				}
				report, err := service.ImportDataSnapshotWithOptions(sqldb, &payload, service.ImportOptions{
					Mode:   service.ImportMode(strings.ToLower(strings.TrimSpace(importMode))),
					DryRun: importDryRun,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Import report: inserted=%d updated=%d skipped=%d conflicts=%d\n", report.Inserted, report.Updated, report.Skipped, report.Conflicts)
				for _, w := range report.Warnings {
					fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", w)
				}
			case "csv":
				f, err := os.Open(importIn)
				if err != nil {
					return fmt.Errorf("open import csv: %w", err)
				}
				defer f.Close()
				r := csv.NewReader(f)
				records, err := r.ReadAll()
				if err != nil {
					return fmt.Errorf("read import csv: %w", err)
				}
				if len(records) <= 1 {
					return fmt.Errorf("import csv contains no data rows")
				}
				for i := 1; i < len(records); i++ {
					row := records[i]
					if len(row) != 8 {
						return fmt.Errorf("csv row %d has %d columns, expected 8", i+1, len(row))
					}
					kcal, _ := strconv.Atoi(row[1])
					protein, _ := strconv.ParseFloat(row[2], 64)
					carbs, _ := strconv.ParseFloat(row[3], 64)
					fat, _ := strconv.ParseFloat(row[4], 64)
					if importDryRun {
						continue
					}
					if _, err := service.LogMeal(sqldb, service.LogMealInput{
						Name:       row[0],
						Calories:   kcal,
						ProteinG:   protein,
						CarbsG:     carbs,
						FatG:       fat,
						MealType:   row[5],
						Day:        row[6],
						SourceType: row[7],
					}); err != nil {
						return fmt.Errorf("import csv row %d: %w", i+1, err)
					}
				}
			default:
				return fmt.Errorf("unsupported --format %q (use json or csv)", importFormat)
			}
			if importDryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "Dry-run import validated %s\n", importIn)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported data from %s\n", importIn)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Export format: json or csv")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file path")
	importCmd.Flags().StringVar(&importFormat, "format", "json", "Import format: json or csv")
	importCmd.Flags().StringVar(&importIn, "in", "", "Input file path")
	importCmd.Flags().StringVar(&importMode, "mode", "merge", "Import mode for JSON: fail|skip|merge|replace")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Validate and report without writing data")
}
