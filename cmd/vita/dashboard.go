package vita

import (
	"database/sql"
	"fmt"

	"github.com/saidtaznakhte/Vitatrak/internal/service"
	"github.com/spf13/cobra"
)

var dashboardDate string

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the daily summary with the health score",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateOrNow(dashboardDate)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			status, err := service.DashboardSummary(sqldb, date)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Date: %s\n", status.Date)
			fmt.Fprintf(out, "Calories: %d / %d kcal (%d remaining)\n",
				status.Consumed.Calories, status.Goals.Calories, status.Remaining.Calories)
			fmt.Fprintf(out, "Protein: %.1f / %.1f g\n", status.Consumed.ProteinG, status.Goals.ProteinG)
			fmt.Fprintf(out, "Carbs: %.1f / %.1f g\n", status.Consumed.CarbsG, status.Goals.CarbsG)
			fmt.Fprintf(out, "Fat: %.1f / %.1f g\n", status.Consumed.FatG, status.Goals.FatG)
			fmt.Fprintf(out, "Steps: %d (%d active kcal)\n", status.Steps, status.ActiveCalories)
			fmt.Fprintf(out, "Water: %d cups\n", status.WaterCups)
			fmt.Fprintf(out, "Sleep: %.1f hours\n", status.SleepHours)
			fmt.Fprintf(out, "Mood: %s\n", status.Mood)
			fmt.Fprintf(out, "Health score: %.1f/10\n", status.Health.Score)
			if status.Health.Feedback != "" {
				fmt.Fprintf(out, "Tip: %s\n", status.Health.Feedback)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
	dashboardCmd.Flags().StringVar(&dashboardDate, "date", "", "Date YYYY-MM-DD for meal totals (default today)")
}
