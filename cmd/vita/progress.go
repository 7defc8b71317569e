package vita

import (
	"database/sql"
	"fmt"

	"github.com/saidtaznakhte/Vitatrak/internal/service"
	"github.com/spf13/cobra"
)

var (
	progressUnits string
	progressChart string
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show the monthly weight series with a trend line",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			units, err := resolveUnits(sqldb, progressUnits)
			if err != nil {
				return err
			}
			entries, err := service.ListWeights(sqldb)
			if err != nil {
				return err
			}
			points := service.WithTrendLine(service.MonthlySeries(entries, units))
			if len(points) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No weight entries yet")
				return nil
			}
			unit := service.WeightUnit(units)
			fmt.Fprintln(cmd.OutOrStdout(), "MONTH\tWEIGHT\tTREND")
			for _, p := range points {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.1f %s\t%.1f %s\n", p.Label, p.Weight, unit, p.Trend, unit)
			}

			currentKg, err := service.CurrentWeightKg(sqldb)
			if err != nil {
				return err
			}
			goalKg, err := service.GoalWeightKg(sqldb)
			if err != nil {
				return err
			}
			if service.GoalReached(currentKg, goalKg) {
				fmt.Fprintln(cmd.OutOrStdout(), "Goal reached!")
			}

			if progressChart != "" {
				if err := service.RenderWeightChart(points, progressChart); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Chart written to %s\n", progressChart)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(progressCmd)
	progressCmd.Flags().StringVar(&progressUnits, "units", "", "Unit system: metric or imperial (default from profile)")
	progressCmd.Flags().StringVar(&progressChart, "chart", "", "Write a PNG chart to this path")
}
