package vita

import (
	"database/sql"
	"fmt"

	"github.com/saidtaznakhte/Vitatrak/internal/service"
	"github.com/spf13/cobra"
)

var weightCmd = &cobra.Command{
	Use:   "weight",
	Short: "Manage weight history and the goal weight",
}

var (
	weightValue float64
	weightGoal  float64
	weightUnits string
	weightDate  string
)

var weightLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Log today's weight (replaces an earlier entry for the same day)",
	RunE: func(cmd *cobra.Command, args []string) error {
		recordedAt, err := parseDateOrNow(weightDate)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			units, err := resolveUnits(sqldb, weightUnits)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("goal") {
				if err := service.SetWeightAndGoal(sqldb, weightValue, weightGoal, units); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Logged weight %.1f %s with goal %.1f %s\n",
					weightValue, service.WeightUnit(units), weightGoal, service.WeightUnit(units))
				return nil
			}
			if _, err := service.LogWeight(sqldb, service.LogWeightInput{
				Weight:     weightValue,
				UnitSystem: units,
				RecordedAt: recordedAt,
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged weight %.1f %s\n", weightValue, service.WeightUnit(units))
			return nil
		})
	},
}

var weightListCmd = &cobra.Command{
	Use:   "list",
	Short: "List weight history",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			units, err := resolveUnits(sqldb, weightUnits)
			if err != nil {
				return err
			}
			entries, err := service.ListWeights(sqldb)
			if err != nil {
				return err
			}
			unit := service.WeightUnit(units)
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tDATE\tWEIGHT")
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%.1f %s\n", e.ID, e.Day, service.WeightForDisplay(e.WeightKg, units), unit)
			}
			return nil
		})
	},
}

var weightDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a weight entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("weight entry id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteWeight(sqldb, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted weight entry %d\n", id)
			return nil
		})
	},
}

var weightGoalCmd = &cobra.Command{
	Use:   "goal <value>",
	Short: "Set the goal weight",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var value float64
		if _, err := fmt.Sscanf(args[0], "%g", &value); err != nil {
			return fmt.Errorf("invalid goal weight %q", args[0])
		}
		return withDB(func(sqldb *sql.DB) error {
			units, err := resolveUnits(sqldb, weightUnits)
			if err != nil {
				return err
			}
			if err := service.SetGoalWeight(sqldb, value, units); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Goal weight set to %.1f %s\n", value, service.WeightUnit(units))
			return nil
		})
	},
}

var weightStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current weight against the goal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			units, err := resolveUnits(sqldb, weightUnits)
			if err != nil {
				return err
			}
			currentKg, err := service.CurrentWeightKg(sqldb)
			if err != nil {
				return err
			}
			goalKg, err := service.GoalWeightKg(sqldb)
			if err != nil {
				return err
			}
			unit := service.WeightUnit(units)
			if currentKg > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Current: %.1f %s\n", service.WeightForDisplay(currentKg, units), unit)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Current: not logged")
			}
			if goalKg > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Goal: %.1f %s\n", service.WeightForDisplay(goalKg, units), unit)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Goal: not set")
			}
			if service.GoalReached(currentKg, goalKg) {
				fmt.Fprintln(cmd.OutOrStdout(), "Goal reached!")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(weightCmd)
	weightCmd.AddCommand(weightLogCmd, weightListCmd, weightDeleteCmd, weightGoalCmd, weightStatusCmd)

	weightCmd.PersistentFlags().StringVar(&weightUnits, "units", "", "Unit system: metric or imperial (default from profile)")
	weightLogCmd.Flags().Float64Var(&weightValue, "value", 0, "Weight in the active unit")
	weightLogCmd.Flags().Float64Var(&weightGoal, "goal", 0, "Also set the goal weight in the same write")
	weightLogCmd.Flags().StringVar(&weightDate, "date", "", "Date YYYY-MM-DD (default today)")
}
