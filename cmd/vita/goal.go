package vita

import (
	"database/sql"
	"fmt"

	"github.com/saidtaznakhte/Vitatrak/internal/model"
	"github.com/saidtaznakhte/Vitatrak/internal/service"
	"github.com/spf13/cobra"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage daily macro goals",
}

var (
	goalCalories int
	goalProtein  float64
	goalCarbs    float64
	goalFat      float64
)

var goalSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the daily macro goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			current, err := service.GetMacroGoals(sqldb)
			if err != nil {
				return err
			}
			next := current
			if cmd.Flags().Changed("calories") {
				next.Calories = goalCalories
			}
			if cmd.Flags().Changed("protein") {
				next.ProteinG = goalProtein
			}
			if cmd.Flags().Changed("carbs") {
				next.CarbsG = goalCarbs
			}
			if cmd.Flags().Changed("fat") {
				next.FatG = goalFat
			}
			if next == current {
				return fmt.Errorf("set at least one of --calories, --protein, --carbs, --fat")
			}
			if err := service.SetMacroGoals(sqldb, next); err != nil {
				return err
			}
			printGoals(cmd, next)
			return nil
		})
	},
}

var goalShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the daily macro goals and what remains today",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			goals, err := service.GetMacroGoals(sqldb)
			if err != nil {
				return err
			}
			consumed, err := service.DayTotals(sqldb, "")
			if err != nil {
				return err
			}
			remaining := service.Remaining(goals, consumed)
			printGoals(cmd, goals)
			fmt.Fprintf(cmd.OutOrStdout(), "Consumed: %d kcal | P %.1fg | C %.1fg | F %.1fg\n",
				consumed.Calories, consumed.ProteinG, consumed.CarbsG, consumed.FatG)
			fmt.Fprintf(cmd.OutOrStdout(), "Remaining: %d kcal | P %.1fg | C %.1fg | F %.1fg\n",
				remaining.Calories, remaining.ProteinG, remaining.CarbsG, remaining.FatG)
			return nil
		})
	},
}

func printGoals(cmd *cobra.Command, g model.MacroGoals) {
	fmt.Fprintf(cmd.OutOrStdout(), "Goals: %d kcal | P %.1fg | C %.1fg | F %.1fg\n",
		g.Calories, g.ProteinG, g.CarbsG, g.FatG)
}

func init() {
	rootCmd.AddCommand(goalCmd)
	goalCmd.AddCommand(goalSetCmd, goalShowCmd)

	goalSetCmd.Flags().IntVar(&goalCalories, "calories", 0, "Daily calorie goal (kcal)")
	goalSetCmd.Flags().Float64Var(&goalProtein, "protein", 0, "Daily protein goal (g)")
	goalSetCmd.Flags().Float64Var(&goalCarbs, "carbs", 0, "Daily carb goal (g)")
	goalSetCmd.Flags().Float64Var(&goalFat, "fat", 0, "Daily fat goal (g)")
}
