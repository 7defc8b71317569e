package vita

import (
	"database/sql"
	"fmt"

	"github.com/saidtaznakhte/Vitatrak/internal/service"
	"github.com/spf13/cobra"
)

var mealCmd = &cobra.Command{
	Use:   "meal",
	Short: "Manage logged meals",
}

var (
	mealName     string
	mealCalories int
	mealProtein  float64
	mealCarbs    float64
	mealFat      float64
	mealType     string
	mealDate     string
)

var mealAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a meal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.LogMeal(sqldb, service.LogMealInput{
				Name:     mealName,
				Calories: mealCalories,
				ProteinG: mealProtein,
				CarbsG:   mealCarbs,
				FatG:     mealFat,
				MealType: mealType,
				Day:      mealDate,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged meal %d\n", id)
			return nil
		})
	},
}

var (
	mealListDate string
	mealListFrom string
	mealListTo   string
	mealListType string
	mealListMax  int
)

var mealListCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged meals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			meals, err := service.ListMeals(sqldb, service.ListMealsFilter{
				Day:      mealListDate,
				FromDay:  mealListFrom,
				ToDay:    mealListTo,
				MealType: mealListType,
				Limit:    mealListMax,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tDATE\tTYPE\tNAME\tKCAL\tP\tC\tF\tSOURCE")
			for _, m := range meals {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\t%d\t%.1f\t%.1f\t%.1f\t%s\n",
					m.ID, m.EatenOn, m.MealType, m.Name, m.Calories, m.ProteinG, m.CarbsG, m.FatG, m.SourceType)
			}
			return nil
		})
	},
}

var mealSetTypeCmd = &cobra.Command{
	Use:   "set-type <id> <type>",
	Short: "Reassign a meal to a different meal type",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("meal id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.SetMealType(sqldb, id, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Meal %d is now %s\n", id, args[1])
			return nil
		})
	},
}

var mealDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("meal id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteMeal(sqldb, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted meal %d\n", id)
			return nil
		})
	},
}

var mealTotalsDate string

var mealTotalsCmd = &cobra.Command{
	Use:   "totals",
	Short: "Show consumed totals for a day",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			totals, err := service.DayTotals(sqldb, mealTotalsDate)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Date: %s\n", totals.Day)
			fmt.Fprintf(cmd.OutOrStdout(), "Calories: %d\n", totals.Calories)
			fmt.Fprintf(cmd.OutOrStdout(), "Macros: P %.1fg | C %.1fg | F %.1fg\n", totals.ProteinG, totals.CarbsG, totals.FatG)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(mealCmd)
	mealCmd.AddCommand(mealAddCmd, mealListCmd, mealSetTypeCmd, mealDeleteCmd, mealTotalsCmd)

	mealAddCmd.Flags().StringVar(&mealName, "name", "", "Meal name")
	mealAddCmd.Flags().IntVar(&mealCalories, "calories", 0, "Calories (kcal)")
	mealAddCmd.Flags().Float64Var(&mealProtein, "protein", 0, "Protein (g)")
	mealAddCmd.Flags().Float64Var(&mealCarbs, "carbs", 0, "Carbs (g)")
	mealAddCmd.Flags().Float64Var(&mealFat, "fat", 0, "Fat (g)")
	mealAddCmd.Flags().StringVar(&mealType, "type", "Snack", "Meal type: Breakfast, Lunch, Dinner, or Snack")
	mealAddCmd.Flags().StringVar(&mealDate, "date", "", "Date YYYY-MM-DD (default today)")

	mealListCmd.Flags().StringVar(&mealListDate, "date", "", "Filter by date YYYY-MM-DD")
	mealListCmd.Flags().StringVar(&mealListFrom, "from", "", "Filter from date YYYY-MM-DD")
	mealListCmd.Flags().StringVar(&mealListTo, "to", "", "Filter to date YYYY-MM-DD")
	mealListCmd.Flags().StringVar(&mealListType, "type", "", "Filter by meal type")
	mealListCmd.Flags().IntVar(&mealListMax, "limit", 0, "Max rows (0 = all)")

	mealTotalsCmd.Flags().StringVar(&mealTotalsDate, "date", "", "Date YYYY-MM-DD (default today)")
}
