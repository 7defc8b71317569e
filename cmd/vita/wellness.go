package vita

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/saidtaznakhte/Vitatrak/internal/service"
	"github.com/spf13/cobra"
)

var stepsCmd = &cobra.Command{
	Use:   "steps <count>",
	Short: "Set today's step count",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid step count %q", args[0])
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.SetSteps(sqldb, count); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Steps: %d (%d active kcal)\n", count, service.ActiveCaloriesForSteps(count))
			return nil
		})
	},
}

var waterCmd = &cobra.Command{
	Use:   "water",
	Short: "Track water intake in cups",
}

var waterSetCmd = &cobra.Command{
	Use:   "set <cups>",
	Short: "Set today's water intake",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cups, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid cup count %q", args[0])
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.SetWater(sqldb, cups); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Water: %d cups\n", cups)
			return nil
		})
	},
}

var waterAddCmd = &cobra.Command{
	Use:   "add <cups>",
	Short: "Add (or with a negative value remove) cups of water",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cups, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid cup count %q", args[0])
		}
		return withDB(func(sqldb *sql.DB) error {
			total, err := service.AddWater(sqldb, cups)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Water: %d cups\n", total)
			return nil
		})
	},
}

var sleepCmd = &cobra.Command{
	Use:   "sleep <hours>",
	Short: "Set last night's sleep hours",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hours, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid sleep hours %q", args[0])
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.SetSleep(sqldb, hours); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sleep: %.1f hours\n", hours)
			return nil
		})
	},
}

var moodCmd = &cobra.Command{
	Use:   "mood <Happy|Neutral|Sad>",
	Short: "Set today's mood",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.SetMood(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Mood: %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(stepsCmd, waterCmd, sleepCmd, moodCmd)
	waterCmd.AddCommand(waterSetCmd, waterAddCmd)
}
