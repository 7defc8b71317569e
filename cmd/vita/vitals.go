package vita

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/saidtaznakhte/Vitatrak/internal/model"
	"github.com/saidtaznakhte/Vitatrak/internal/service"
	"github.com/spf13/cobra"
)

var vitalsCmd = &cobra.Command{
	Use:   "vitals",
	Short: "Manage heart rate, SpO2, and blood pressure readings",
}

var (
	vitalsHeartRate int
	vitalsSpO2      int
	vitalsBP        string
)

var vitalsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Record vitals (only the flags you pass are updated)",
	RunE: func(cmd *cobra.Command, args []string) error {
		var update model.Vitals
		if cmd.Flags().Changed("heart-rate") {
			update.HeartRate = &vitalsHeartRate
		}
		if cmd.Flags().Changed("spo2") {
			update.SpO2 = &vitalsSpO2
		}
		if cmd.Flags().Changed("bp") {
			update.BloodPressure = &vitalsBP
		}
		if update.HeartRate == nil && update.SpO2 == nil && update.BloodPressure == nil {
			return fmt.Errorf("set at least one of --heart-rate, --spo2, --bp")
		}
		return withDB(func(sqldb *sql.DB) error {
			merged, err := service.SetVitals(sqldb, update)
			if err != nil {
				return err
			}
			printVitals(cmd, merged)
			return nil
		})
	},
}

var vitalsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the latest vitals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			v, err := service.GetVitals(sqldb)
			if err != nil {
				return err
			}
			printVitals(cmd, v)
			return nil
		})
	},
}

func printVitals(cmd *cobra.Command, v model.Vitals) {
	if v.HeartRate != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Heart rate: %d bpm\n", *v.HeartRate)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "Heart rate: not recorded")
	}
	if v.SpO2 != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "SpO2: %d%%\n", *v.SpO2)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "SpO2: not recorded")
	}
	if v.BloodPressure != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Blood pressure: %s\n", *v.BloodPressure)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "Blood pressure: not recorded")
	}
}

var (
	syncSteps int
	syncSleep float64
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Apply a device snapshot of steps and sleep in one write",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.SyncData(sqldb, syncSteps, syncSleep, time.Now()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Synced: %d steps, %.1f hours sleep\n", syncSteps, syncSleep)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(vitalsCmd, syncCmd)
	vitalsCmd.AddCommand(vitalsSetCmd, vitalsShowCmd)

	vitalsSetCmd.Flags().IntVar(&vitalsHeartRate, "heart-rate", 0, "Heart rate (bpm)")
	vitalsSetCmd.Flags().IntVar(&vitalsSpO2, "spo2", 0, "Blood oxygen saturation (%)")
	vitalsSetCmd.Flags().StringVar(&vitalsBP, "bp", "", "Blood pressure, e.g. 120/80")

	syncCmd.Flags().IntVar(&syncSteps, "steps", 0, "Step count from the device")
	syncCmd.Flags().Float64Var(&syncSleep, "sleep", 0, "Sleep hours from the device")
}
