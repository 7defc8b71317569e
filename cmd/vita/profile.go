package vita

import (
	"database/sql"
	"fmt"

	"github.com/saidtaznakhte/Vitatrak/internal/model"
	"github.com/saidtaznakhte/Vitatrak/internal/service"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the user profile",
}

var (
	profileName   string
	profileAge    int
	profileAvatar string
	profileHeight float64
	profileFeet   int
	profileInches int
	profileUnits  string
)

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			current, err := service.GetProfile(sqldb)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("name") {
				current.Name = profileName
			}
			if cmd.Flags().Changed("age") {
				current.Age = profileAge
			}
			if cmd.Flags().Changed("avatar") {
				current.AvatarURL = profileAvatar
			}
			if cmd.Flags().Changed("units") {
				current.UnitSystem = model.UnitSystem(profileUnits)
			}
			switch {
			case cmd.Flags().Changed("height"):
				current.HeightCm = service.HeightToCm(service.HeightParts{Meters: profileHeight}, model.UnitsMetric)
			case cmd.Flags().Changed("feet") || cmd.Flags().Changed("inches"):
				current.HeightCm = service.HeightToCm(service.HeightParts{Feet: profileFeet, Inches: profileInches}, model.UnitsImperial)
			}
			if err := service.SetProfile(sqldb, current); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Profile updated")
			return nil
		})
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the user profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			p, err := service.GetProfile(sqldb)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Name: %s\n", p.Name)
			fmt.Fprintf(cmd.OutOrStdout(), "Age: %d\n", p.Age)
			if p.AvatarURL != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Avatar: %s\n", p.AvatarURL)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Units: %s\n", p.UnitSystem)
			if p.HeightCm > 0 {
				parts := service.HeightForDisplay(p.HeightCm, p.UnitSystem)
				if p.UnitSystem == model.UnitsImperial {
					fmt.Fprintf(cmd.OutOrStdout(), "Height: %d ft %d in\n", parts.Feet, parts.Inches)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Height: %.2f m\n", parts.Meters)
				}
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileSetCmd, profileShowCmd)

	profileSetCmd.Flags().StringVar(&profileName, "name", "", "Display name")
	profileSetCmd.Flags().IntVar(&profileAge, "age", 0, "Age in years")
	profileSetCmd.Flags().StringVar(&profileAvatar, "avatar", "", "Avatar image URL")
	profileSetCmd.Flags().Float64Var(&profileHeight, "height", 0, "Height in meters (metric)")
	profileSetCmd.Flags().IntVar(&profileFeet, "feet", 0, "Height feet part (imperial)")
	profileSetCmd.Flags().IntVar(&profileInches, "inches", 0, "Height inches part (imperial)")
	profileSetCmd.Flags().StringVar(&profileUnits, "units", "", "Unit system: metric or imperial")
}
