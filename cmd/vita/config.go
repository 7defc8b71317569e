package vita

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/saidtaznakhte/Vitatrak/internal/service"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage vita local configuration",
}

var (
	cfgTheme     string
	cfgLanguage  string
	cfgOnboarded bool
)

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set configuration values",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			updates := 0
			if cmd.Flags().Changed("theme") {
				if err := service.SetState(sqldb, service.StateTheme, cfgTheme); err != nil {
					return err
				}
				updates++
			}
			if cmd.Flags().Changed("language") {
				if err := service.SetState(sqldb, service.StateLanguage, cfgLanguage); err != nil {
					return err
				}
				updates++
			}
			if cmd.Flags().Changed("onboarded") {
				if err := service.SetState(sqldb, service.StateOnboarded, fmt.Sprintf("%t", cfgOnboarded)); err != nil {
					return err
				}
				updates++
			}
			if updates == 0 {
				return fmt.Errorf("set at least one flag")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d config value(s)\n", updates)
			return nil
		})
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show current configuration and state",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			state, err := service.ListState(sqldb)
			if err != nil {
				return err
			}
			keys := make([]string, 0, len(state))
			for k := range state {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintln(cmd.OutOrStdout(), "KEY\tVALUE")
			for _, k := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", k, state[k])
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd, configGetCmd)

	configSetCmd.Flags().StringVar(&cfgTheme, "theme", "", "UI theme: light or dark")
	configSetCmd.Flags().StringVar(&cfgLanguage, "language", "", "Display language code, e.g. en")
	configSetCmd.Flags().BoolVar(&cfgOnboarded, "onboarded", false, "Mark onboarding as completed")
}
