package vita

import (
	"database/sql"
	"fmt"

	"github.com/saidtaznakhte/Vitatrak/internal/service"
	"github.com/spf13/cobra"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run data integrity checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.RunDoctor(sqldb, doctorFix)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Corrupt state values: %d\n", report.CorruptStateValues)
			fmt.Fprintf(cmd.OutOrStdout(), "Duplicate meal rows: %d\n", report.DuplicateMealRows)
			fmt.Fprintf(cmd.OutOrStdout(), "Expired cache rows: %d\n", report.ExpiredCacheRows)
			if doctorFix {
				fmt.Fprintf(cmd.OutOrStdout(), "Fixed state rows: %d\n", report.FixedStateRows)
				fmt.Fprintf(cmd.OutOrStdout(), "Purged cache rows: %d\n", report.PurgedCacheRows)
				// Re-check after fixes so exit status reflects final state.
				report, err = service.RunDoctor(sqldb, false)
				if err != nil {
					return err
				}
			}
			if report.CorruptStateValues > 0 || report.DuplicateMealRows > 0 {
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Attempt safe auto-fixes")
}
