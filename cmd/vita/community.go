package vita

import (
	"database/sql"
	"fmt"

	"github.com/saidtaznakhte/Vitatrak/internal/service"
	"github.com/spf13/cobra"
)

var communityCmd = &cobra.Command{
	Use:   "community",
	Short: "Show the step leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			entries, err := service.Leaderboard(sqldb)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "RANK\tNAME\tSTEPS")
			for _, e := range entries {
				marker := ""
				if e.IsCurrent {
					marker = " (you)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s%s\t%d\n", e.Rank, e.Name, marker, e.Steps)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(communityCmd)
}
