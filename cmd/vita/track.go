package vita

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/saidtaznakhte/Vitatrak/internal/service"
	"github.com/saidtaznakhte/Vitatrak/internal/tracker"
	"github.com/spf13/cobra"
)

var trackAddr string

// dbStepSink persists tracker totals into the daily wellness counters.
type dbStepSink struct {
	db *sql.DB
}

func (s *dbStepSink) Flush(totalSteps, activeCalories int) error {
	if err := service.SetStateInt(s.db, service.StateDailySteps, totalSteps); err != nil {
		return err
	}
	return service.SetStateInt(s.db, service.StateActiveCals, activeCalories)
}

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Track steps live from a GPS position feed",
	Long: `Track reads a stream of JSON position lines, filters out inaccurate
fixes and GPS jitter, and accumulates steps and active calories into
today's counters. By default it reads from stdin; with --addr it
connects to a TCP feed. Stop with Ctrl-C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			initial, err := service.GetStateInt(sqldb, service.StateDailySteps, 0)
			if err != nil {
				return err
			}

			var source tracker.PositionSource
			if trackAddr != "" {
				source = &tracker.TCPSource{Address: trackAddr}
			} else {
				source = &tracker.JSONSource{Reader: cmd.InOrStdin()}
			}

			tr := tracker.New(source, &dbStepSink{db: sqldb}, initial)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := tr.Start(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Tracking started with %d steps\n", initial)

			err = tr.Wait()
			tr.Stop()
			if err != nil {
				return fmt.Errorf("tracking aborted at %d steps: %w", tr.TotalSteps(), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Tracking stopped at %d steps\n", tr.TotalSteps())
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(trackCmd)
	trackCmd.Flags().StringVar(&trackAddr, "addr", "", "TCP address of a JSON position feed (default: read stdin)")
}
