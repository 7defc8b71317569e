package vita

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "vita",
	Short: "vita tracks meals, weight, and daily wellness from your terminal",
	Long:  "vita is a local-first health tracking CLI with meal logging, weight trends, wellness counters, live step tracking, and AI-assisted nutrition lookup.",
}

func Execute() {
	// .env is optional; it carries GEMINI_API_KEY for lookup commands.
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var version = "dev"

func printVersion(cmd *cobra.Command) {
	v := version
	if info, ok := debug.ReadBuildInfo(); ok && v == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		v = info.Main.Version
	}
	fmt.Fprintf(cmd.OutOrStdout(), "vita %s\n", v)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
}
