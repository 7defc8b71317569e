package vita

import (
	"context"
	"database/sql"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/saidtaznakhte/Vitatrak/internal/model"
	"github.com/saidtaznakhte/Vitatrak/internal/provider/openfoodfacts"
	"github.com/saidtaznakhte/Vitatrak/internal/service"
	"github.com/spf13/cobra"
)

var (
	lookupProvider string
	lookupRefresh  bool
	lookupLog      bool
	lookupLogType  string
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <query>",
	Short: "Look up nutrition for a food by name or barcode",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		return withDB(func(sqldb *sql.DB) error {
			client, err := lookupClient(lookupProvider)
			if err != nil {
				return err
			}
			do := service.LookupFood
			if lookupRefresh {
				do = service.RefreshLookup
			}
			result, err := do(sqldb, lookupProvider, client, query)
			if err != nil {
				return err
			}
			printLookupResult(cmd, result)
			if lookupLog && len(result.Results) > 0 {
				return logLookupResult(cmd, sqldb, result.Results[0])
			}
			return nil
		})
	},
}

var lookupPhotoCmd = &cobra.Command{
	Use:   "photo <file>",
	Short: "Analyze a meal photo and estimate its nutrition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		imageData, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read photo: %w", err)
		}
		mimeType := mime.TypeByExtension(filepath.Ext(args[0]))
		if !strings.HasPrefix(mimeType, "image/") {
			return fmt.Errorf("unsupported photo type %q (use jpeg or png)", filepath.Ext(args[0]))
		}
		client, err := geminiClient()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
		defer cancel()
		results, _, err := client.AnalyzePhoto(ctx, imageData, mimeType)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			fmt.Fprintln(cmd.OutOrStdout(), "NAME\tKCAL\tP\tC\tF")
			for _, r := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%.1f\t%.1f\t%.1f\n",
					r.Name, r.Calories, r.ProteinG, r.CarbsG, r.FatG)
			}
			if lookupLog && len(results) > 0 {
				first := results[0]
				return logLookupResult(cmd, sqldb, model.MealNutrition{
					Name:     first.Name,
					Calories: first.Calories,
					ProteinG: first.ProteinG,
					CarbsG:   first.CarbsG,
					FatG:     first.FatG,
				})
			}
			return nil
		})
	},
}

var lookupPurgeAll bool

var lookupPurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Purge expired lookup cache rows (or everything with --all)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			provider := ""
			if cmd.Flags().Changed("provider") {
				provider = lookupProvider
			}
			n, err := service.PurgeLookupCache(sqldb, provider, lookupPurgeAll)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Purged %d cached lookups\n", n)
			return nil
		})
	},
}

func lookupClient(provider string) (interface {
	SearchFoods(ctx context.Context, query string) ([]model.MealNutrition, []service.LookupSource, error)
}, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case service.LookupProviderGemini:
		client, err := geminiClient()
		if err != nil {
			return nil, err
		}
		return &service.GeminiSearchAdapter{Client: client}, nil
	case service.LookupProviderOpenFoodFacts:
		return &service.OpenFoodFactsSearchAdapter{Client: &openfoodfacts.Client{}}, nil
	default:
		return nil, fmt.Errorf("unknown provider %q (use gemini or openfoodfacts)", provider)
	}
}

func printLookupResult(cmd *cobra.Command, result service.FoodLookupResult) {
	if result.FromCache {
		fmt.Fprintln(cmd.OutOrStdout(), "(cached)")
	}
	if len(result.Results) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No results found")
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), "NAME\tKCAL\tP\tC\tF")
	for _, r := range result.Results {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%.1f\t%.1f\t%.1f\n",
			r.Name, r.Calories, r.ProteinG, r.CarbsG, r.FatG)
	}
	for _, s := range result.Sources {
		fmt.Fprintf(cmd.OutOrStdout(), "Source: %s (%s)\n", s.Title, s.URI)
	}
}

// logLookupResult records the top candidate as an AI-sourced meal.
func logLookupResult(cmd *cobra.Command, sqldb *sql.DB, n model.MealNutrition) error {
	id, err := service.LogMeal(sqldb, service.LogMealInput{
		Name:       n.Name,
		Calories:   n.Calories,
		ProteinG:   n.ProteinG,
		CarbsG:     n.CarbsG,
		FatG:       n.FatG,
		MealType:   lookupLogType,
		SourceType: "ai",
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Logged meal %d: %s\n", id, n.Name)
	return nil
}

func init() {
	rootCmd.AddCommand(lookupCmd)
	lookupCmd.AddCommand(lookupPhotoCmd, lookupPurgeCmd)

	lookupCmd.PersistentFlags().StringVar(&lookupProvider, "provider", service.LookupProviderGemini, "Lookup provider: gemini or openfoodfacts")
	lookupCmd.PersistentFlags().BoolVar(&lookupLog, "log", false, "Log the top result as a meal")
	lookupCmd.PersistentFlags().StringVar(&lookupLogType, "type", "Snack", "Meal type when logging the top result")
	lookupCmd.Flags().BoolVar(&lookupRefresh, "refresh", false, "Bypass the cache and fetch fresh results")
	lookupPurgeCmd.Flags().BoolVar(&lookupPurgeAll, "all", false, "Purge every cached lookup, not just expired rows")
}
