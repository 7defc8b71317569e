package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/saidtaznakhte/Vitatrak/internal/model"
	"github.com/saidtaznakhte/Vitatrak/internal/provider/gemini"
	"github.com/saidtaznakhte/Vitatrak/internal/provider/openfoodfacts"
)

const (
	LookupProviderGemini        = "gemini"
	LookupProviderOpenFoodFacts = "openfoodfacts"

	defaultLookupTTL = 24 * time.Hour
)

type LookupSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

type FoodLookupResult struct {
	Provider  string                `json:"provider"`
	Query     string                `json:"query"`
	Results   []model.MealNutrition `json:"results"`
	Sources   []LookupSource        `json:"sources,omitempty"`
	FromCache bool                  `json:"from_cache"`
}

type foodSearchClient interface {
	SearchFoods(ctx context.Context, query string) ([]model.MealNutrition, []LookupSource, error)
}

// LookupFood serves from the cache when a fresh row exists, otherwise
// asks the provider and caches the answer. A provider "no results"
// outcome is passed through uncached so a later retry can succeed.
func LookupFood(db *sql.DB, provider string, client foodSearchClient, query string) (FoodLookupResult, error) {
	provider = strings.TrimSpace(strings.ToLower(provider))
	if provider == "" {
		return FoodLookupResult{}, fmt.Errorf("lookup provider is required")
	}
	queryNorm := normalizeLookupQuery(query)
	if queryNorm == "" {
		return FoodLookupResult{}, fmt.Errorf("search query is required")
	}

	cached, found, err := lookupCacheGet(db, provider, queryNorm)
	if err != nil {
		return FoodLookupResult{}, err
	}
	if found {
		cached.FromCache = true
		return cached, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()
	results, sources, err := client.SearchFoods(ctx, query)
	if err != nil {
		return FoodLookupResult{}, err
	}

	result := FoodLookupResult{Provider: provider, Query: queryNorm, Results: results, Sources: sources}
	if err := lookupCachePut(db, result, time.Now().Add(defaultLookupTTL)); err != nil {
		return FoodLookupResult{}, err
	}
	return result, nil
}

// RefreshLookup drops any cached row for the query and performs a fresh
// provider lookup.
func RefreshLookup(db *sql.DB, provider string, client foodSearchClient, query string) (FoodLookupResult, error) {
	provider = strings.TrimSpace(strings.ToLower(provider))
	queryNorm := normalizeLookupQuery(query)
	if provider == "" || queryNorm == "" {
		return FoodLookupResult{}, fmt.Errorf("provider and query are required")
	}
	if _, err := db.Exec(`DELETE FROM lookup_cache WHERE provider = ? AND query_norm = ?`, provider, queryNorm); err != nil {
		return FoodLookupResult{}, fmt.Errorf("delete lookup cache row: %w", err)
	}
	return LookupFood(db, provider, client, query)
}

func PurgeLookupCache(db *sql.DB, provider string, purgeAll bool) (int64, error) {
	provider = strings.TrimSpace(strings.ToLower(provider))
	var (
		res sql.Result
		err error
	)
	switch {
	case purgeAll:
		res, err = db.Exec(`DELETE FROM lookup_cache`)
	case provider != "":
		res, err = db.Exec(`DELETE FROM lookup_cache WHERE provider = ?`, provider)
	default:
		res, err = db.Exec(`DELETE FROM lookup_cache WHERE expires_at < ?`, time.Now().UTC().Format(time.RFC3339))
	}
	if err != nil {
		return 0, fmt.Errorf("purge lookup cache: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge lookup cache rows affected: %w", err)
	}
	return affected, nil
}

func normalizeLookupQuery(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

type lookupCachePayload struct {
	Results []model.MealNutrition `json:"results"`
	Sources []LookupSource        `json:"sources,omitempty"`
}

func lookupCacheGet(db *sql.DB, provider, queryNorm string) (FoodLookupResult, bool, error) {
	var resultsJSON, expiresRaw string
	err := db.QueryRow(`
SELECT results_json, expires_at FROM lookup_cache WHERE provider = ? AND query_norm = ?
`, provider, queryNorm).Scan(&resultsJSON, &expiresRaw)
	if err == sql.ErrNoRows {
		return FoodLookupResult{}, false, nil
	}
	if err != nil {
		return FoodLookupResult{}, false, fmt.Errorf("read lookup cache: %w", err)
	}
	expires, err := time.Parse(time.RFC3339, expiresRaw)
	if err != nil || time.Now().UTC().After(expires) {
		return FoodLookupResult{}, false, nil
	}
	var payload lookupCachePayload
	if err := json.Unmarshal([]byte(resultsJSON), &payload); err != nil {
		// Unreadable rows behave like misses; the fresh lookup
		// overwrites them.
		return FoodLookupResult{}, false, nil
	}
	return FoodLookupResult{
		Provider: provider,
		Query:    queryNorm,
		Results:  payload.Results,
		Sources:  payload.Sources,
	}, true, nil
}

func lookupCachePut(db *sql.DB, result FoodLookupResult, expires time.Time) error {
	payload, err := json.Marshal(lookupCachePayload{Results: result.Results, Sources: result.Sources})
	if err != nil {
		return fmt.Errorf("marshal lookup cache payload: %w", err)
	}
	_, err = db.Exec(`
INSERT INTO lookup_cache(provider, query_norm, results_json, fetched_at, expires_at)
VALUES(?, ?, ?, ?, ?)
ON CONFLICT(provider, query_norm) DO UPDATE SET
  results_json=excluded.results_json,
  fetched_at=excluded.fetched_at,
  expires_at=excluded.expires_at
`, result.Provider, result.Query, string(payload),
		time.Now().UTC().Format(time.RFC3339), expires.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("write lookup cache: %w", err)
	}
	return nil
}

// GeminiSearchAdapter bridges the Gemini client to the generic lookup
// path. A model "no results" answer comes back as an empty slice, not
// an error, so the caller can render the empty state.
type GeminiSearchAdapter struct {
	Client *gemini.Client
}

func (a *GeminiSearchAdapter) SearchFoods(ctx context.Context, query string) ([]model.MealNutrition, []LookupSource, error) {
	results, sources, err := a.Client.SearchFood(ctx, query)
	if err == gemini.ErrNoResults {
		return []model.MealNutrition{}, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	out := make([]model.MealNutrition, 0, len(results))
	for _, r := range results {
		out = append(out, model.MealNutrition{
			Name:     r.Name,
			Calories: r.Calories,
			ProteinG: r.ProteinG,
			CarbsG:   r.CarbsG,
			FatG:     r.FatG,
		})
	}
	srcs := make([]LookupSource, 0, len(sources))
	for _, s := range sources {
		srcs = append(srcs, LookupSource{Title: s.Title, URI: s.URI})
	}
	return out, srcs, nil
}

type OpenFoodFactsSearchAdapter struct {
	Client *openfoodfacts.Client
	Limit  int
}

func (a *OpenFoodFactsSearchAdapter) SearchFoods(ctx context.Context, query string) ([]model.MealNutrition, []LookupSource, error) {
	limit := a.Limit
	if limit <= 0 {
		limit = 5
	}
	foods, err := a.Client.SearchByName(ctx, query, limit)
	if err != nil {
		return nil, nil, err
	}
	out := make([]model.MealNutrition, 0, len(foods))
	for _, f := range foods {
		name := f.Name
		if f.Brand != "" {
			name = fmt.Sprintf("%s (%s)", f.Name, f.Brand)
		}
		out = append(out, model.MealNutrition{
			Name:     name,
			Calories: int(f.Calories),
			ProteinG: f.ProteinG,
			CarbsG:   f.CarbsG,
			FatG:     f.FatG,
		})
	}
	return out, nil, nil
}
