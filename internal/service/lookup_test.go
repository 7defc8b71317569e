package service_test

import (
	"context"
	"testing"

	"github.com/saidtaznakhte/Vitatrak/internal/model"
	"github.com/saidtaznakhte/Vitatrak/internal/service"
)

type countingSearchClient struct {
	calls   int
	results []model.MealNutrition
}

func (c *countingSearchClient) SearchFoods(ctx context.Context, query string) ([]model.MealNutrition, []service.LookupSource, error) {
	c.calls++
	return c.results, nil, nil
}

func TestLookupFoodCachesResults(t *testing.T) {
	sqldb := newTestDB(t)
	defer sqldb.Close()

	client := &countingSearchClient{results: []model.MealNutrition{
		{Name: "Banana", Calories: 105, ProteinG: 1.3, CarbsG: 27, FatG: 0.4},
	}}

	first, err := service.LookupFood(sqldb, service.LookupProviderGemini, client, "banana")
	if err != nil {
		t.Fatalf("first lookup: %v", err)
	}
	if first.FromCache {
		t.Fatalf("first lookup should not come from cache")
	}
	if len(first.Results) != 1 || first.Results[0].Name != "Banana" {
		t.Fatalf("unexpected results: %+v", first.Results)
	}

	second, err := service.LookupFood(sqldb, service.LookupProviderGemini, client, "  Banana ")
	if err != nil {
		t.Fatalf("second lookup: %v", err)
	}
	if !second.FromCache {
		t.Fatalf("second lookup should be served from cache")
	}
	if client.calls != 1 {
		t.Fatalf("expected a single provider call, got %d", client.calls)
	}
}

func TestLookupCacheIsPerProvider(t *testing.T) {
	sqldb := newTestDB(t)
	defer sqldb.Close()

	gemini := &countingSearchClient{results: []model.MealNutrition{{Name: "Apple", Calories: 95}}}
	off := &countingSearchClient{results: []model.MealNutrition{{Name: "Apple (Raw)", Calories: 90}}}

	if _, err := service.LookupFood(sqldb, service.LookupProviderGemini, gemini, "apple"); err != nil {
		t.Fatalf("gemini lookup: %v", err)
	}
	res, err := service.LookupFood(sqldb, service.LookupProviderOpenFoodFacts, off, "apple")
	if err != nil {
		t.Fatalf("openfoodfacts lookup: %v", err)
	}
	if res.FromCache {
		t.Fatalf("different provider must not share cache rows")
	}
	if off.calls != 1 {
		t.Fatalf("expected openfoodfacts provider call, got %d", off.calls)
	}
}

func TestRefreshLookupBypassesCache(t *testing.T) {
	sqldb := newTestDB(t)
	defer sqldb.Close()

	client := &countingSearchClient{results: []model.MealNutrition{{Name: "Oats", Calories: 150}}}
	if _, err := service.LookupFood(sqldb, service.LookupProviderGemini, client, "oats"); err != nil {
		t.Fatalf("lookup: %v", err)
	}
	res, err := service.RefreshLookup(sqldb, service.LookupProviderGemini, client, "oats")
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if res.FromCache {
		t.Fatalf("refresh must hit the provider")
	}
	if client.calls != 2 {
		t.Fatalf("expected 2 provider calls, got %d", client.calls)
	}
}

func TestPurgeLookupCache(t *testing.T) {
	sqldb := newTestDB(t)
	defer sqldb.Close()

	client := &countingSearchClient{results: []model.MealNutrition{{Name: "Rice", Calories: 200}}}
	if _, err := service.LookupFood(sqldb, service.LookupProviderGemini, client, "rice"); err != nil {
		t.Fatalf("lookup: %v", err)
	}
	purged, err := service.PurgeLookupCache(sqldb, "", true)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if purged != 1 {
		t.Fatalf("expected 1 purged row, got %d", purged)
	}
	res, err := service.LookupFood(sqldb, service.LookupProviderGemini, client, "rice")
	if err != nil {
		t.Fatalf("lookup after purge: %v", err)
	}
	if res.FromCache {
		t.Fatalf("expected provider hit after purge")
	}
}
