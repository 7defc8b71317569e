package gemini

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchFoodParsesFencedJSONAndSources(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "candidates": [
    {
      "content": {
        "parts": [
          {"text": "` + "```json\\n" + `[{\"name\": \"Falafel Wrap\", \"calories\": 620, \"protein\": 18, \"carbs\": 72, \"fats\": 28}]` + "\\n```" + `"}
        ]
      },
      "groundingMetadata": {
        "groundingChunks": [
          {"web": {"uri": "https://example.com/nutrition", "title": "Nutrition DB"}}
        ]
      }
    }
  ]
}`))
	}))
	defer ts.Close()

	c := &Client{APIKey: "demo", BaseURL: ts.URL, HTTPClient: ts.Client()}

	results, sources, err := c.SearchFood(context.Background(), "falafel wrap")
	if err != nil {
		t.Fatalf("search food: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Name != "Falafel Wrap" || results[0].Calories != 620 {
		t.Fatalf("unexpected result: %+v", results[0])
	}
	if len(sources) != 1 || sources[0].URI != "https://example.com/nutrition" {
		t.Fatalf("unexpected sources: %+v", sources)
	}
}

func TestSearchFoodEmptyArrayIsNoResults(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "[]"}]}}]}`))
	}))
	defer ts.Close()

	c := &Client{APIKey: "demo", BaseURL: ts.URL, HTTPClient: ts.Client()}

	_, _, err := c.SearchFood(context.Background(), "mystery dish")
	if !errors.Is(err, ErrNoResults) {
		t.Fatalf("expected ErrNoResults, got %v", err)
	}
}

func TestSearchFoodMalformedOutputIsNoResults(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates": [{"content": {"parts": [{"text": "Sorry, I could not find that."}]}}]}`))
	}))
	defer ts.Close()

	c := &Client{APIKey: "demo", BaseURL: ts.URL, HTTPClient: ts.Client()}

	_, _, err := c.SearchFood(context.Background(), "gibberish")
	if !errors.Is(err, ErrNoResults) {
		t.Fatalf("expected ErrNoResults for unparsable output, got %v", err)
	}
}

func TestSearchFoodRequiresAPIKey(t *testing.T) {
	t.Parallel()

	c := &Client{}
	_, _, err := c.SearchFood(context.Background(), "apple")
	if err == nil {
		t.Fatalf("expected error without API key")
	}
}
