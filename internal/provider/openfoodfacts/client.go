package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://world.openfoodfacts.org"

type FoodResult struct {
	Name     string
	Brand    string
	Calories float64
	ProteinG float64
	CarbsG   float64
	FatG     float64
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// SearchByName queries the free-text product search. An empty product
// list is returned as-is; the caller decides how to present it.
func (c *Client) SearchByName(ctx context.Context, query string, limit int) ([]FoodResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is required")
	}
	if limit <= 0 {
		limit = 5
	}
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}

	params := url.Values{}
	params.Set("search_terms", query)
	params.Set("search_simple", "1")
	params.Set("action", "process")
	params.Set("json", "1")
	params.Set("page_size", fmt.Sprintf("%d", limit))
	params.Set("fields", "product_name,brands,nutriments")

	endpoint := fmt.Sprintf("%s/cgi/search.pl?%s", base, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create openfoodfacts request: %w", err)
	}
	req.Header.Set("User-Agent", "vita/1.0 (+https://github.com/saidtaznakhte/Vitatrak)")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute openfoodfacts request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read openfoodfacts response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openfoodfacts request failed with status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode openfoodfacts response: %w", err)
	}

	results := make([]FoodResult, 0, len(parsed.Products))
	for _, p := range parsed.Products {
		name := strings.TrimSpace(p.ProductName)
		if name == "" {
			continue
		}
		results = append(results, FoodResult{
			Name:     name,
			Brand:    strings.TrimSpace(p.Brands),
			Calories: nutrientValue(p.Nutriments, "energy-kcal"),
			ProteinG: nutrientValue(p.Nutriments, "proteins"),
			CarbsG:   nutrientValue(p.Nutriments, "carbohydrates"),
			FatG:     nutrientValue(p.Nutriments, "fat"),
		})
	}
	return results, nil
}

type searchResponse struct {
	Products []struct {
		ProductName string                     `json:"product_name"`
		Brands      string                     `json:"brands"`
		Nutriments  map[string]json.RawMessage `json:"nutriments"`
	} `json:"products"`
}

// nutrientValue prefers the per-100g figure and tolerates both numeric
// and string encodings, which the API mixes freely.
func nutrientValue(nutriments map[string]json.RawMessage, key string) float64 {
	for _, candidate := range []string{key + "_100g", key} {
		raw, ok := nutriments[candidate]
		if !ok {
			continue
		}
		var asFloat float64
		if err := json.Unmarshal(raw, &asFloat); err == nil {
			return asFloat
		}
		var asString string
		if err := json.Unmarshal(raw, &asString); err == nil {
			var parsed float64
			if _, err := fmt.Sscanf(asString, "%g", &parsed); err == nil {
				return parsed
			}
		}
	}
	return 0
}
