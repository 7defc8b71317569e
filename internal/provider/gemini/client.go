package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-2.5-flash"
)

// ErrNoResults marks an empty or unparsable model answer. Callers show
// a "no matches" state for it instead of an error banner.
var ErrNoResults = errors.New("no nutrition results")

type NutritionResult struct {
	Name     string  `json:"name"`
	Calories int     `json:"calories"`
	ProteinG float64 `json:"protein"`
	CarbsG   float64 `json:"carbs"`
	FatG     float64 `json:"fats"`
}

type Source struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

type Client struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

const searchPromptTemplate = `Use Google Search to find accurate nutritional information for the food query: '%s'. Provide a list of common variations and serving sizes with their nutritional information (calories, protein, carbs, fats). Return a JSON array of objects, where each object has 'name', 'calories', 'protein', 'carbs', and 'fats'. If the query is a number (like a barcode), try to find the product. Provide up to 5 results. If you can't find the food, return an empty array. IMPORTANT: Your entire response must be ONLY the JSON array, with no other text, markdown, or explanations.`

const photoPrompt = `Analyze the meal in this image. Use web search to find the most accurate nutritional information for the identified food items. Identify each food item and estimate its nutritional values (calories, protein, carbs, fats). Return the data as a JSON array of objects. Each object should have 'name', 'calories', 'protein', 'carbs', and 'fats' keys. If you cannot identify items, return an empty array. IMPORTANT: Your entire response must be ONLY the JSON array, with no other text, markdown, or explanations.`

// SearchFood asks the model for nutrition candidates for a free-text
// query, with search grounding for citations.
func (c *Client) SearchFood(ctx context.Context, query string) ([]NutritionResult, []Source, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil, fmt.Errorf("search query is required")
	}
	req := generateRequest{
		Contents: []content{{Parts: []part{{Text: fmt.Sprintf(searchPromptTemplate, query)}}}},
		Tools:    []tool{{GoogleSearch: &struct{}{}}},
	}
	return c.generate(ctx, req)
}

// AnalyzePhoto sends an image with the analysis prompt and returns the
// identified items.
func (c *Client) AnalyzePhoto(ctx context.Context, imageData []byte, mimeType string) ([]NutritionResult, []Source, error) {
	if len(imageData) == 0 {
		return nil, nil, fmt.Errorf("image data is required")
	}
	if strings.TrimSpace(mimeType) == "" {
		mimeType = "image/jpeg"
	}
	req := generateRequest{
		Contents: []content{{Parts: []part{
			{InlineData: &inlineData{MimeType: mimeType, Data: base64.StdEncoding.EncodeToString(imageData)}},
			{Text: photoPrompt},
		}}},
		Tools: []tool{{GoogleSearch: &struct{}{}}},
	}
	return c.generate(ctx, req)
}

func (c *Client) generate(ctx context.Context, reqBody generateRequest) ([]NutritionResult, []Source, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, nil, fmt.Errorf("missing Gemini API key (set GEMINI_API_KEY)")
	}
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	model := strings.TrimSpace(c.Model)
	if model == "" {
		model = defaultModel
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal Gemini request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", base, model, c.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, nil, fmt.Errorf("create Gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("execute Gemini request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read Gemini response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil, fmt.Errorf("Gemini request failed with status %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, nil, fmt.Errorf("decode Gemini response: %w", err)
	}
	if len(parsed.Candidates) == 0 {
		return nil, nil, ErrNoResults
	}

	candidate := parsed.Candidates[0]
	var text strings.Builder
	for _, p := range candidate.Content.Parts {
		text.WriteString(p.Text)
	}

	results, err := parseResults(text.String())
	if err != nil {
		return nil, nil, err
	}

	sources := make([]Source, 0, len(candidate.GroundingMetadata.GroundingChunks))
	for _, chunk := range candidate.GroundingMetadata.GroundingChunks {
		if chunk.Web.URI == "" {
			continue
		}
		sources = append(sources, Source{Title: chunk.Web.Title, URI: chunk.Web.URI})
	}
	return results, sources, nil
}

// parseResults tolerates markdown fences around the JSON array; any
// output that still does not parse, or an empty array, is ErrNoResults
// rather than a hard failure.
func parseResults(raw string) ([]NutritionResult, error) {
	raw = strings.ReplaceAll(raw, "```json", "")
	raw = strings.ReplaceAll(raw, "```", "")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrNoResults
	}
	var results []NutritionResult
	if err := json.Unmarshal([]byte(raw), &results); err != nil {
		return nil, ErrNoResults
	}
	if len(results) == 0 {
		return nil, ErrNoResults
	}
	return results, nil
}

type generateRequest struct {
	Contents []content `json:"contents"`
	Tools    []tool    `json:"tools,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type tool struct {
	GoogleSearch *struct{} `json:"google_search,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		GroundingMetadata struct {
			GroundingChunks []struct {
				Web struct {
					URI   string `json:"uri"`
					Title string `json:"title"`
				} `json:"web"`
			} `json:"groundingChunks"`
		} `json:"groundingMetadata"`
	} `json:"candidates"`
}
