// Package openfoodfacts wraps the two read-only Open Food Facts calls
// the app needs: free-text search and exact barcode lookup. Upstream
// records are normalized into the canonical per-100g model.Product.
package openfoodfacts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"caloriescan/internal/model"
)

const (
	defaultBaseURL  = "https://world.openfoodfacts.org"
	defaultPageSize = 10
	defaultTimeout  = 10 * time.Second

	unknownProduct = "Unknown Product"
	unknownBrand   = "Unknown Brand"
)

// ErrProductNotFound is returned when the upstream reports status 0 for
// a barcode, or the matched product carries no display name.
var ErrProductNotFound = errors.New("product not found")

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	PageSize   int
}

// SearchByText issues a single text-search request and maps the results.
// An empty or whitespace query returns immediately without a network
// call. Records without a display name or nutrient block are dropped.
func (c *Client) SearchByText(ctx context.Context, query string) ([]model.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	pageSize := c.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	u := fmt.Sprintf("%s/cgi/search.pl?search_terms=%s&json=1&page_size=%d",
		c.baseURL(), url.QueryEscape(query), pageSize)

	body, err := c.get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("search products: decode response: %w", err)
	}

	out := make([]model.Product, 0, len(parsed.Products))
	for _, p := range parsed.Products {
		if strings.TrimSpace(p.ProductName) == "" || p.Nutriments == nil {
			continue
		}
		out = append(out, mapProduct(p))
	}
	return out, nil
}

// LookupByBarcode fetches the single product keyed by code.
func (c *Client) LookupByBarcode(ctx context.Context, code string) (model.Product, error) {
	u := fmt.Sprintf("%s/api/v0/product/%s.json", c.baseURL(), url.PathEscape(strings.TrimSpace(code)))

	body, err := c.get(ctx, u)
	if err != nil {
		return model.Product{}, fmt.Errorf("fetch product %s: %w", code, err)
	}
	var parsed lookupResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return model.Product{}, fmt.Errorf("fetch product %s: decode response: %w", code, err)
	}
	if parsed.Status != 1 || strings.TrimSpace(parsed.Product.ProductName) == "" {
		return model.Product{}, fmt.Errorf("barcode %s: %w", code, ErrProductNotFound)
	}
	return mapProduct(parsed.Product), nil
}

func (c *Client) baseURL() string {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	return base
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "caloriescan/1.0")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("request failed with status %d", resp.StatusCode)
	}
	return body, nil
}

func mapProduct(p rawProduct) model.Product {
	name := strings.TrimSpace(p.ProductName)
	if name == "" {
		name = unknownProduct
	}
	brand := strings.TrimSpace(p.Brands)
	if brand == "" {
		brand = unknownBrand
	}
	return model.Product{
		Name:  name,
		Brand: brand,
		// The calorie field appears under two key spellings upstream;
		// the chain is ordered, first hit wins.
		Calories: nutrientValue(p.Nutriments, "energy_kcal_100g", "energy-kcal_100g"),
		ProteinG: nutrientValue(p.Nutriments, "proteins_100g"),
		CarbsG:   nutrientValue(p.Nutriments, "carbohydrates_100g"),
		FatG:     nutrientValue(p.Nutriments, "fat_100g"),
		Barcode:  strings.TrimSpace(p.Code),
		ImageURL: strings.TrimSpace(p.ImageURL),
	}
}

// nutrientValue walks the fallback chain of key spellings and rounds
// the first parseable value to the nearest integer. Missing keys are 0.
func nutrientValue(n map[string]any, keys ...string) int {
	for _, key := range keys {
		if v, ok := parseFloatAny(n[key]); ok {
			return int(math.Round(v))
		}
	}
	return 0
}

func parseFloatAny(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

type rawProduct struct {
	Code        string         `json:"code"`
	ProductName string         `json:"product_name"`
	Brands      string         `json:"brands"`
	ImageURL    string         `json:"image_url"`
	Nutriments  map[string]any `json:"nutriments"`
}

type searchResponse struct {
	Products []rawProduct `json:"products"`
}

type lookupResponse struct {
	Status  int        `json:"status"`
	Product rawProduct `json:"product"`
}
