package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// AllCategories selects every item regardless of category
const AllCategories = "all"

// ErrCatalogUnconfigured is returned by catalog sources that need an API key that was not provided
var ErrCatalogUnconfigured = errors.New("pet product API key not configured")

// CatalogItem is a product the dog would rather have
type CatalogItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url"`
	Category string  `json:"category"`
	Brand    string  `json:"brand"`
}

// CatalogProvider lists catalog items, optionally filtered by category and truncated to limit
type CatalogProvider interface {
	Name() string
	ListItems(ctx context.Context, category string, limit int) ([]CatalogItem, error)
}

// catalogFixture is the built-in product list (cheapest item $6.99, dearest $45.99)
var catalogFixture = []CatalogItem{
	{
		ID:       "1",
		Name:     "Greenies Original Dental Dog Treats",
		Price:    12.99,
		ImageURL: "https://images.chewy.com/is/image/catalog/48401_MAIN._AC_SL1500_V1666897050_.jpg",
		Category: "dental-treats",
		Brand:    "Greenies",
	},
	{
		ID:       "2",
		Name:     "Milk-Bone Original Dog Treats",
		Price:    8.99,
		ImageURL: "https://images.chewy.com/is/image/catalog/48402_MAIN._AC_SL1500_V1666897050_.jpg",
		Category: "dog-treats",
		Brand:    "Milk-Bone",
	},
	{
		ID:       "3",
		Name:     "Beggin Strips Bacon Flavor Dog Treats",
		Price:    6.99,
		ImageURL: "https://images.chewy.com/is/image/catalog/48403_MAIN._AC_SL1500_V1666897050_.jpg",
		Category: "dog-treats",
		Brand:    "Beggin",
	},
	{
		ID:       "4",
		Name:     "Kong Classic Dog Toy",
		Price:    14.99,
		ImageURL: "https://images.chewy.com/is/image/catalog/48404_MAIN._AC_SL1500_V1666897050_.jpg",
		Category: "dog-toys",
		Brand:    "Kong",
	},
	{
		ID:       "5",
		Name:     "Purina Pro Plan Adult Dog Food",
		Price:    45.99,
		ImageURL: "https://images.chewy.com/is/image/catalog/48405_MAIN._AC_SL1500_V1666897050_.jpg",
		Category: "dog-food",
		Brand:    "Purina",
	},
}

// FixtureCatalog serves the built-in product list after a simulated network delay
type FixtureCatalog struct {
	Latency time.Duration
}

// NewFixtureCatalog creates a fixture catalog with the given simulated latency
func NewFixtureCatalog(latency time.Duration) *FixtureCatalog {
	return &FixtureCatalog{Latency: latency}
}

func (c *FixtureCatalog) Name() string { return "fixture" }

// ListItems filters the fixture by category ("all" for everything) and keeps at most limit items
func (c *FixtureCatalog) ListItems(ctx context.Context, category string, limit int) ([]CatalogItem, error) {
	ctx, span := tracer.Start(ctx, "catalog.fixture.list")
	defer span.End()
	span.SetAttributes(attribute.String("catalog.category", category), attribute.Int("catalog.limit", limit))

	if err := simulateLatency(ctx, c.Latency); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return filterCatalog(catalogFixture, category, limit), nil
}

func filterCatalog(items []CatalogItem, category string, limit int) []CatalogItem {
	out := []CatalogItem{}
	for _, item := range items {
		if len(out) >= limit {
			break
		}
		if category == AllCategories || item.Category == category {
			out = append(out, item)
		}
	}
	return out
}

// PetProductAPI is an alternate catalog backed by a third-party pet product API.
// Without an API key it reports ErrCatalogUnconfigured and contributes nothing.
type PetProductAPI struct {
	APIKey  string
	BaseURL string
	HTTP    *http.Client
}

func (p *PetProductAPI) Name() string { return "pet-product-api" }

// Configured reports whether an API key is present
func (p *PetProductAPI) Configured() bool {
	return p != nil && strings.TrimSpace(p.APIKey) != ""
}

type petProductResponse struct {
	Products []CatalogItem `json:"products"`
}

// ListItems queries GET <base>/v1/products for the category
func (p *PetProductAPI) ListItems(ctx context.Context, category string, limit int) ([]CatalogItem, error) {
	if !p.Configured() {
		return nil, ErrCatalogUnconfigured
	}
	ctx, span := tracer.Start(ctx, "catalog.pet_api.list")
	defer span.End()

	q := url.Values{}
	q.Set("category", category)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("apikey", p.APIKey)
	endpoint := strings.TrimRight(p.BaseURL, "/") + "/v1/products?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build pet product request: %w", err)
	}
	client := p.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("fetch pet products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("fetch pet products: unexpected status %d", resp.StatusCode)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var body petProductResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode pet products: %w", err)
	}
	if limit >= 0 && len(body.Products) > limit {
		body.Products = body.Products[:limit]
	}
	span.SetAttributes(attribute.Int("catalog.items", len(body.Products)))
	return body.Products, nil
}

// FallbackCatalog asks Primary first and falls back to Secondary when Primary fails or is empty
type FallbackCatalog struct {
	Primary   CatalogProvider
	Secondary CatalogProvider
}

func (f *FallbackCatalog) Name() string {
	return f.Primary.Name() + "+" + f.Secondary.Name()
}

func (f *FallbackCatalog) ListItems(ctx context.Context, category string, limit int) ([]CatalogItem, error) {
	items, err := f.Primary.ListItems(ctx, category, limit)
	if err == nil && len(items) > 0 {
		return items, nil
	}
	if err != nil && !errors.Is(err, ErrCatalogUnconfigured) {
		log.Printf("Catalog %s unavailable, using %s: %v", f.Primary.Name(), f.Secondary.Name(), err)
	}
	return f.Secondary.ListItems(ctx, category, limit)
}

// simulateLatency waits for d or until ctx is done
func simulateLatency(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
