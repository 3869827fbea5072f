package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// stubCatalog is a CatalogProvider with canned output
type stubCatalog struct {
	name  string
	items []CatalogItem
	err   error
	calls int
}

func (s *stubCatalog) Name() string { return s.name }

func (s *stubCatalog) ListItems(ctx context.Context, category string, limit int) ([]CatalogItem, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return filterCatalog(s.items, category, limit), nil
}

func TestFixtureCatalog_Filtering(t *testing.T) {
	c := NewFixtureCatalog(0)
	ctx := context.Background()

	tests := []struct {
		category string
		limit    int
		wantIDs  []string
	}{
		{AllCategories, 50, []string{"1", "2", "3", "4", "5"}},
		{AllCategories, 2, []string{"1", "2"}},
		{"dog-treats", 50, []string{"2", "3"}},
		{"dog-treats", 1, []string{"2"}},
		{"dog-food", 50, []string{"5"}},
		{"cat-toys", 50, []string{}},
		{AllCategories, 0, []string{}},
	}

	for _, tc := range tests {
		items, err := c.ListItems(ctx, tc.category, tc.limit)
		if err != nil {
			t.Fatalf("ListItems(%q, %d): %v", tc.category, tc.limit, err)
		}
		if len(items) != len(tc.wantIDs) {
			t.Errorf("ListItems(%q, %d) returned %d items, want %d", tc.category, tc.limit, len(items), len(tc.wantIDs))
			continue
		}
		for i, id := range tc.wantIDs {
			if items[i].ID != id {
				t.Errorf("ListItems(%q, %d)[%d].ID = %s, want %s", tc.category, tc.limit, i, items[i].ID, id)
			}
		}
	}
}

func TestFixtureCatalog_HonoursCancellation(t *testing.T) {
	c := NewFixtureCatalog(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.ListItems(ctx, AllCategories, 10); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestPetProductAPI_Unconfigured(t *testing.T) {
	api := &PetProductAPI{BaseURL: "http://unused.invalid"}
	if api.Configured() {
		t.Fatal("API without key reports configured")
	}
	if _, err := api.ListItems(context.Background(), AllCategories, 5); !errors.Is(err, ErrCatalogUnconfigured) {
		t.Errorf("expected ErrCatalogUnconfigured, got %v", err)
	}
}

func TestPetProductAPI_ListItems(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/products" {
			http.NotFound(w, r)
			return
		}
		q := r.URL.Query()
		gotQuery = map[string]string{"category": q.Get("category"), "limit": q.Get("limit"), "apikey": q.Get("apikey")}
		json.NewEncoder(w).Encode(petProductResponse{Products: []CatalogItem{
			{ID: "a", Name: "Chew Rope", Price: 9.5, Category: "dog-toys", Brand: "Acme"},
			{ID: "b", Name: "Squeaky Ball", Price: 4.25, Category: "dog-toys", Brand: "Acme"},
			{ID: "c", Name: "Frisbee", Price: 11, Category: "dog-toys", Brand: "Acme"},
		}})
	}))
	defer server.Close()

	api := &PetProductAPI{APIKey: "secret", BaseURL: server.URL + "/", HTTP: server.Client()}
	items, err := api.ListItems(context.Background(), "dog-toys", 2)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 2 || items[0].Name != "Chew Rope" {
		t.Errorf("unexpected items %+v", items)
	}
	want := map[string]string{"category": "dog-toys", "limit": "2", "apikey": "secret"}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Errorf("query %s = %q, want %q", k, gotQuery[k], v)
		}
	}
}

func TestPetProductAPI_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	api := &PetProductAPI{APIKey: "secret", BaseURL: server.URL}
	if _, err := api.ListItems(context.Background(), AllCategories, 5); err == nil {
		t.Error("expected an error for a 503 response")
	}
}

func TestFallbackCatalog(t *testing.T) {
	fixture := NewFixtureCatalog(0)
	ctx := context.Background()

	t.Run("unconfigured primary", func(t *testing.T) {
		c := &FallbackCatalog{Primary: &PetProductAPI{}, Secondary: fixture}
		items, err := c.ListItems(ctx, AllCategories, 50)
		if err != nil || len(items) != len(catalogFixture) {
			t.Errorf("got %d items, err %v; want the fixture", len(items), err)
		}
	})

	t.Run("failing primary", func(t *testing.T) {
		primary := &stubCatalog{name: "broken", err: errors.New("boom")}
		c := &FallbackCatalog{Primary: primary, Secondary: fixture}
		items, err := c.ListItems(ctx, "dog-food", 50)
		if err != nil || len(items) != 1 || items[0].ID != "5" {
			t.Errorf("got %+v, err %v; want the fixture's dog food", items, err)
		}
		if primary.calls != 1 {
			t.Errorf("primary called %d times", primary.calls)
		}
	})

	t.Run("empty primary", func(t *testing.T) {
		c := &FallbackCatalog{Primary: &stubCatalog{name: "empty"}, Secondary: fixture}
		items, _ := c.ListItems(ctx, AllCategories, 3)
		if len(items) != 3 {
			t.Errorf("got %d items, want 3 from the fixture", len(items))
		}
	})

	t.Run("primary answers", func(t *testing.T) {
		primary := &stubCatalog{name: "api", items: []CatalogItem{{ID: "x", Name: "Bone", Price: 3, Category: "dog-treats"}}}
		secondary := &stubCatalog{name: "never"}
		c := &FallbackCatalog{Primary: primary, Secondary: secondary}
		items, err := c.ListItems(ctx, AllCategories, 10)
		if err != nil || len(items) != 1 || items[0].ID != "x" {
			t.Errorf("got %+v, err %v", items, err)
		}
		if secondary.calls != 0 {
			t.Error("secondary consulted although primary answered")
		}
		if c.Name() != "api+never" {
			t.Errorf("Name() = %q", c.Name())
		}
	})
}
