package main

import (
	"strings"
	"testing"
)

func TestRenderResult(t *testing.T) {
	result := calculateForReport(t, 1000)
	out := RenderResult(result)

	for _, want := range []string{
		"Your Investment Projection",
		"$2,367",
		"$2,839",
		"That's a potential gain of $1,367 to $1,839",
		"multiply by 2.4x to 2.8x",
		"Purina Pro Plan Adult Dog Food",
		FallbackSourceLabel,
		"educational purposes only",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered result missing %q", want)
		}
	}
}

func TestRenderSuggestion_TooSmall(t *testing.T) {
	out := RenderSuggestion(SuggestTreat(CatalogItem{}, false, 2))
	if !strings.Contains(out, "so small") || strings.Contains(out, "Augie's Suggestion") {
		t.Errorf("too-small suggestion rendered as %q", out)
	}
}

func TestRenderCatalog(t *testing.T) {
	if got := RenderCatalog(nil); !strings.Contains(got, "No products found") {
		t.Errorf("empty catalog = %q", got)
	}
	out := RenderCatalog(catalogFixture)
	if !strings.Contains(out, "$45.99") || !strings.Contains(out, "Kong") {
		t.Errorf("catalog table = %q", out)
	}
}

func TestRenderIndices(t *testing.T) {
	out := RenderIndices(StockIndices)
	for _, idx := range StockIndices {
		if !strings.Contains(out, idx.ShortName) {
			t.Errorf("indices table missing %s", idx.ShortName)
		}
	}
	if !strings.Contains(out, "12.2%") {
		t.Error("VTSAX 10-year return missing")
	}
	if !strings.Contains(out, "10y") {
		t.Error("available return periods missing")
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"Purina Pro Plan Adult Dog Food", 10, "Purina ..."},
		{"ééééééé", 5, "éé..."},
	}
	for _, tc := range tests {
		if got := truncateString(tc.in, tc.max); got != tc.want {
			t.Errorf("truncateString(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
	}
}
