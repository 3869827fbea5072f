package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/url"
	"sort"
	"strings"
)

// catalogSearchLimit is how many items are considered when looking for an affordable one
const catalogSearchLimit = 50

const shopSearchURL = "https://www.chewy.com/s?query="

// MostExpensiveAffordable returns the dearest item priced at or under budget.
// ok is false when the budget is not positive or nothing fits.
func MostExpensiveAffordable(items []CatalogItem, budget float64) (item CatalogItem, ok bool) {
	if budget <= 0 {
		return CatalogItem{}, false
	}
	affordable := make([]CatalogItem, 0, len(items))
	for _, it := range items {
		if it.Price <= budget {
			affordable = append(affordable, it)
		}
	}
	if len(affordable) == 0 {
		return CatalogItem{}, false
	}
	sort.SliceStable(affordable, func(i, j int) bool {
		return affordable[i].Price < affordable[j].Price
	})
	return affordable[len(affordable)-1], true
}

// AffordableCatalogItem searches the whole catalog for the dearest item within budget.
// A failing or empty catalog is treated the same as "nothing affordable".
func AffordableCatalogItem(ctx context.Context, catalog CatalogProvider, budget float64) (CatalogItem, bool) {
	if budget <= 0 {
		return CatalogItem{}, false
	}
	items, err := catalog.ListItems(ctx, AllCategories, catalogSearchLimit)
	if err != nil {
		log.Printf("Catalog %s: %v", catalog.Name(), err)
		return CatalogItem{}, false
	}
	return MostExpensiveAffordable(items, budget)
}

// RandomCatalogItem picks any catalog item, for suggestions that ignore the budget
func RandomCatalogItem(ctx context.Context, catalog CatalogProvider, r *rand.Rand) (CatalogItem, bool) {
	items, err := catalog.ListItems(ctx, AllCategories, 20)
	if err != nil || len(items) == 0 {
		return CatalogItem{}, false
	}
	return items[r.Intn(len(items))], true
}

// PetSuggestion is what the dog asks for instead of the purchase
type PetSuggestion struct {
	Message   string       `json:"message"`
	Emoji     string       `json:"emoji"`
	Item      *CatalogItem `json:"item,omitempty"`
	ItemName  string       `json:"item_name,omitempty"`
	Quantity  int          `json:"quantity"`
	Budget    float64      `json:"budget"`
	PriceText string       `json:"price_text,omitempty"`
	ShopURL   string       `json:"shop_url,omitempty"`
}

// TooSmall reports whether the budget could not buy a single item
func (s PetSuggestion) TooSmall() bool {
	return s.Item == nil || s.Quantity == 0
}

const tooSmallMessage = "Mom, that amount is so small I couldn't even buy a single treat. You might as well invest it instead! 🐕"

// SuggestTreat turns the affordable-item search result into the dog's message.
// found=false (or a zero quantity) produces the "too small" message.
func SuggestTreat(item CatalogItem, found bool, budget float64) PetSuggestion {
	s := PetSuggestion{Budget: budget}
	if !found {
		s.Message, s.Emoji = tooSmallMessage, "😢"
		return s
	}
	qty := AffordableQuantity(budget, item.Price)
	if qty == 0 {
		s.Message, s.Emoji = tooSmallMessage, "😢"
		return s
	}

	name := item.Name
	if qty > 1 {
		name = fmt.Sprintf("%d %ss", qty, item.Name)
	}
	it := item
	s.Item = &it
	s.ItemName = name
	s.Quantity = qty
	s.Emoji = "😍"
	s.Message = fmt.Sprintf("Mom, don't buy that! Buy me %s instead! 🐕", name)
	s.PriceText = FormatPrice(item.Price) + " each"
	// Spaces as %20 rather than "+", matching the shop's own search links
	s.ShopURL = shopSearchURL + strings.ReplaceAll(url.QueryEscape(item.Name), "+", "%20")
	return s
}
