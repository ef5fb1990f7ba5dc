package search

import (
	"StockScan-Backend/domain"
	"testing"
)

func catalog() []domain.ProductResponse {
	return []domain.ProductResponse{
		{ID: "1", Name: "Coca Cola", Category: "drinks", Barcode: "8991234567890"},
		{ID: "2", Name: "Potato Chips", Category: "snacks", Barcode: "8990987654321"},
		{ID: "3", Name: "Cola Zero", Category: "drinks"},
		{ID: "4", Name: "Mineral Water", Category: "drinks", Barcode: "123"},
	}
}

func ids(results []domain.ProductResponse) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.ID)
	}
	return out
}

func TestSearchEmptyQueryReturnsFullCatalog(t *testing.T) {
	idx := NewIndex(DefaultMaxRank)
	idx.Rebuild("u1", catalog())

	results := idx.Search("u1", "")
	if len(results) != 4 {
		t.Fatalf("len = %d, want 4", len(results))
	}
	// Catalog order is preserved when there is nothing to rank.
	for i, want := range []string{"1", "2", "3", "4"} {
		if results[i].ID != want {
			t.Fatalf("results[%d] = %s, want %s", i, results[i].ID, want)
		}
	}
}

func TestSearchMatchesName(t *testing.T) {
	idx := NewIndex(DefaultMaxRank)
	idx.Rebuild("u1", catalog())

	results := idx.Search("u1", "cola")
	if len(results) == 0 {
		t.Fatalf("no results for %q", "cola")
	}
	for _, r := range results {
		if r.ID == "2" || r.ID == "4" {
			t.Fatalf("unrelated product %s matched", r.ID)
		}
	}
}

func TestSearchMatchesCategoryAndBarcode(t *testing.T) {
	idx := NewIndex(DefaultMaxRank)
	idx.Rebuild("u1", catalog())

	byCategory := idx.Search("u1", "snacks")
	if len(byCategory) != 1 || byCategory[0].ID != "2" {
		t.Fatalf("category search = %v, want [2]", ids(byCategory))
	}

	byBarcode := idx.Search("u1", "123")
	found := false
	for _, r := range byBarcode {
		if r.ID == "4" {
			found = true
		}
	}
	if !found {
		t.Fatalf("barcode search = %v, want product 4 included", ids(byBarcode))
	}
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	idx := NewIndex(DefaultMaxRank)
	idx.Rebuild("u1", catalog())

	lower := idx.Search("u1", "cola")
	upper := idx.Search("u1", "COLA")
	if len(lower) != len(upper) {
		t.Fatalf("case changed result count: %d vs %d", len(lower), len(upper))
	}
}

func TestSearchRanksCloserMatchesFirst(t *testing.T) {
	idx := NewIndex(DefaultMaxRank)
	idx.Rebuild("u1", []domain.ProductResponse{
		{ID: "far", Name: "Chocolate Caramel Bar"},
		{ID: "near", Name: "Choco"},
	})

	results := idx.Search("u1", "choco")
	if len(results) < 2 {
		t.Fatalf("len = %d, want 2", len(results))
	}
	if results[0].ID != "near" {
		t.Fatalf("closest match ranked %v", ids(results))
	}
}

func TestShardsAreIsolatedPerUser(t *testing.T) {
	idx := NewIndex(DefaultMaxRank)
	idx.Rebuild("u1", catalog())
	idx.Rebuild("u2", []domain.ProductResponse{{ID: "9", Name: "Soap", Category: "hygiene"}})

	if results := idx.Search("u2", "cola"); len(results) != 0 {
		t.Fatalf("u2 sees u1 products: %v", ids(results))
	}
	if results := idx.Search("u1", ""); len(results) != 4 {
		t.Fatalf("u1 catalog = %d, want 4", len(results))
	}
}

func TestDropRemovesShard(t *testing.T) {
	idx := NewIndex(DefaultMaxRank)
	idx.Rebuild("u1", catalog())
	idx.Drop("u1")

	if results := idx.Search("u1", ""); len(results) != 0 {
		t.Fatalf("dropped shard still returns %d results", len(results))
	}
}

func TestRebuildReplacesSnapshot(t *testing.T) {
	idx := NewIndex(DefaultMaxRank)
	idx.Rebuild("u1", catalog())
	idx.Rebuild("u1", []domain.ProductResponse{{ID: "5", Name: "Bread", Category: "bakery"}})

	results := idx.Search("u1", "")
	if len(results) != 1 || results[0].ID != "5" {
		t.Fatalf("stale snapshot survived rebuild: %v", ids(results))
	}
}
