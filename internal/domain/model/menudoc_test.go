package model

import (
	"strings"
	"testing"
)

func TestNormalizeMenuDocCanonicalFields(t *testing.T) {
	item := NormalizeMenuDoc(map[string]any{
		"id":        "item-1",
		"name":      "Samosa",
		"price":     float64(15),
		"available": float64(20),
	})
	if item.ID != "item-1" || item.Name != "Samosa" {
		t.Fatalf("unexpected identity %+v", item)
	}
	if item.Price != 15 || item.Available != 20 {
		t.Fatalf("unexpected numbers %+v", item)
	}
}

func TestNormalizeMenuDocLegacyFieldNames(t *testing.T) {
	item := NormalizeMenuDoc(map[string]any{
		"itemName": "Tea",
		"Price":    "₹10.00",
		"stock":    "about 50 left",
	})
	if item.Name != "Tea" {
		t.Fatalf("expected itemName fallback, got %q", item.Name)
	}
	if item.Price != 10 {
		t.Fatalf("expected currency junk stripped, got %v", item.Price)
	}
	if item.Available != 50 {
		t.Fatalf("expected digits extracted from stock, got %d", item.Available)
	}
}

func TestNormalizeMenuDocFieldPriority(t *testing.T) {
	item := NormalizeMenuDoc(map[string]any{
		"name":  "Coffee",
		"title": "Old Coffee",
		"price": float64(25),
		"cost":  float64(99),
	})
	if item.Name != "Coffee" {
		t.Fatalf("name should win over title, got %q", item.Name)
	}
	if item.Price != 25 {
		t.Fatalf("price should win over cost, got %v", item.Price)
	}
}

func TestNormalizeMenuDocDefaults(t *testing.T) {
	item := NormalizeMenuDoc(map[string]any{"name": "Mystery"})
	if item.Price != 0 {
		t.Fatalf("missing price should default to 0, got %v", item.Price)
	}
	if item.Available != 10 {
		t.Fatalf("missing availability should default to 10, got %d", item.Available)
	}
	if item.ID == "" {
		t.Fatal("missing id should be generated")
	}
}

func TestNormalizeMenuDocUnparseableValuesFallBack(t *testing.T) {
	item := NormalizeMenuDoc(map[string]any{
		"name":      "Broken",
		"price":     "free!",
		"available": "plenty",
	})
	if item.Price != 0 {
		t.Fatalf("unparseable price should default to 0, got %v", item.Price)
	}
	if item.Available != 10 {
		t.Fatalf("unparseable availability should default to 10, got %d", item.Available)
	}
}

func TestNormalizeMenuDocNegativePriceClamped(t *testing.T) {
	item := NormalizeMenuDoc(map[string]any{"name": "Weird", "price": float64(-5)})
	if item.Price != 0 {
		t.Fatalf("negative price should clamp to 0, got %v", item.Price)
	}
}

func TestNormalizeMenuDocMissingName(t *testing.T) {
	item := NormalizeMenuDoc(map[string]any{"id": "item-9", "price": float64(5)})
	if !strings.HasPrefix(item.Name, "Unnamed-") {
		t.Fatalf("missing name should get placeholder, got %q", item.Name)
	}
}
