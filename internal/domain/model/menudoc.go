package model

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/google/uuid"
)

// Admin tooling writes menu documents in several historical shapes:
// name/itemName/Item/title, price/Price/cost, available/stock, with numbers
// sometimes arriving as strings with currency junk. All of that tolerance
// lives here; everything downstream sees only the canonical MenuItem.

const defaultAvailability = 10

var (
	nonPriceChars = regexp.MustCompile(`[^\d.]`)
	nonDigitChars = regexp.MustCompile(`[^\d]`)
)

// NormalizeMenuDoc maps a raw menu document into a canonical MenuItem.
// A missing or unusable price defaults to 0, availability to 10.
func NormalizeMenuDoc(doc map[string]any) *MenuItem {
	item := &MenuItem{
		ID:        stringField(doc, "id"),
		Available: defaultAvailability,
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	item.Name = firstString(doc, "name", "itemName", "Item", "title")
	if item.Name == "" {
		item.Name = "Unnamed-" + item.ID
	}

	if price, ok := numericField(doc, nonPriceChars, "price", "Price", "cost"); ok {
		if price < 0 {
			price = 0
		}
		item.Price = price
	}

	if avail, ok := numericField(doc, nonDigitChars, "available", "stock"); ok && avail >= 0 {
		item.Available = int(avail)
	}

	return item
}

func stringField(doc map[string]any, key string) string {
	if v, ok := doc[key].(string); ok {
		return v
	}
	return ""
}

func firstString(doc map[string]any, keys ...string) string {
	for _, key := range keys {
		if v := stringField(doc, key); v != "" {
			return v
		}
	}
	return ""
}

func numericField(doc map[string]any, strip *regexp.Regexp, keys ...string) (float64, bool) {
	for _, key := range keys {
		v, ok := doc[key]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n, true
		case int:
			return float64(n), true
		case int64:
			return float64(n), true
		case string:
			cleaned := strip.ReplaceAllString(n, "")
			if parsed, err := strconv.ParseFloat(cleaned, 64); err == nil {
				return parsed, true
			}
		default:
			cleaned := strip.ReplaceAllString(fmt.Sprint(v), "")
			if parsed, err := strconv.ParseFloat(cleaned, 64); err == nil {
				return parsed, true
			}
		}
	}
	return 0, false
}
