package model

// CartLine is a menu item selected by the student, with quantity.
// Carts are request-scoped and never persisted.
type CartLine struct {
	ItemID string
	Name   string
	Price  float64
	Qty    int
}

// CartTotal computes the running total of a cart.
func CartTotal(lines []CartLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.Price * float64(l.Qty)
	}
	return total
}

// ValidCart reports whether a cart can be checked out: at least one line,
// every quantity at least 1 and no negative price.
func ValidCart(lines []CartLine) bool {
	if len(lines) == 0 {
		return false
	}
	for _, l := range lines {
		if l.Qty < 1 || l.Price < 0 {
			return false
		}
	}
	return true
}

// RemoveLine returns the cart without the line at index i and the new total.
// The total never goes below zero.
func RemoveLine(lines []CartLine, i int) ([]CartLine, float64) {
	if i < 0 || i >= len(lines) {
		return lines, CartTotal(lines)
	}
	out := make([]CartLine, 0, len(lines)-1)
	out = append(out, lines[:i]...)
	out = append(out, lines[i+1:]...)
	total := CartTotal(out)
	if total < 0 {
		total = 0
	}
	return out, total
}
