package model

// MenuItem is the canonical menu entry. External admin tooling writes
// heterogeneous documents; they are normalized into this shape once, at the
// store boundary, and never re-interpreted downstream.
type MenuItem struct {
	ID        string
	Name      string
	Price     float64
	Available int
}
