package model

import (
	"math"
	"strings"

	"github.com/google/uuid"
)

// LineItem is one entry in the cart. The ID is assigned at creation and
// immutable afterwards; the JSON field names are the persisted format.
type LineItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"qty"`
	UnitPrice float64 `json:"unitPrice"`
}

// LineAmount is the derived per-line total. Derived on every read, never stored.
func (li LineItem) LineAmount() float64 {
	return Finite(float64(li.Quantity) * Finite(li.UnitPrice))
}

// Totals are the cart-level sums derived from the item list.
type Totals struct {
	Subtotal      float64
	TotalQuantity int
}

// CartTotals recomputes the subtotal and total quantity with a full scan.
// Non-finite unit prices count as zero so a bad value never poisons the sums.
func CartTotals(items []LineItem) Totals {
	var t Totals
	for _, li := range items {
		t.Subtotal += li.LineAmount()
		t.TotalQuantity += li.Quantity
	}
	t.Subtotal = Finite(t.Subtotal)
	return t
}

// Finite coerces NaN and ±Inf to zero.
func Finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// SanitizeItems coerces items loaded from storage to safe values: names are
// trimmed, quantities below 1 become 1, negative or non-finite prices become
// 0, and missing or duplicate ids get fresh ones. The input slice is
// modified in place and returned.
func SanitizeItems(items []LineItem) []LineItem {
	seen := make(map[string]bool, len(items))
	for i := range items {
		it := &items[i]
		it.Name = strings.TrimSpace(it.Name)
		if it.Quantity < 1 {
			it.Quantity = 1
		}
		it.UnitPrice = Finite(it.UnitPrice)
		if it.UnitPrice < 0 {
			it.UnitPrice = 0
		}
		if it.ID == "" || seen[it.ID] {
			it.ID = uuid.NewString()
		}
		seen[it.ID] = true
	}
	return items
}
