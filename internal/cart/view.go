package cart

import "github.com/erazemk/kosarica/internal/model"

// ItemView is one line as the presentation layer renders it.
type ItemView struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Quantity          int     `json:"qty"`
	UnitPrice         float64 `json:"unitPrice"`
	LineAmount        float64 `json:"lineAmount"`
	UnitPriceDisplay  string  `json:"unitPriceDisplay"`
	LineAmountDisplay string  `json:"lineAmountDisplay"`
}

// View is the full read-back state for one session: items in display order,
// derived totals, the current form, and whether a destructive clear-all is
// awaiting confirmation.
type View struct {
	Items           []ItemView      `json:"items"`
	Subtotal        float64         `json:"subtotal"`
	SubtotalDisplay string          `json:"subtotalDisplay"`
	TotalQuantity   int             `json:"totalQuantity"`
	Form            model.FormState `json:"form"`
	ClearPending    bool            `json:"clearPending"`
}

// View snapshots the current state. Totals are recomputed on every call; the
// list is small and a linear scan keeps nothing to invalidate.
func (s *Store) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]ItemView, 0, len(s.items))
	for _, li := range s.items {
		amount := li.LineAmount()
		items = append(items, ItemView{
			ID:                li.ID,
			Name:              li.Name,
			Quantity:          li.Quantity,
			UnitPrice:         li.UnitPrice,
			LineAmount:        amount,
			UnitPriceDisplay:  model.FormatMoney(li.UnitPrice),
			LineAmountDisplay: model.FormatMoney(amount),
		})
	}

	totals := model.CartTotals(s.items)
	return View{
		Items:           items,
		Subtotal:        totals.Subtotal,
		SubtotalDisplay: model.FormatMoney(totals.Subtotal),
		TotalQuantity:   totals.TotalQuantity,
		Form:            s.form,
		ClearPending:    s.clearPending,
	}
}
