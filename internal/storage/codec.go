package storage

import (
	"encoding/json"
	"fmt"

	"github.com/erazemk/kosarica/internal/model"
)

// storedItem is the persisted wire shape of a line item. Quantity and price
// are decoded through json.Number so older payloads with "integer-ish"
// values (2.0 for a quantity) still load.
type storedItem struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Qty       json.Number `json:"qty"`
	UnitPrice json.Number `json:"unitPrice"`
}

// EncodeItems serializes the item list for storage. A nil list encodes as
// an empty array so the stored value is always a valid payload.
func EncodeItems(items []model.LineItem) (string, error) {
	if items == nil {
		items = []model.LineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encoding cart items: %w", err)
	}
	return string(data), nil
}

// DecodeItems parses a stored item list. ok is false when the payload is
// malformed; callers fall back to an empty cart. Decoded items are coerced
// to safe values, so a corrupt but parseable payload never produces an
// invalid cart.
func DecodeItems(raw string) (items []model.LineItem, ok bool) {
	var stored []storedItem
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, false
	}

	items = make([]model.LineItem, 0, len(stored))
	for _, st := range stored {
		items = append(items, model.LineItem{
			ID:        st.ID,
			Name:      st.Name,
			Quantity:  int(numberOrZero(st.Qty)),
			UnitPrice: numberOrZero(st.UnitPrice),
		})
	}
	return model.SanitizeItems(items), true
}

// numberOrZero converts a decoded JSON number, treating absent or
// unparsable values as zero.
func numberOrZero(n json.Number) float64 {
	if n == "" {
		return 0
	}
	v, err := n.Float64()
	if err != nil {
		return 0
	}
	return model.Finite(v)
}
