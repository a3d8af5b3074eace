// Package cart implements the cart store: one per session, holding the
// persisted line items plus the transient add/edit form state and the
// pending clear-all confirmation. The presentation layer calls intents and
// re-reads View after each one.
package cart

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/erazemk/kosarica/internal/model"
	"github.com/erazemk/kosarica/internal/storage"
)

// Store holds one session's cart. The in-memory state is authoritative for
// the session; storage writes are best effort and a failed write never rolls
// back a mutation.
//
// A Store is safe for concurrent use, since HTTP handlers can race on the
// same session.
type Store struct {
	mu  sync.Mutex
	kv  storage.KV
	key string

	items        []model.LineItem
	form         model.FormState
	clearPending bool
}

// NewStore creates an empty store bound to a storage key. Call Load to
// hydrate it.
func NewStore(kv storage.KV, key string) *Store {
	return &Store{kv: kv, key: key}
}

// Load hydrates the item list from storage. An absent, unreadable, or
// malformed value degrades to an empty cart; Load never fails.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		slog.Warn("cart load failed, starting empty", "key", s.key, "error", err)
		return
	}
	if !ok {
		return
	}
	items, ok := storage.DecodeItems(raw)
	if !ok {
		slog.Warn("stored cart is malformed, starting empty", "key", s.key)
		return
	}
	s.items = items
}

// persist writes the item list back, best effort. Only items are persisted,
// never the form state. Callers must hold s.mu.
func (s *Store) persist(ctx context.Context) {
	raw, err := storage.EncodeItems(s.items)
	if err != nil {
		slog.Warn("cart encode failed, keeping in-memory state", "key", s.key, "error", err)
		return
	}
	if err := s.kv.Set(ctx, s.key, raw); err != nil {
		slog.Warn("cart save failed, keeping in-memory state", "key", s.key, "error", err)
	}
}

// SetFields overwrites the raw form buffers (the field-text-change intent).
// Previous validation errors are kept until the next commit attempt.
func (s *Store) SetFields(name, qtyInput, priceInput string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form.Name = name
	s.form.QuantityInput = qtyInput
	s.form.PriceInput = priceInput
}

// BeginEdit switches the form to edit mode for an existing item, filling the
// buffers from its current values. An unknown id is a no-op.
func (s *Store) BeginEdit(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, li := range s.items {
		if li.ID == id {
			s.form = model.FormState{
				Name:          li.Name,
				QuantityInput: strconv.Itoa(li.Quantity),
				PriceInput:    strconv.FormatFloat(li.UnitPrice, 'f', -1, 64),
				EditingID:     id,
			}
			return
		}
	}
}

// CancelEdit returns the form to empty add mode without touching the items.
func (s *Store) CancelEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form.Reset()
}

// Commit validates the form and, if it passes, turns it into either a new
// line item (add mode) or an in-place update of the item being edited,
// preserving its id and position. On validation errors nothing is mutated
// and the errors are returned in rule order. A successful commit resets the
// form to add mode and persists the cart.
func (s *Store) Commit(ctx context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	errs := model.ValidateInput(s.form.Name, s.form.QuantityInput, s.form.PriceInput)
	if len(errs) > 0 {
		s.form.Errors = errs
		return errs
	}

	name := strings.TrimSpace(s.form.Name)
	qty := model.ParseQuantity(s.form.QuantityInput)
	price := model.ParsePrice(s.form.PriceInput)
	if price < 0 {
		price = 0
	}

	idx := -1
	if s.form.EditingID != "" {
		idx = s.indexOf(s.form.EditingID)
	}
	if idx >= 0 {
		it := &s.items[idx]
		it.Name, it.Quantity, it.UnitPrice = name, qty, price
	} else {
		// Edit target gone (or add mode): append to the bottom.
		s.items = append(s.items, model.LineItem{
			ID:        uuid.NewString(),
			Name:      name,
			Quantity:  qty,
			UnitPrice: price,
		})
	}

	s.form.Reset()
	s.persist(ctx)
	return nil
}

// Remove deletes the item with the given id, if present. Removing the item
// currently being edited cancels the edit.
func (s *Store) Remove(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	if s.form.EditingID == id {
		s.form.Reset()
	}
	s.persist(ctx)
}

// RequestClear marks a clear-all as pending. Items are untouched until the
// confirmation arrives.
func (s *Store) RequestClear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearPending = true
}

// ConfirmClear empties the cart and resets the form. It does nothing unless
// a clear was requested first: the destructive path always goes through the
// confirmation gate.
func (s *Store) ConfirmClear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.clearPending {
		return
	}
	s.clearPending = false
	s.items = nil
	s.form.Reset()
	s.persist(ctx)
}

// CancelClear dismisses a pending clear-all without touching the items.
func (s *Store) CancelClear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearPending = false
}

// Items returns a copy of the current item list in display order.
func (s *Store) Items() []model.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// indexOf returns the position of an item by id, or -1. Callers must hold s.mu.
func (s *Store) indexOf(id string) int {
	for i, li := range s.items {
		if li.ID == id {
			return i
		}
	}
	return -1
}
