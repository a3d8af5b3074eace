package model

// FormState is the transient add/edit form for one session. It is never
// persisted; only the item list survives a restart.
type FormState struct {
	Name          string   `json:"name"`
	QuantityInput string   `json:"qty"`
	PriceInput    string   `json:"amount"`
	EditingID     string   `json:"editingId,omitempty"`
	Errors        []string `json:"errors,omitempty"`
}

// Editing reports whether the form is editing an existing item
// (as opposed to adding a new one).
func (f FormState) Editing() bool {
	return f.EditingID != ""
}

// Reset returns the form to empty add mode.
func (f *FormState) Reset() {
	*f = FormState{}
}
