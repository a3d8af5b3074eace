package model

import (
	"math"
	"strconv"
	"strings"
)

// Validation messages, in rule order.
const (
	MsgNameRequired   = "Item name is required."
	MsgQtyRequired    = "Qty is required."
	MsgAmountRequired = "Amount is required."
	MsgQtyTooSmall    = "Qty must be ≥ 1."
	MsgAmountNegative = "Amount must be ≥ 0."
)

// ValidateInput checks raw form input and returns every violated rule, in
// rule order. The rules are independent: nothing short-circuits. The bound
// checks only apply to fields that are present; an empty field reports only
// its "required" message. An empty result means the input can be committed.
func ValidateInput(name, qtyInput, priceInput string) []string {
	name = strings.TrimSpace(name)
	qtyInput = strings.TrimSpace(qtyInput)
	priceInput = strings.TrimSpace(priceInput)

	var errs []string
	if name == "" {
		errs = append(errs, MsgNameRequired)
	}
	if qtyInput == "" {
		errs = append(errs, MsgQtyRequired)
	}
	if priceInput == "" {
		errs = append(errs, MsgAmountRequired)
	}
	if qtyInput != "" && ParseQuantity(qtyInput) <= 0 {
		errs = append(errs, MsgQtyTooSmall)
	}
	if priceInput != "" && ParsePrice(priceInput) < 0 {
		errs = append(errs, MsgAmountNegative)
	}
	return errs
}

// ParseQuantity parses a raw quantity string. Anything that is not an ASCII
// digit is stripped first, so "2 pcs" parses as 2; an unparsable result is 0.
func ParseQuantity(s string) int {
	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return n
}

// ParsePrice parses a raw price string, accepting either "." or "," as the
// decimal separator. Unparsable and non-finite input coerces to 0. Negative
// values are preserved so validation can reject them; callers that commit
// must clamp to 0 themselves.
func ParsePrice(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// CurrencySuffix is the display unit for all monetary values.
const CurrencySuffix = " k VND"

// FormatMoney renders a monetary value with exactly one fractional digit and
// the currency suffix: FormatMoney(10) == "10.0 k VND".
func FormatMoney(v float64) string {
	return strconv.FormatFloat(Finite(v), 'f', 1, 64) + CurrencySuffix
}
