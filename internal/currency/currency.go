// Package currency renders decimal amounts for display.
package currency

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Default is used when no currency code is configured.
const Default = "INR"

// Valid reports whether code is a known ISO 4217 currency.
func Valid(code string) bool {
	return money.GetCurrency(strings.ToUpper(code)) != nil
}

// Format rounds amount to the currency's minor unit and renders it with the
// currency's grapheme and separators, e.g. ₹1,161,695.39.
func Format(amount decimal.Decimal, code string) string {
	code = strings.ToUpper(code)
	if !Valid(code) {
		code = Default
	}
	// money.New never returns a nil currency, unlike GetCurrency.
	cur := *money.New(0, code).Currency()
	minor := amount.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}

// Formatter binds Format to one currency code.
type Formatter struct {
	code string
}

// NewFormatter returns a Formatter for code, falling back to Default.
func NewFormatter(code string) Formatter {
	if !Valid(code) {
		code = Default
	}
	return Formatter{code: strings.ToUpper(code)}
}

// Code returns the bound currency code.
func (f Formatter) Code() string { return f.code }

// Format renders amount in the bound currency.
func (f Formatter) Format(amount decimal.Decimal) string {
	return Format(amount, f.code)
}
