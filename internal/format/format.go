// Package format renders calculation figures for display: currency with two
// decimals and a trailing label, percentages with one decimal.
package format

import (
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const (
	// DefaultCurrencyLabel is appended to every currency amount.
	DefaultCurrencyLabel = "TL"

	currencyPattern = "#.###,##"
	percentPattern  = "#.###,#"
)

// Formatter turns raw float figures into display strings.
type Formatter struct {
	CurrencyLabel string
}

// New returns a Formatter using label, or DefaultCurrencyLabel when label is blank.
func New(label string) Formatter {
	label = strings.TrimSpace(label)
	if label == "" {
		label = DefaultCurrencyLabel
	}
	return Formatter{CurrencyLabel: label}
}

// Currency formats value like "1.234,50 TL".
func (f Formatter) Currency(value float64) string {
	return humanize.FormatFloat(currencyPattern, Round(value, 2)) + " " + f.CurrencyLabel
}

// Percent formats a percentage like "%14,7". The argument is already scaled
// (14.7 means 14.7%).
func (f Formatter) Percent(value float64) string {
	s := humanize.FormatFloat(percentPattern, Round(value, 1))
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		return "-%" + rest
	}
	return "%" + s
}

// Round rounds value to places decimals, half away from zero. NaN and ±Inf
// are returned unchanged.
func Round(value float64, places int32) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	return decimal.NewFromFloat(value).Round(places).InexactFloat64()
}
