package calculator

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultCurrencySymbol is the display symbol for Pakistani rupees.
const DefaultCurrencySymbol = "Rs"

// Formatter renders amounts as currency strings, e.g. "Rs 1,234.50".
type Formatter struct {
	symbol  string
	printer *message.Printer
}

// NewFormatter creates a formatter for the given currency symbol.
// An empty symbol falls back to DefaultCurrencySymbol.
func NewFormatter(symbol string) *Formatter {
	if symbol == "" {
		symbol = DefaultCurrencySymbol
	}
	return &Formatter{
		symbol:  symbol,
		printer: message.NewPrinter(language.English),
	}
}

var defaultFormatter = NewFormatter(DefaultCurrencySymbol)

// FormatCurrency formats amount with the default symbol.
func FormatCurrency(amount float64) string {
	return defaultFormatter.Format(amount)
}

// Format rounds amount to two decimal places, half away from zero, and
// groups thousands. Negative amounts carry a leading minus before the symbol.
func (f *Formatter) Format(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	return sign + f.symbol + " " + f.printer.Sprintf("%.2f", d.InexactFloat64())
}
