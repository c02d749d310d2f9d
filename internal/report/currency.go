package report

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// AmountFormatter renders amounts as display strings with thousands
// separators, e.g. "250,000 SSP".
type AmountFormatter struct {
	printer  *message.Printer
	currency string
}

// NewAmountFormatter builds a formatter for the given currency code.
func NewAmountFormatter(currency string) *AmountFormatter {
	return &AmountFormatter{
		printer:  message.NewPrinter(language.English),
		currency: currency,
	}
}

// Format renders the amount rounded to whole units. A nil formatter
// falls back to a plain representation.
func (f *AmountFormatter) Format(amount float64) string {
	if f == nil {
		return fmt.Sprintf("%.0f", math.Round(amount))
	}
	return f.printer.Sprintf("%v %s", number.Decimal(math.Round(amount), number.MaxFractionDigits(0)), f.currency)
}
