// Package currency renders monetary amounts for display. Amounts are grouped
// with French thousands separators and carry a fixed FCFA suffix; this is
// presentation only and never feeds back into payloads.
package currency

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.French)

// Format renders an amount as a grouped number with the FCFA suffix,
// keeping at most two fraction digits.
func Format(amount decimal.Decimal) string {
	f, _ := amount.Float64()
	return printer.Sprintf("%v FCFA", number.Decimal(f, number.MaxFractionDigits(2)))
}
