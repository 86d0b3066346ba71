package analytics

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Display formatting is fixed US-style; there is no locale negotiation.
var printer = message.NewPrinter(language.AmericanEnglish)

func formatCurrency(v decimal.Decimal) string {
	f, _ := v.Float64()
	return printer.Sprintf("$%.2f", f)
}

func formatInteger(n int64) string {
	return printer.Sprintf("%d", n)
}

func formatPercent(v decimal.Decimal) string {
	f, _ := v.Float64()
	return printer.Sprintf("%.2f%%", f)
}
