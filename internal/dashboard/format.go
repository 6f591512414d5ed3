package dashboard

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var displayPrinter = message.NewPrinter(language.AmericanEnglish)

func formatCurrency(v float64) string {
	if v < 0 {
		return displayPrinter.Sprintf("-$%.2f", -v)
	}
	return displayPrinter.Sprintf("$%.2f", v)
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}
