package underwriting

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// NotAvailable stands in for values that cannot be formatted
const NotAvailable = "N/A"

// Currency formats whole dollars with grouped thousands, e.g. $750,000
func Currency(v float64) string {
	if !finite(v) {
		return NotAvailable
	}
	v = math.Round(v)
	if v < 0 {
		return "-" + printer.Sprintf("$%.0f", -v)
	}
	return printer.Sprintf("$%.0f", math.Abs(v))
}

// Percent formats v with at most two decimals and a trailing %
func Percent(v float64) string {
	return Decimal(v) + "%"
}

// Decimal formats v with at most two decimals and no trailing zeros
func Decimal(v float64) string {
	if !finite(v) {
		return NotAvailable
	}
	// v*100 overflows near MaxFloat64, and there are no cents left to round
	if math.Abs(v) < 1e15 {
		v = math.Round(v*100) / 100
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// OutOf formats a score against its scale, e.g. 7/10
func OutOf(v float64, scale int) string {
	return fmt.Sprintf("%s/%d", Decimal(v), scale)
}
