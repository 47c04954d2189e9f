// Package money formats dollar figures for labels, warnings and reports.
package money

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// USD formats an amount as whole dollars with grouping, e.g. $1,250,000
func USD(amount float64) string {
	rounded := math.Round(amount)
	if rounded < 0 {
		return "-" + printer.Sprintf("$%d", int64(-rounded))
	}
	return printer.Sprintf("$%d", int64(rounded))
}

// Number formats a plain quantity with grouping. Whole numbers drop the fraction.
func Number(v float64) string {
	if v == math.Trunc(v) {
		return printer.Sprintf("%d", int64(v))
	}
	return printer.Sprintf("%.1f", v)
}
