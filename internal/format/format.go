// Package format renders money, percentages and month labels for the pt-BR portal.
package format

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Locale is the language used by every formatter in the portal.
var Locale = language.BrazilianPortuguese

const currencySymbol = "R$"

var printer = message.NewPrinter(Locale)

var monthAbbr = [...]string{"jan.", "fev.", "mar.", "abr.", "mai.", "jun.", "jul.", "ago.", "set.", "out.", "nov.", "dez."}

// Currency formats a BRL amount, e.g. "R$ 1.234,56".
func Currency(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	sign := ""
	if v < 0 && Decimal(-v, 2) != "0,00" {
		sign = "-"
	}
	return sign + currencySymbol + " " + Decimal(math.Abs(v), 2)
}

// Decimal formats v with exactly digits fraction digits using locale separators.
func Decimal(v float64, digits int) string {
	if digits < 0 {
		digits = 0
	}
	return printer.Sprint(number.Decimal(v, number.MinFractionDigits(digits), number.MaxFractionDigits(digits)))
}

// Percent formats v as a percentage with the given fraction digits, e.g. "12,5%".
func Percent(v float64, digits int) string {
	return Decimal(v, digits) + "%"
}

// CompactPercent formats v with a single fraction digit.
func CompactPercent(v float64) string {
	return Percent(v, 1)
}

// SignedPercent always carries the sign, used for period-over-period deltas.
func SignedPercent(v float64) string {
	if v > 0 && Decimal(v, 1) != "0,0" {
		return "+" + Percent(v, 1)
	}
	return Percent(v, 1)
}

// MonthLabel turns "2024-03" (or a full ISO date) into "mar. de 24".
// Unparsable input is returned unchanged.
func MonthLabel(month string) string {
	parts := strings.Split(strings.TrimSpace(month), "-")
	if len(parts) < 2 || len(parts[0]) != 4 {
		return month
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return month
	}
	idx, err := strconv.Atoi(parts[1])
	if err != nil || idx < 1 || idx > 12 {
		return month
	}
	return monthAbbr[idx-1] + " de " + strconv.Itoa(year%100+100)[1:]
}
