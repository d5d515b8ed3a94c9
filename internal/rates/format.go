package rates

import (
	"fmt"
	"strconv"
	"strings"
)

// zeroDecimalCurrencies have no minor unit; fixed fees for them are
// already whole currency amounts and must never display decimals
var zeroDecimalCurrencies = map[string]bool{
	"JPY": true,
	"KRW": true,
	"VND": true,
	"CLP": true,
}

// currencySymbols maps ISO currency codes to their display symbol.
// Unknown currencies fall back to the code itself.
var currencySymbols = map[string]string{
	"USD": "$",
	"CAD": "C$",
	"GBP": "£",
	"EUR": "€",
	"AUD": "A$",
	"NZD": "NZ$",
	"JPY": "¥",
	"SGD": "S$",
}

// IsZeroDecimal returns true for currencies without a minor unit
func IsZeroDecimal(currency string) bool {
	return zeroDecimalCurrencies[currency]
}

// FormatRate renders a rate as a human-readable string, e.g.
// "2.7% + $0.10" or "3.6%" when there is no fixed fee. When a tier is
// supplied the platform markup is composed in before formatting.
func FormatRate(rate Rate, currency string, tier ...Tier) string {
	if len(tier) > 0 {
		rate = EffectiveRate(rate, tier[0], currency)
	}

	percent := formatPercent(rate.Percent)
	if rate.Fixed == 0 {
		return percent
	}

	return fmt.Sprintf("%s + %s", percent, FormatAmount(rate.Fixed, currency))
}

// FormatAmount renders an amount of minor currency units with the
// currency's symbol, branching on zero-decimal currencies
func FormatAmount(minor int, currency string) string {
	symbol, ok := currencySymbols[currency]
	if !ok {
		symbol = currency + " "
	}

	if IsZeroDecimal(currency) {
		return fmt.Sprintf("%s%d", symbol, minor)
	}

	return fmt.Sprintf("%s%.2f", symbol, float64(minor)/100)
}

// formatPercent renders a percentage without trailing zeros
func formatPercent(percent float64) string {
	s := strconv.FormatFloat(percent, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s + "%"
}
