package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency assumed when none is given. SEPA schemes
// settle exclusively in euro.
const DefaultCurrency = "EUR"

// amountScale is the number of fraction digits in an ISO 20022 ActiveOrHistoricCurrencyAndAmount
// for euro.
const amountScale = 2

// NormalizeCurrency trims and uppercases a currency code. It does not check
// the code against ISO 4217.
func NormalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// FormatAmount renders amount with exactly two fraction digits, rounding
// half away from zero, for example 12.5 -> "12.50".
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(amountScale)
}

// ParseAmount parses a decimal amount string such as "12.5" or "1000".
func ParseAmount(amount string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	return d, nil
}

// SumAmounts adds formatted amounts, as needed for a control sum.
func SumAmounts(amounts []string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, a := range amounts {
		d, err := ParseAmount(a)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(d)
	}
	return total, nil
}
