package validation

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// currencyPrefix follows the pt-BR currency pattern, which separates the
// symbol with a no-break space.
const currencyPrefix = "R$\u00a0"

// maxMoneyDigits keeps the cents below 2^53 so the float64 amount is exact.
// Extra digits are dropped the way the input mask stops accepting keys.
const maxMoneyDigits = 15

// FormatMoney reads the digits of value as cents and renders them as BRL,
// e.g. "123456" becomes "R$ 1.234,56".
func FormatMoney(value string) string {
	cents, ok := parseCents(value)
	if !ok {
		return ""
	}
	p := message.NewPrinter(language.BrazilianPortuguese)
	return currencyPrefix + p.Sprint(number.Decimal(float64(cents)/100, number.Scale(2)))
}

func UnformatMoney(value string) float64 {
	cents, ok := parseCents(value)
	if !ok {
		return 0
	}
	return float64(cents) / 100
}

func parseCents(value string) (int64, bool) {
	digits := RemoveNonNumeric(value)
	if digits == "" {
		return 0, false
	}
	digits = strings.TrimLeft(digits, "0")
	if len(digits) > maxMoneyDigits {
		digits = digits[:maxMoneyDigits]
	}
	if digits == "" {
		return 0, true
	}
	cents, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return cents, true
}
