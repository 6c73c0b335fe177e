// Package money convierte importes decimales de formulario a centavos enteros y viceversa.
package money

import (
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	// ErrInvalidAmount el texto no es un número decimal.
	ErrInvalidAmount = errors.New("importe inválido")
	// ErrAmountOutOfRange el importe en centavos no cabe en int64.
	ErrAmountOutOfRange = errors.New("importe fuera de rango")
)

var (
	hundred  = decimal.NewFromInt(100)
	maxCents = decimal.NewFromInt(math.MaxInt64)
	minCents = decimal.NewFromInt(math.MinInt64)
	printer  = message.NewPrinter(language.AmericanEnglish)
)

// maxExponent límite del exponente decimal aceptado ("1e-3000000" no es un importe).
const maxExponent = 20

// ParseAmount interpreta el texto del formulario como decimal ("50", "50.5", "1200.00").
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if exp := d.Exponent(); exp < -maxExponent || exp > maxExponent {
		return decimal.Zero, ErrInvalidAmount
	}
	cents := d.Mul(hundred)
	if cents.GreaterThan(maxCents) || cents.LessThan(minCents) {
		return decimal.Zero, ErrAmountOutOfRange
	}
	return d, nil
}

// ToCents devuelve round(d * 100) como entero (redondeo half away from zero).
func ToCents(d decimal.Decimal) int64 {
	return d.Mul(hundred).Round(0).IntPart()
}

// ParseCents combina ParseAmount y ToCents.
func ParseCents(s string) (int64, error) {
	d, err := ParseAmount(s)
	if err != nil {
		return 0, err
	}
	return ToCents(d), nil
}

// FromCents devuelve el importe decimal que representan los centavos.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// InputValue devuelve el valor para un <input type="number" step="0.01">: "50.00".
func InputValue(cents int64) string {
	return FromCents(cents).StringFixed(2)
}

// Format devuelve el importe en dólares para mostrar: "$1,234.50".
func Format(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	f, _ := FromCents(cents).Float64()
	return sign + "$" + printer.Sprintf("%.2f", f)
}
