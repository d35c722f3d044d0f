// Package inr formatea importes en rupias con el sistema de agrupación indio
// (3 dígitos y luego grupos de 2: 12,34,567) y convierte enteros a palabras
// con el vocabulario hundred / thousand / lakh / crore.
package inr

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Format agrupa la parte entera al estilo indio. Con withDecimals=true fija dos
// decimales (redondeo estándar); con false redondea al entero.
// Ej: 1234567 → "12,34,567", 1234567.5 → "12,34,567.50".
func Format(d decimal.Decimal, withDecimals bool) string {
	places := int32(0)
	if withDecimals {
		places = 2
	}
	s := d.StringFixed(places)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	if sign != "" && strings.Trim(intPart+frac, "0.") == "" {
		sign = "" // -0.00 se muestra como 0.00
	}
	return sign + group(intPart) + frac
}

// FormatInt es Format para enteros sin decimales.
func FormatInt(n int64) string {
	return Format(decimal.NewFromInt(n), false)
}

// Rupees antepone "Rs." al importe con dos decimales. Se evita el símbolo ₹
// porque las fuentes base del PDF son latin-1.
func Rupees(d decimal.Decimal) string {
	return "Rs. " + Format(d, true)
}

// group inserta comas en un string de dígitos: último grupo de 3, el resto de 2.
func group(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	head, tail := digits[:n-3], digits[n-3:]
	parts := make([]string, 0, len(head)/2+2)
	if len(head)%2 == 1 {
		parts = append(parts, head[:1])
		head = head[1:]
	}
	for len(head) > 0 {
		parts = append(parts, head[:2])
		head = head[2:]
	}
	parts = append(parts, tail)
	return strings.Join(parts, ",")
}
