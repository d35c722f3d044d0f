package inr

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ones = [...]string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = [...]string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// magnitudes en orden descendente; la recursión parte de la mayor aplicable.
var magnitudes = []struct {
	value int64
	name  string
}{
	{10_000_000, "Crore"},
	{100_000, "Lakh"},
	{1_000, "Thousand"},
	{100, "Hundred"},
}

// Words convierte un entero a palabras con vocabulario indio.
// Ej: 0 → "Zero", 1000 → "One Thousand", 100000 → "One Lakh",
// 12345678 → "One Crore Twenty Three Lakh Forty Five Thousand Six Hundred Seventy Eight".
func Words(n int64) string {
	if n == 0 {
		return "Zero"
	}
	if n < 0 {
		return "Minus " + strings.Join(words(uint64(-(n+1))+1), " ")
	}
	return strings.Join(words(uint64(n)), " ")
}

func words(n uint64) []string {
	if n == 0 {
		return nil
	}
	for _, m := range magnitudes {
		mv := uint64(m.value)
		if n >= mv {
			out := append(words(n/mv), m.name)
			return append(out, words(n%mv)...)
		}
	}
	if n < 20 {
		return []string{ones[n]}
	}
	out := []string{tens[n/10]}
	if n%10 != 0 {
		out = append(out, ones[n%10])
	}
	return out
}

// AmountInWords convierte un importe: parte entera en palabras y, si los paise
// no son cero, " and N/100".
// Ej: 67980.50 → "Sixty Seven Thousand Nine Hundred Eighty and 50/100".
func AmountInWords(d decimal.Decimal) string {
	d = d.Round(2)
	neg := d.IsNegative()
	if neg {
		d = d.Neg()
	}
	whole := d.Truncate(0)
	paise := d.Sub(whole).Shift(2).IntPart()

	s := Words(whole.IntPart())
	if neg && !d.IsZero() {
		s = "Minus " + s
	}
	if paise != 0 {
		s += fmt.Sprintf(" and %d/100", paise)
	}
	return s
}
