package inr_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Joyeria-api/pkg/inr"
)

func TestFormat_AgrupacionIndia(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		decimals bool
		want     string
	}{
		{"tres dígitos sin agrupar", "500", false, "500"},
		{"mil", "1000", false, "1,000"},
		{"un lakh", "100000", false, "1,00,000"},
		{"millón y cuarto", "1234567", false, "12,34,567"},
		{"un crore", "10000000", false, "1,00,00,000"},
		{"con decimales", "1234567.5", true, "12,34,567.50"},
		{"redondeo a dos decimales", "67979.996", true, "67,980.00"},
		{"sin decimales redondea", "66000.6", false, "66,001"},
		{"negativo", "-123456.25", true, "-1,23,456.25"},
		{"cero negativo", "-0.001", true, "0.00"},
		{"cero", "0", false, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := inr.Format(decimal.RequireFromString(tt.in), tt.decimals)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatInt(t *testing.T) {
	assert.Equal(t, "12,34,567", inr.FormatInt(1234567))
	assert.Equal(t, "500", inr.FormatInt(500))
}

func TestRupees(t *testing.T) {
	assert.Equal(t, "Rs. 67,980.00", inr.Rupees(decimal.NewFromInt(67980)))
}

func TestWords(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "Zero"},
		{7, "Seven"},
		{19, "Nineteen"},
		{20, "Twenty"},
		{45, "Forty Five"},
		{100, "One Hundred"},
		{101, "One Hundred One"},
		{999, "Nine Hundred Ninety Nine"},
		{1000, "One Thousand"},
		{67980, "Sixty Seven Thousand Nine Hundred Eighty"},
		{100000, "One Lakh"},
		{250000, "Two Lakh Fifty Thousand"},
		{10000000, "One Crore"},
		{12345678, "One Crore Twenty Three Lakh Forty Five Thousand Six Hundred Seventy Eight"},
		{1000000000, "One Hundred Crore"},
		{-42, "Minus Forty Two"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, inr.Words(tt.n), "Words(%d)", tt.n)
	}
}

func TestAmountInWords(t *testing.T) {
	assert.Equal(t, "Sixty Seven Thousand Nine Hundred Eighty",
		inr.AmountInWords(decimal.NewFromInt(67980)))
	assert.Equal(t, "One Thousand and 50/100",
		inr.AmountInWords(decimal.RequireFromString("1000.50")))
	assert.Equal(t, "Zero and 5/100",
		inr.AmountInWords(decimal.RequireFromString("0.05")))
	assert.Equal(t, "Zero", inr.AmountInWords(decimal.Zero))
}
