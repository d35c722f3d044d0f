package invoice

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
)

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// ComputeTotals agrega los importes de cabecera:
//
//	taxable = max(0, subtotal − descuento − cambio)
//	gst     = taxable × tasa / 100
//	bruto   = taxable + gst
//	ajuste  = round(bruto) − bruto
//	neto    = bruto + ajuste
//
// El GST se calcula una sola vez a nivel de factura. |ajuste| < 1.
func ComputeTotals(subtotal, discount, exchange, taxRate decimal.Decimal) entity.Totals {
	taxable := subtotal.Sub(discount).Sub(exchange)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}
	tax := taxable.Mul(taxRate).Div(hundred)
	gross := taxable.Add(tax)
	net := gross.Round(0)

	return entity.Totals{
		Subtotal:      subtotal,
		ExchangeValue: exchange,
		Discount:      discount,
		TaxableAmount: taxable,
		TaxRate:       taxRate,
		TaxAmount:     tax,
		GrossTotal:    gross,
		RoundOff:      net.Sub(gross),
		NetAmount:     net,
	}
}

// Allocate reparte total en proporción a weights, redondeando cada parte a paise.
// La diferencia de redondeo va a la línea de mayor peso, de modo que las partes
// suman exactamente total redondeado a paise. Sin pesos positivos todo es cero.
func Allocate(weights []decimal.Decimal, total decimal.Decimal) []decimal.Decimal {
	shares := make([]decimal.Decimal, len(weights))
	for i := range shares {
		shares[i] = decimal.Zero
	}

	sum := decimal.Zero
	largest := -1
	for i, w := range weights {
		sum = sum.Add(w)
		if largest < 0 || w.GreaterThan(weights[largest]) {
			largest = i
		}
	}
	if !sum.IsPositive() {
		return shares
	}

	allocated := decimal.Zero
	for i, w := range weights {
		shares[i] = w.Mul(total).Div(sum).Round(2)
		allocated = allocated.Add(shares[i])
	}
	if rest := total.Round(2).Sub(allocated); !rest.IsZero() {
		shares[largest] = shares[largest].Add(rest)
	}
	return shares
}

// SplitGST reparte el impuesto según el lugar de suministro. Mismo estado (o
// comprador sin código de estado): CGST + SGST a partes iguales; si no, IGST.
// Las mitades van a paise y SGST absorbe el paisa impar.
func SplitGST(sellerState, buyerState string, rate, tax decimal.Decimal) entity.TaxSplit {
	if buyerState == "" || buyerState == sellerState {
		cgst := tax.Div(two).Round(2)
		half := rate.Div(two)
		return entity.TaxSplit{
			Mode:     entity.GSTIntraState,
			CGSTRate: half,
			CGST:     cgst,
			SGSTRate: half,
			SGST:     tax.Round(2).Sub(cgst),
		}
	}
	return entity.TaxSplit{
		Mode:     entity.GSTInterState,
		IGSTRate: rate,
		IGST:     tax,
	}
}
