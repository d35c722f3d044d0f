package invoice_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Joyeria-api/internal/domain"
	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
	"github.com/jhoicas/Joyeria-api/internal/domain/invoice"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDec(t *testing.T, want string, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "%s: esperado %s, obtenido %s", msg, want, got.String())
}

func newBuilder() *invoice.Builder {
	return invoice.NewBuilder(
		entity.BankInfo{AccountName: "Shree Jewellers", BankName: "HDFC Bank", AccountNumber: "50100012345678", IFSC: "HDFC0000123"},
		entity.Regulatory{GSTIN: "27ABCDE1234F1Z5", BISLicence: "HM/C-1234567"},
		invoice.WithClock(func() time.Time { return fixedNow }),
	)
}

// Una pieza de 10 g a 6000/g con 10 % de hechura y GST del 3 %.
func sampleDraft() *entity.Draft {
	return &entity.Draft{
		Number: "MEMO-0042",
		Date:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Seller: entity.Party{Name: "Shree Jewellers", City: "Mumbai", StateCode: "27"},
		Buyer:  entity.Party{Name: "Anita Sharma", City: "Pune", StateCode: "27"},
		Items: []entity.ItemDraft{{
			VariantNo:           "NK-22-001",
			Description:         "Necklace",
			Metal:               "gold",
			Purity:              "22K",
			Quantity:            1,
			GrossWeight:         dec("10"),
			RatePerGram:         dec("6000"),
			MakingChargePercent: dec("10"),
		}},
		TaxRate: dec("3"),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Totales
// ──────────────────────────────────────────────────────────────────────────────

func TestBuild_ExtremoAExtremo(t *testing.T) {
	d := sampleDraft()
	d.Payment = &entity.PaymentSplit{Cash: dec("50000"), Online: dec("17980")}

	inv, err := newBuilder().Build(d)
	require.NoError(t, err)

	require.Len(t, inv.Items, 1)
	assertDec(t, "66000", inv.Items[0].UnitPrice, "precio unitario")
	assert.Equal(t, "22K", inv.Items[0].PurityLabel)

	assertDec(t, "66000", inv.Totals.Subtotal, "subtotal")
	assertDec(t, "66000", inv.Totals.TaxableAmount, "base gravable")
	assertDec(t, "1980", inv.Totals.TaxAmount, "GST")
	assertDec(t, "67980", inv.Totals.GrossTotal, "bruto")
	assertDec(t, "0", inv.Totals.RoundOff, "ajuste")
	assertDec(t, "67980", inv.Totals.NetAmount, "neto")
	assertDec(t, "1980", inv.Items[0].TaxAmount, "GST asignado")

	require.NotNil(t, inv.Payment)
	assertDec(t, "0", inv.Payment.Due, "saldo")
	assert.False(t, inv.Payment.Overpaid)

	assert.Equal(t, entity.GSTIntraState, inv.Tax.Mode)
	assertDec(t, "990", inv.Tax.CGST, "CGST")
	assertDec(t, "990", inv.Tax.SGST, "SGST")
	assertDec(t, "1.5", inv.Tax.CGSTRate, "tasa CGST")

	assert.Equal(t, "HDFC0000123", inv.Bank.IFSC)
	assert.Equal(t, "27", inv.Regulatory.StateCode, "el código de estado sale del vendedor")
	assert.Equal(t, fixedNow, inv.GeneratedAt)
}

func TestBuild_BaseGravableNuncaNegativa(t *testing.T) {
	d := sampleDraft()
	d.Discount = dec("50000")
	d.Exchange = &entity.ExchangeGoldInfo{Weight: dec("5"), Rate: dec("5500")}

	inv, err := newBuilder().Build(d)
	require.NoError(t, err)

	assertDec(t, "27500", inv.Totals.ExchangeValue, "cambio = 5 × 5500")
	assertDec(t, "0", inv.Totals.TaxableAmount, "base gravable")
	assertDec(t, "0", inv.Totals.TaxAmount, "GST")
	assertDec(t, "0", inv.Totals.NetAmount, "neto")
	assertDec(t, "0", inv.Items[0].TaxAmount, "GST asignado")
}

func TestBuild_CambioSeRestaAntesDelImpuesto(t *testing.T) {
	d := sampleDraft()
	d.Exchange = &entity.ExchangeGoldInfo{Weight: dec("2"), Rate: dec("5500"), Value: dec("10000")}

	inv, err := newBuilder().Build(d)
	require.NoError(t, err)

	assertDec(t, "10000", inv.Totals.ExchangeValue, "el valor explícito gana")
	assertDec(t, "56000", inv.Totals.TaxableAmount, "base gravable")
	assertDec(t, "1680", inv.Totals.TaxAmount, "GST")
	assertDec(t, "57680", inv.Totals.NetAmount, "neto")
}

func TestComputeTotals_IdentidadDelNeto(t *testing.T) {
	cases := []struct{ subtotal, discount, exchange, rate string }{
		{"12345.67", "0", "0", "3"},
		{"99999.99", "123.45", "0", "3"},
		{"1000.50", "0", "0", "3"},
		{"75432.10", "500", "12000", "3"},
		{"0.49", "0", "0", "0"},
		{"250000", "0", "0", "18"},
	}
	for _, tc := range cases {
		tot := invoice.ComputeTotals(dec(tc.subtotal), dec(tc.discount), dec(tc.exchange), dec(tc.rate))
		sum := tot.TaxableAmount.Add(tot.TaxAmount).Add(tot.RoundOff)
		assert.True(t, tot.NetAmount.Equal(sum), "neto = gravable + GST + ajuste para %s", tc.subtotal)
		assert.True(t, tot.RoundOff.Abs().LessThan(decimal.NewFromInt(1)), "|ajuste| < 1 para %s", tc.subtotal)
		assert.True(t, tot.NetAmount.Equal(tot.NetAmount.Round(0)), "neto entero para %s", tc.subtotal)
	}
}

func TestComputeTotals_AjusteConSigno(t *testing.T) {
	tot := invoice.ComputeTotals(dec("12345.67"), decimal.Zero, decimal.Zero, dec("3"))
	assertDec(t, "370.3701", tot.TaxAmount, "GST")
	assertDec(t, "12716.0401", tot.GrossTotal, "bruto")
	assertDec(t, "-0.0401", tot.RoundOff, "ajuste")
	assertDec(t, "12716", tot.NetAmount, "neto")

	tot = invoice.ComputeTotals(dec("1000.50"), decimal.Zero, decimal.Zero, decimal.Zero)
	assertDec(t, "0.5", tot.RoundOff, "medio se redondea hacia arriba")
	assertDec(t, "1001", tot.NetAmount, "neto")
}

// ──────────────────────────────────────────────────────────────────────────────
// Reparto del GST
// ──────────────────────────────────────────────────────────────────────────────

func TestAllocate_SumaExacta(t *testing.T) {
	weights := []decimal.Decimal{dec("33333.33"), dec("33333.33"), dec("33333.34"), dec("0.01")}
	total := dec("3000.0003")

	shares := invoice.Allocate(weights, total)
	require.Len(t, shares, 4)

	sum := decimal.Zero
	for _, s := range shares {
		assert.True(t, s.Equal(s.Round(2)), "cada parte en paise")
		sum = sum.Add(s)
	}
	assert.True(t, sum.Equal(total.Round(2)), "suma %s ≠ %s", sum, total.Round(2))
}

func TestAllocate_SinSubtotal(t *testing.T) {
	shares := invoice.Allocate([]decimal.Decimal{decimal.Zero, decimal.Zero}, dec("100"))
	for _, s := range shares {
		assert.True(t, s.IsZero())
	}
	assert.Empty(t, invoice.Allocate(nil, dec("100")))
}

func TestBuild_AsignacionProporcional(t *testing.T) {
	d := sampleDraft()
	d.Items = append(d.Items, entity.ItemDraft{
		VariantNo:         "ER-92-014",
		Description:       "Earrings",
		Metal:             "silver",
		Purity:            "925",
		Quantity:          3,
		GrossWeight:       dec("4.333"),
		RatePerGram:       dec("92.5"),
		LabourRatePerGram: dec("17"),
	})

	inv, err := newBuilder().Build(d)
	require.NoError(t, err)

	sum := decimal.Zero
	for _, it := range inv.Items {
		sum = sum.Add(it.TaxAmount)
	}
	assert.True(t, sum.Equal(inv.Totals.TaxAmount.Round(2)), "asignaciones suman el GST")
	assert.Equal(t, "925", inv.Items[1].PurityLabel)
}

func TestSplitGST_MitadesCuadranConElTotalImpreso(t *testing.T) {
	tot := invoice.ComputeTotals(dec("66000.33"), decimal.Zero, decimal.Zero, dec("3"))
	s := invoice.SplitGST("27", "27", dec("3"), tot.TaxAmount)

	assert.Equal(t, entity.GSTIntraState, s.Mode)
	assertDec(t, "990.00", s.CGST, "CGST")
	assertDec(t, "990.01", s.SGST, "SGST")
	assert.True(t, s.CGST.Equal(s.CGST.Round(2)), "CGST en paise")
	assert.True(t, s.SGST.Equal(s.SGST.Round(2)), "SGST en paise")
	assert.True(t, s.CGST.Add(s.SGST).Equal(tot.TaxAmount.Round(2)),
		"CGST + SGST = GST total: %s + %s != %s", s.CGST, s.SGST, tot.TaxAmount.StringFixed(2))
}

func TestSplitGST_Interestatal(t *testing.T) {
	s := invoice.SplitGST("27", "29", dec("3"), dec("1980"))
	assert.Equal(t, entity.GSTInterState, s.Mode)
	assertDec(t, "1980", s.IGST, "IGST")
	assertDec(t, "3", s.IGSTRate, "tasa IGST")
	assert.True(t, s.CGST.IsZero())

	s = invoice.SplitGST("27", "", dec("3"), dec("1980.01"))
	assert.Equal(t, entity.GSTIntraState, s.Mode, "comprador sin estado: intraestatal")
	assert.True(t, s.CGST.Add(s.SGST).Equal(dec("1980.01")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Cobro
// ──────────────────────────────────────────────────────────────────────────────

func TestBuild_SobrepagoSeMarcaNoSeRechaza(t *testing.T) {
	d := sampleDraft()
	d.Payment = &entity.PaymentSplit{Cash: dec("70000")}

	inv, err := newBuilder().Build(d)
	require.NoError(t, err)
	assertDec(t, "-2020", inv.Payment.Due, "saldo")
	assert.True(t, inv.Payment.Overpaid)
	assert.True(t, d.Payment.Due.IsZero(), "el draft no se modifica")
}

// ──────────────────────────────────────────────────────────────────────────────
// Entradas inválidas
// ──────────────────────────────────────────────────────────────────────────────

func TestBuild_EntradaInvalida(t *testing.T) {
	cases := map[string]func(d *entity.Draft){
		"sin número":           func(d *entity.Draft) { d.Number = "" },
		"número en blanco":     func(d *entity.Draft) { d.Number = "   " },
		"comprador sin nombre": func(d *entity.Draft) { d.Buyer.Name = "" },
		"sin ítems":            func(d *entity.Draft) { d.Items = nil },
		"cantidad cero":        func(d *entity.Draft) { d.Items[0].Quantity = 0 },
		"peso negativo":        func(d *entity.Draft) { d.Items[0].GrossWeight = dec("-1") },
		"descuento negativo":   func(d *entity.Draft) { d.Discount = dec("-10") },
		"tarifa negativa":      func(d *entity.Draft) { d.Items[0].RatePerGram = dec("-6000") },
		"modo desconocido":     func(d *entity.Draft) { d.Items[0].MakingMode = "flat" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			d := sampleDraft()
			mutate(d)
			inv, err := newBuilder().Build(d)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Nil(t, inv)
		})
	}

	_, err := newBuilder().Build(nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Inmutabilidad y edición
// ──────────────────────────────────────────────────────────────────────────────

func TestBuild_NoCompartePiezasConElDraft(t *testing.T) {
	d := sampleDraft()
	d.Items[0].Stones = []entity.StoneLine{{Class: entity.StoneKundan, Weight: dec("1"), Rate: dec("1000")}}

	inv, err := newBuilder().Build(d)
	require.NoError(t, err)

	d.Items[0].Stones[0].Rate = dec("999999")
	d.Items[0].GrossWeight = dec("99")

	assertDec(t, "1000", inv.Items[0].Stones[0].Rate, "tarifa de piedra congelada")
	assertDec(t, "10", inv.Items[0].GrossWeight, "peso congelado")
}

func TestEdit_SoloCambiaCabecera(t *testing.T) {
	b := newBuilder()
	d := sampleDraft()
	d.Items = append(d.Items, entity.ItemDraft{
		VariantNo:   "BG-18-007",
		Description: "Bangle",
		Metal:       "gold",
		Purity:      "18K",
		Quantity:    2,
		GrossWeight: dec("15.2"),
		StoneWeight: dec("0.8"),
		RatePerGram: dec("4900"),
		Stones:      []entity.StoneLine{{Class: entity.StoneJarkan, Weight: dec("0.8"), Rate: dec("2200")}},
	})
	d.Payment = &entity.PaymentSplit{Cash: dec("100000")}

	orig, err := b.Build(d)
	require.NoError(t, err)

	buyer := entity.Party{Name: "Anita S. Kulkarni", City: "Bengaluru", StateCode: "29"}
	notes := "Entrega en tienda"
	edited := invoice.Edit(orig, invoice.HeaderEdit{
		Buyer:  &buyer,
		Header: &entity.HeaderOverrides{MemoNumber: "MEMO-0042-R1", City: "Mumbai"},
		Notes:  &notes,
	})

	require.Len(t, edited.Items, len(orig.Items))
	for i := range orig.Items {
		assert.Equal(t, orig.Items[i].VariantNo, edited.Items[i].VariantNo)
		assert.True(t, orig.Items[i].GrossWeight.Equal(edited.Items[i].GrossWeight))
		assert.True(t, orig.Items[i].StoneWeight.Equal(edited.Items[i].StoneWeight))
	}
	assert.Equal(t, "Anita Sharma", orig.Buyer.Name, "la factura original no cambia")

	rebuilt, err := b.Build(edited)
	require.NoError(t, err)
	for i := range orig.Items {
		assert.True(t, orig.Items[i].UnitPrice.Equal(rebuilt.Items[i].UnitPrice), "precio de %s", orig.Items[i].VariantNo)
		assert.True(t, orig.Items[i].CostValue.Equal(rebuilt.Items[i].CostValue))
	}
	assert.True(t, orig.Totals.NetAmount.Equal(rebuilt.Totals.NetAmount))
	assert.Equal(t, "MEMO-0042-R1", rebuilt.MemoNumber())
	assert.Equal(t, entity.GSTInterState, rebuilt.Tax.Mode, "el comprador ahora es de otro estado")
	assert.Equal(t, notes, rebuilt.Notes)
}
