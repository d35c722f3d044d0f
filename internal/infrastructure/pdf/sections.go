package pdf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
	"github.com/jhoicas/Joyeria-api/internal/infrastructure/layout"
	"github.com/jhoicas/Joyeria-api/pkg/inr"
)

// ── Cabecera ──────────────────────────────────────────────────────────────────

// HeaderSection vendedor, registros, título y datos del memo.
type HeaderSection struct{}

func (HeaderSection) Name() string { return "header" }

func (HeaderSection) Render(rc *RenderContext, sink layout.Sink) error {
	inv := rc.Invoice
	if strings.TrimSpace(inv.Seller.Name) == "" {
		return errors.New("el vendedor no tiene nombre")
	}
	memo := inv.MemoNumber()
	if strings.TrimSpace(memo) == "" {
		return errors.New("la factura no tiene número de memo")
	}

	reg := inv.Regulatory
	regLine := joinNonEmpty("   |   ",
		labelled("GSTIN", reg.GSTIN),
		labelled("PAN", reg.PAN),
		labelled("BIS Hallmark Licence", reg.BISLicence),
		labelled("State Code", reg.StateCode),
	)
	contact := joinNonEmpty("   |   ",
		inv.Seller.AddressLine(),
		labelled("Ph", inv.Seller.Phone),
		inv.Seller.Email,
	)

	els := []layout.Element{
		layout.Text{Content: upperCase(inv.Seller.Name), Style: layout.Style{Bold: true, Size: 14, Align: layout.AlignCenter, Tone: layout.ToneAccent}},
	}
	if contact != "" {
		els = append(els, layout.Text{Content: contact, Style: layout.Style{Size: 8, Align: layout.AlignCenter, Tone: layout.ToneMuted}})
	}
	if regLine != "" {
		els = append(els, layout.Text{Content: regLine, Style: layout.Style{Size: 8, Align: layout.AlignCenter}})
	}
	els = append(els,
		layout.Rule{Thickness: 0.5},
		layout.Text{Content: nonEmpty(rc.Title, "TAX INVOICE"), Style: layout.Style{Bold: true, Size: 11, Align: layout.AlignCenter}},
		layout.KeyValue{Label: "Memo No.", Value: memo, Emphasis: true},
		layout.KeyValue{Label: "Date", Value: inv.Date.Format("02-01-2006")},
	)
	if inv.OrderID != "" {
		els = append(els, layout.KeyValue{Label: "Order", Value: inv.OrderID})
	}
	if city := nonEmpty(inv.Header.City, inv.Seller.City); strings.TrimSpace(city) != "" {
		els = append(els, layout.KeyValue{Label: "City", Value: city})
	}
	if inv.Header.DeliveryPlace != "" {
		els = append(els, layout.KeyValue{Label: "Place of Delivery", Value: inv.Header.DeliveryPlace})
	}
	return appendAll(sink, els...)
}

// ── Partes ────────────────────────────────────────────────────────────────────

// PartiesSection datos del comprador.
type PartiesSection struct{}

func (PartiesSection) Name() string { return "parties" }

func (PartiesSection) Render(rc *RenderContext, sink layout.Sink) error {
	b := rc.Invoice.Buyer
	if strings.TrimSpace(b.Name) == "" {
		return errors.New("el comprador no tiene nombre")
	}

	els := []layout.Element{
		layout.Rule{Thickness: 0.3},
		heading("BILL TO"),
		layout.Text{Content: titleCase(b.Name), Style: layout.Style{Bold: true, Size: 10}},
	}
	if addr := b.AddressLine(); addr != "" {
		els = append(els, muted(addr))
	}
	if contact := joinNonEmpty("   |   ", labelled("Ph", b.Phone), labelled("Email", b.Email)); contact != "" {
		els = append(els, muted(contact))
	}
	if tax := joinNonEmpty("   |   ", labelled("GSTIN", b.GSTIN), labelled("PAN", b.PAN), labelled("State Code", b.StateCode)); tax != "" {
		els = append(els, muted(tax))
	}
	return appendAll(sink, els...)
}

// ── Tabla de piezas ───────────────────────────────────────────────────────────

// ItemsSection una fila por pieza con su GST asignado y fila de totales.
type ItemsSection struct{}

func (ItemsSection) Name() string { return "items" }

var itemColumns = []layout.Column{
	{Title: "Item", Width: 3, Align: layout.AlignLeft},
	{Title: "Purity", Width: 1, Align: layout.AlignCenter},
	{Title: "Qty", Width: 1, Align: layout.AlignCenter},
	{Title: "Gr. Wt", Width: 1, Align: layout.AlignRight},
	{Title: "Net Wt", Width: 1, Align: layout.AlignRight},
	{Title: "Rate/g", Width: 1, Align: layout.AlignRight},
	{Title: "Making", Width: 1, Align: layout.AlignRight},
	{Title: "Stone", Width: 1, Align: layout.AlignRight},
	{Title: "GST", Width: 1, Align: layout.AlignRight},
	{Title: "Amount", Width: 1, Align: layout.AlignRight},
}

func (ItemsSection) Render(rc *RenderContext, sink layout.Sink) error {
	items := rc.Invoice.Items
	if len(items) == 0 {
		return errors.New("la factura no tiene piezas")
	}

	rows := make([][]string, 0, len(items))
	var qty int
	gross, net, making, stone, tax, amount := decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
	for _, it := range items {
		q := decimal.NewFromInt(int64(it.Quantity))
		desc := joinNonEmpty(" ", it.VariantNo, it.Description)
		if it.HSNCode != "" {
			desc += " (HSN " + it.HSNCode + ")"
		}
		rows = append(rows, []string{
			desc,
			it.PurityLabel,
			fmt.Sprint(it.Quantity),
			weight(it.GrossWeight),
			weight(it.NetWeight),
			money(it.RatePerGram),
			money(it.LabourCharge),
			money(it.StonePrice),
			money(it.TaxAmount),
			money(it.CostValue),
		})
		qty += it.Quantity
		gross = gross.Add(it.GrossWeight.Mul(q))
		net = net.Add(it.NetWeight.Mul(q))
		making = making.Add(it.LabourCharge.Mul(q))
		stone = stone.Add(it.StonePrice.Mul(q))
		tax = tax.Add(it.TaxAmount)
		amount = amount.Add(it.CostValue)
	}

	return appendAll(sink,
		layout.Spacer{Height: 2},
		layout.Table{
			Columns: itemColumns,
			Rows:    rows,
			Footer: []string{
				"Total", "", fmt.Sprint(qty), weight(gross), weight(net), "",
				money(making), money(stone), money(tax), money(amount),
			},
		},
	)
}

// ── Columna izquierda: banco, separador, cobro ────────────────────────────────

// BankSection cuenta de liquidación del vendedor.
type BankSection struct{}

func (BankSection) Name() string { return "bank" }

func (BankSection) Render(rc *RenderContext, sink layout.Sink) error {
	bank := rc.Invoice.Bank
	if bank.IsZero() {
		return ErrSkip
	}
	els := []layout.Element{heading("BANK DETAILS")}
	for _, kv := range [][2]string{
		{"Account Name", bank.AccountName},
		{"Bank", bank.BankName},
		{"Branch", bank.Branch},
		{"A/c No.", bank.AccountNumber},
		{"IFSC", bank.IFSC},
		{"UPI", bank.UPI},
	} {
		if kv[1] != "" {
			els = append(els, layout.KeyValue{Label: kv[0], Value: kv[1]})
		}
	}
	return appendAll(sink, els...)
}

// DividerSection línea fina entre bloques de una columna.
type DividerSection struct{}

func (DividerSection) Name() string { return "divider" }

func (DividerSection) Render(_ *RenderContext, sink layout.Sink) error {
	return sink.Append(layout.Rule{Thickness: 0.2})
}

// PaymentSection reparto del cobro y saldo. Opcional.
type PaymentSection struct{}

func (PaymentSection) Name() string { return "payment" }

func (PaymentSection) Render(rc *RenderContext, sink layout.Sink) error {
	p := rc.Invoice.Payment
	if p == nil {
		return ErrSkip
	}
	els := []layout.Element{heading("PAYMENT")}
	for _, kv := range []struct {
		label  string
		amount decimal.Decimal
	}{
		{"Cash", p.Cash},
		{"Bank Transfer", p.Bank},
		{"Card", p.Card},
		{"Online / UPI", p.Online},
	} {
		if !kv.amount.IsZero() {
			els = append(els, layout.KeyValue{Label: kv.label, Value: money(kv.amount)})
		}
	}
	if p.Reference != "" {
		els = append(els, layout.KeyValue{Label: "Reference", Value: p.Reference})
	}
	els = append(els, layout.KeyValue{Label: "Total Paid", Value: money(p.Paid())})
	if p.Overpaid {
		els = append(els, layout.KeyValue{Label: "Excess Paid", Value: money(p.Due.Neg()), Emphasis: true})
	} else {
		els = append(els, layout.KeyValue{Label: "Balance Due", Value: money(p.Due), Emphasis: true})
	}
	return appendAll(sink, els...)
}

// ── Columna derecha: cambio de oro y resumen de impuestos ─────────────────────

// ExchangeSection oro recibido en parte de pago. Opcional.
type ExchangeSection struct{}

func (ExchangeSection) Name() string { return "exchange" }

func (ExchangeSection) Render(rc *RenderContext, sink layout.Sink) error {
	ex := rc.Invoice.Exchange
	if ex == nil {
		return ErrSkip
	}
	els := []layout.Element{heading("OLD GOLD EXCHANGE")}
	if ex.Description != "" {
		els = append(els, muted(ex.Description))
	}
	els = append(els, layout.KeyValue{Label: "Weight (g)", Value: weight(ex.Weight)})
	if ex.Purity != "" {
		els = append(els, layout.KeyValue{Label: "Purity", Value: ex.Purity})
	}
	if !ex.Rate.IsZero() {
		els = append(els, layout.KeyValue{Label: "Rate/g", Value: money(ex.Rate)})
	}
	els = append(els,
		layout.KeyValue{Label: "Exchange Value", Value: money(rc.Invoice.Totals.ExchangeValue), Emphasis: true},
		layout.Spacer{Height: 1},
	)
	return appendAll(sink, els...)
}

// TaxSummarySection base gravable y reparto CGST/SGST o IGST.
type TaxSummarySection struct{}

func (TaxSummarySection) Name() string { return "tax_summary" }

func (TaxSummarySection) Render(rc *RenderContext, sink layout.Sink) error {
	t, tax := rc.Invoice.Totals, rc.Invoice.Tax
	els := []layout.Element{
		heading("TAX SUMMARY"),
		layout.KeyValue{Label: "Taxable Amount", Value: money(t.TaxableAmount)},
	}
	switch tax.Mode {
	case entity.GSTInterState:
		els = append(els, layout.KeyValue{Label: "IGST @ " + percent(tax.IGSTRate), Value: money(tax.IGST)})
	default:
		els = append(els,
			layout.KeyValue{Label: "CGST @ " + percent(tax.CGSTRate), Value: money(tax.CGST)},
			layout.KeyValue{Label: "SGST @ " + percent(tax.SGSTRate), Value: money(tax.SGST)},
		)
	}
	els = append(els, layout.KeyValue{Label: "Total GST", Value: money(t.TaxAmount), Emphasis: true})
	return appendAll(sink, els...)
}

// ── Totales y condiciones ─────────────────────────────────────────────────────

// TotalsSection totales, importe en letras, notas, condiciones y firma.
type TotalsSection struct{}

func (TotalsSection) Name() string { return "totals" }

func (TotalsSection) Render(rc *RenderContext, sink layout.Sink) error {
	inv := rc.Invoice
	t := inv.Totals

	els := []layout.Element{
		layout.Spacer{Height: 2},
		layout.KeyValue{Label: "Subtotal", Value: money(t.Subtotal)},
	}
	if !t.Discount.IsZero() {
		els = append(els, layout.KeyValue{Label: "Less: Discount", Value: money(t.Discount)})
	}
	if !t.ExchangeValue.IsZero() {
		els = append(els, layout.KeyValue{Label: "Less: Old Gold Exchange", Value: money(t.ExchangeValue)})
	}
	roundOff := money(t.RoundOff)
	if t.RoundOff.IsPositive() {
		roundOff = "+" + roundOff
	}
	els = append(els,
		layout.KeyValue{Label: "Taxable Amount", Value: money(t.TaxableAmount)},
		layout.KeyValue{Label: "GST @ " + percent(t.TaxRate), Value: money(t.TaxAmount)},
		layout.KeyValue{Label: "Gross Total", Value: money(t.GrossTotal)},
		layout.KeyValue{Label: "Round Off", Value: roundOff},
		layout.Rule{Thickness: 0.3},
		layout.KeyValue{Label: "NET AMOUNT", Value: inr.Rupees(t.NetAmount), Emphasis: true},
		layout.Text{
			Content: "Amount in words: Rupees " + inr.AmountInWords(t.NetAmount) + " Only",
			Style:   layout.Style{Italic: true, Size: 8},
		},
	)
	if inv.Notes != "" {
		els = append(els, layout.Spacer{Height: 1}, muted("Notes: "+inv.Notes))
	}
	if len(rc.Terms) > 0 {
		els = append(els, layout.Spacer{Height: 2}, heading("TERMS & CONDITIONS"))
		for i, term := range rc.Terms {
			els = append(els, muted(fmt.Sprintf("%d. %s", i+1, term)))
		}
	}
	els = append(els,
		layout.Spacer{Height: 8},
		layout.Text{Content: "For " + upperCase(inv.Seller.Name), Style: layout.Style{Bold: true, Size: 9, Align: layout.AlignRight}},
		layout.Spacer{Height: 8},
		layout.Text{Content: "Authorised Signatory", Style: layout.Style{Size: 8, Align: layout.AlignRight, Tone: layout.ToneMuted}},
	)
	return appendAll(sink, els...)
}
