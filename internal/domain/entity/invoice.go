package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Modos de GST según el lugar de suministro.
const (
	GSTIntraState = "intra" // CGST + SGST
	GSTInterState = "inter" // IGST
)

// Item pieza valorizada. Los importes van a precisión completa; el redondeo
// ocurre solo al mostrarlos.
type Item struct {
	ItemDraft
	PurityLabel  string          `json:"purity_label"`
	NetWeight    decimal.Decimal `json:"net_weight"`
	MetalPrice   decimal.Decimal `json:"metal_price"`
	LabourCharge decimal.Decimal `json:"labour_charge"`
	StonePrice   decimal.Decimal `json:"stone_price"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	CostValue    decimal.Decimal `json:"cost_value"` // UnitPrice × Quantity
	TaxAmount    decimal.Decimal `json:"tax_amount"` // asignación proporcional del GST
}

// Totals importes de cabecera. Consistentes entre sí:
// Taxable = max(0, Subtotal − Discount − ExchangeValue),
// NetAmount = GrossTotal + RoundOff = Taxable + TaxAmount + RoundOff.
type Totals struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	ExchangeValue decimal.Decimal `json:"exchange_value"`
	Discount      decimal.Decimal `json:"discount"`
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	GrossTotal    decimal.Decimal `json:"gross_total"`
	RoundOff      decimal.Decimal `json:"round_off"`
	NetAmount     decimal.Decimal `json:"net_amount"`
}

// TaxSplit reparto del GST para el resumen de impuestos.
type TaxSplit struct {
	Mode     string          `json:"mode"` // GSTIntraState | GSTInterState
	CGSTRate decimal.Decimal `json:"cgst_rate"`
	CGST     decimal.Decimal `json:"cgst"`
	SGSTRate decimal.Decimal `json:"sgst_rate"`
	SGST     decimal.Decimal `json:"sgst"`
	IGSTRate decimal.Decimal `json:"igst_rate"`
	IGST     decimal.Decimal `json:"igst"`
}

// Invoice resultado congelado. Solo lo construye el agregador y no se muta:
// regenerar exige un Draft nuevo.
type Invoice struct {
	Number      string            `json:"number"`
	OrderID     string            `json:"order_id,omitempty"`
	Date        time.Time         `json:"date"`
	Seller      Party             `json:"seller"`
	Buyer       Party             `json:"buyer"`
	Items       []Item            `json:"items"`
	Exchange    *ExchangeGoldInfo `json:"exchange,omitempty"`
	Payment     *PaymentSplit     `json:"payment,omitempty"`
	Notes       string            `json:"notes,omitempty"`
	Header      HeaderOverrides   `json:"header"`
	Totals      Totals            `json:"totals"`
	Tax         TaxSplit          `json:"tax"`
	Bank        BankInfo          `json:"bank"`
	Regulatory  Regulatory        `json:"regulatory"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// MemoNumber número impreso: la sobrescritura de cabecera o el número del draft.
func (inv *Invoice) MemoNumber() string {
	if inv.Header.MemoNumber != "" {
		return inv.Header.MemoNumber
	}
	return inv.Number
}
