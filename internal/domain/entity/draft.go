package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Modos de cálculo de la hechura (making charge).
type MakingMode string

const (
	MakingUnset   MakingMode = ""
	MakingPercent MakingMode = "percent"  // peso neto × tarifa × %
	MakingPerGram MakingMode = "per_gram" // peso neto × tarifa fija por gramo
)

// Draft intención editable de factura. Se convierte (nunca se muta) en Invoice.
type Draft struct {
	Number   string            `json:"number" validate:"required"`
	OrderID  string            `json:"order_id,omitempty"`
	Date     time.Time         `json:"date"`
	Seller   Party             `json:"seller"`
	Buyer    Party             `json:"buyer"`
	Items    []ItemDraft       `json:"items" validate:"required,min=1,dive"`
	Exchange *ExchangeGoldInfo `json:"exchange,omitempty"`
	Discount decimal.Decimal   `json:"discount"`
	TaxRate  decimal.Decimal   `json:"tax_rate"` // porcentaje, ej. 3 para GST de joyería
	Payment  *PaymentSplit     `json:"payment,omitempty"`
	Notes    string            `json:"notes,omitempty"`
	Header   HeaderOverrides   `json:"header"`
}

// ItemDraft entradas crudas de una pieza. VariantNo es su identidad y no cambia
// al editar la factura.
type ItemDraft struct {
	VariantNo           string              `json:"variant_no" validate:"required"`
	ProductID           string              `json:"product_id,omitempty"`
	Description         string              `json:"description" validate:"required"`
	HSNCode             string              `json:"hsn_code,omitempty"`
	Metal               string              `json:"metal,omitempty"`
	Purity              string              `json:"purity,omitempty"`
	Quantity            int                 `json:"quantity" validate:"gt=0"`
	GrossWeight         decimal.Decimal     `json:"gross_weight"`
	StoneWeight         decimal.Decimal     `json:"stone_weight"`
	MetalWeight         decimal.NullDecimal `json:"metal_weight"`
	MakingChargePercent decimal.Decimal     `json:"making_charge_percent"`
	LabourRatePerGram   decimal.Decimal     `json:"labour_rate_per_gram"`
	MakingMode          MakingMode          `json:"making_mode,omitempty"`
	Stones              []StoneLine         `json:"stones,omitempty"`
	StoneAmount         decimal.Decimal     `json:"stone_amount"`
	RatePerGram         decimal.Decimal     `json:"rate_per_gram"` // tarifa resuelta una vez por render
}

// Clone copia profunda de las piezas para que Draft e Invoice no compartan slices.
func (d ItemDraft) Clone() ItemDraft {
	if d.Stones != nil {
		d.Stones = append([]StoneLine(nil), d.Stones...)
	}
	return d
}

// ExchangeGoldInfo oro recibido en parte de pago; su valor se resta antes de impuestos.
type ExchangeGoldInfo struct {
	Description string          `json:"description,omitempty"`
	Weight      decimal.Decimal `json:"weight"`
	Purity      string          `json:"purity,omitempty"`
	Rate        decimal.Decimal `json:"rate"`
	Value       decimal.Decimal `json:"value"` // explícito; si es cero se usa peso × tarifa
}

// Valuation valor de la parte de pago: el explícito o peso × tarifa.
func (e ExchangeGoldInfo) Valuation() decimal.Decimal {
	if !e.Value.IsZero() {
		return e.Value
	}
	return e.Weight.Mul(e.Rate)
}

// PaymentSplit reparto del cobro. Due se deriva del neto de la factura.
type PaymentSplit struct {
	Cash      decimal.Decimal `json:"cash"`
	Bank      decimal.Decimal `json:"bank"`
	Card      decimal.Decimal `json:"card"`
	Online    decimal.Decimal `json:"online"`
	Reference string          `json:"reference,omitempty"` // UTR / cheque
	Due       decimal.Decimal `json:"due"`
	Overpaid  bool            `json:"overpaid"`
}

// Paid suma de los componentes cobrados.
func (p PaymentSplit) Paid() decimal.Decimal {
	return p.Cash.Add(p.Bank).Add(p.Card).Add(p.Online)
}

// Reconcile devuelve una copia con Due = net − pagado. Un Due negativo marca
// sobrepago; no se rechaza.
func (p PaymentSplit) Reconcile(net decimal.Decimal) PaymentSplit {
	p.Due = net.Sub(p.Paid())
	p.Overpaid = p.Due.IsNegative()
	return p
}
