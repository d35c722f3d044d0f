package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Joyeria-api/internal/domain"
	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
	"github.com/jhoicas/Joyeria-api/pkg/inr"
)

// DateLayout formato de fecha en los cuerpos JSON.
const DateLayout = "2006-01-02"

// DraftRequest body para POST /api/invoices/preview y /api/invoices/render.
// Seller vacío usa el vendedor configurado.
type DraftRequest struct {
	Number   string                   `json:"number"`
	OrderID  string                   `json:"order_id,omitempty"`
	Date     string                   `json:"date,omitempty"` // YYYY-MM-DD; vacío = hoy
	Seller   *entity.Party            `json:"seller,omitempty"`
	Buyer    entity.Party             `json:"buyer"`
	Items    []entity.ItemDraft       `json:"items"`
	Exchange *entity.ExchangeGoldInfo `json:"exchange,omitempty"`
	Discount decimal.Decimal          `json:"discount"`
	TaxRate  *decimal.Decimal         `json:"tax_rate,omitempty"` // nil = tasa configurada
	Payment  *entity.PaymentSplit     `json:"payment,omitempty"`
	Notes    string                   `json:"notes,omitempty"`
	Header   entity.HeaderOverrides   `json:"header"`
}

// DraftDefaults valores de la tienda para lo que el cuerpo no trae.
type DraftDefaults struct {
	Seller  entity.Party
	TaxRate decimal.Decimal
	Now     func() time.Time
}

// ToDraft convierte el cuerpo en Draft. La validación de fondo la hace el agregador.
func (r DraftRequest) ToDraft(def DraftDefaults) (*entity.Draft, error) {
	now := time.Now
	if def.Now != nil {
		now = def.Now
	}
	date := now()
	if r.Date != "" {
		d, err := time.Parse(DateLayout, r.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha %q, se espera %s", domain.ErrInvalidInput, r.Date, DateLayout)
		}
		date = d
	}
	seller := def.Seller
	if r.Seller != nil {
		seller = *r.Seller
	}
	rate := def.TaxRate
	if r.TaxRate != nil {
		rate = *r.TaxRate
	}
	return &entity.Draft{
		Number:   r.Number,
		OrderID:  r.OrderID,
		Date:     date,
		Seller:   seller,
		Buyer:    r.Buyer,
		Items:    r.Items,
		Exchange: r.Exchange,
		Discount: r.Discount,
		TaxRate:  rate,
		Payment:  r.Payment,
		Notes:    r.Notes,
		Header:   r.Header,
	}, nil
}

// OrderInvoiceRequest body para POST /api/orders/:id/invoice.
type OrderInvoiceRequest struct {
	Number   string                   `json:"number,omitempty"` // vacío = número del pedido
	Discount decimal.Decimal          `json:"discount"`
	Exchange *entity.ExchangeGoldInfo `json:"exchange,omitempty"`
	Payment  *entity.PaymentSplit     `json:"payment,omitempty"`
	Notes    string                   `json:"notes,omitempty"`
	Header   entity.HeaderOverrides   `json:"header"`
	Format   string                   `json:"format,omitempty" validate:"omitempty,oneof=pdf html"`
}

// InvoiceItemResponse pieza valorizada.
type InvoiceItemResponse struct {
	VariantNo    string          `json:"variant_no"`
	Description  string          `json:"description"`
	HSNCode      string          `json:"hsn_code,omitempty"`
	Purity       string          `json:"purity"`
	Quantity     int             `json:"quantity"`
	GrossWeight  decimal.Decimal `json:"gross_weight"`
	NetWeight    decimal.Decimal `json:"net_weight"`
	RatePerGram  decimal.Decimal `json:"rate_per_gram"`
	MetalPrice   decimal.Decimal `json:"metal_price"`
	LabourCharge decimal.Decimal `json:"labour_charge"`
	StonePrice   decimal.Decimal `json:"stone_price"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	CostValue    decimal.Decimal `json:"cost_value"`
	TaxAmount    decimal.Decimal `json:"tax_amount"`
}

// InvoiceResponse factura calculada para la vista previa. Los importes van
// redondeados a paise.
type InvoiceResponse struct {
	Number        string                `json:"number"`
	OrderID       string                `json:"order_id,omitempty"`
	Date          string                `json:"date"`
	Seller        string                `json:"seller"`
	Buyer         string                `json:"buyer"`
	Items         []InvoiceItemResponse `json:"items"`
	Totals        entity.Totals         `json:"totals"`
	Tax           entity.TaxSplit       `json:"tax"`
	Payment       *entity.PaymentSplit  `json:"payment,omitempty"`
	AmountInWords string                `json:"amount_in_words"`
	GeneratedAt   time.Time             `json:"generated_at"`
}

// RenderResponse resultado de un render escrito en disco (modo HTML).
type RenderResponse struct {
	OK       bool   `json:"ok"`
	Path     string `json:"path,omitempty"`
	Engine   string `json:"engine,omitempty"`
	Size     int64  `json:"size,omitempty"`
	Checksum string `json:"checksum,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// NewInvoiceResponse proyecta la factura para la API.
func NewInvoiceResponse(inv *entity.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, len(inv.Items))
	for i, it := range inv.Items {
		items[i] = InvoiceItemResponse{
			VariantNo:    it.VariantNo,
			Description:  it.Description,
			HSNCode:      it.HSNCode,
			Purity:       it.PurityLabel,
			Quantity:     it.Quantity,
			GrossWeight:  it.GrossWeight,
			NetWeight:    it.NetWeight,
			RatePerGram:  it.RatePerGram,
			MetalPrice:   it.MetalPrice.Round(2),
			LabourCharge: it.LabourCharge.Round(2),
			StonePrice:   it.StonePrice.Round(2),
			UnitPrice:    it.UnitPrice.Round(2),
			CostValue:    it.CostValue.Round(2),
			TaxAmount:    it.TaxAmount,
		}
	}
	t := inv.Totals
	totals := entity.Totals{
		Subtotal:      t.Subtotal.Round(2),
		ExchangeValue: t.ExchangeValue.Round(2),
		Discount:      t.Discount.Round(2),
		TaxableAmount: t.TaxableAmount.Round(2),
		TaxRate:       t.TaxRate,
		TaxAmount:     t.TaxAmount.Round(2),
		GrossTotal:    t.GrossTotal.Round(2),
		RoundOff:      t.RoundOff.Round(2),
		NetAmount:     t.NetAmount,
	}
	return InvoiceResponse{
		Number:        inv.MemoNumber(),
		OrderID:       inv.OrderID,
		Date:          inv.Date.Format(DateLayout),
		Seller:        inv.Seller.Name,
		Buyer:         inv.Buyer.Name,
		Items:         items,
		Totals:        totals,
		Tax:           inv.Tax,
		Payment:       inv.Payment,
		AmountInWords: "Rupees " + inr.AmountInWords(t.NetAmount) + " Only",
		GeneratedAt:   inv.GeneratedAt,
	}
}
