// Package invoice convierte un Draft editable en la Invoice congelada: valoriza
// cada pieza, agrega totales, reparte el GST y concilia el cobro.
package invoice

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
	"github.com/jhoicas/Joyeria-api/internal/domain/pricing"
)

// Builder agregador de facturas. Sin estado mutable: seguro para uso concurrente.
type Builder struct {
	bank       entity.BankInfo
	regulatory entity.Regulatory
	now        func() time.Time
	validate   *validator.Validate
	log        zerolog.Logger
}

// Option configura el Builder.
type Option func(*Builder)

// WithClock fija el reloj usado para GeneratedAt (tests).
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// WithLogger registra como warning las purezas no reconocidas.
func WithLogger(log zerolog.Logger) Option {
	return func(b *Builder) { b.log = log }
}

// NewBuilder crea el agregador con la cuenta bancaria y los registros del vendedor.
func NewBuilder(bank entity.BankInfo, regulatory entity.Regulatory, opts ...Option) *Builder {
	b := &Builder{
		bank:       bank,
		regulatory: regulatory,
		now:        time.Now,
		validate:   newValidator(),
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build valida el draft y produce la Invoice. El draft no se modifica y la
// factura no comparte slices ni punteros con él.
func (b *Builder) Build(d *entity.Draft) (*entity.Invoice, error) {
	if err := b.check(d); err != nil {
		return nil, err
	}

	// ── 1. Valorizar piezas ──────────────────────────────────────────────────
	items := make([]entity.Item, len(d.Items))
	subtotal := decimal.Zero
	for i, raw := range d.Items {
		items[i] = b.price(raw)
		subtotal = subtotal.Add(items[i].CostValue)
	}

	// ── 2. Totales ───────────────────────────────────────────────────────────
	var exchange *entity.ExchangeGoldInfo
	exchangeValue := decimal.Zero
	if d.Exchange != nil {
		cp := *d.Exchange
		exchange = &cp
		exchangeValue = cp.Valuation()
	}
	totals := ComputeTotals(subtotal, d.Discount, exchangeValue, d.TaxRate)

	// ── 3. Reparto del GST por pieza ─────────────────────────────────────────
	weights := make([]decimal.Decimal, len(items))
	for i := range items {
		weights[i] = items[i].CostValue
	}
	for i, share := range Allocate(weights, totals.TaxAmount) {
		items[i].TaxAmount = share
	}

	// ── 4. Registros y modo GST ──────────────────────────────────────────────
	reg := b.regulatory
	if reg.GSTIN == "" {
		reg.GSTIN = d.Seller.GSTIN
	}
	if reg.PAN == "" {
		reg.PAN = d.Seller.PAN
	}
	if reg.StateCode == "" {
		reg.StateCode = d.Seller.StateCode
	}
	sellerState := d.Seller.StateCode
	if sellerState == "" {
		sellerState = reg.StateCode
	}

	// ── 5. Conciliar cobro ───────────────────────────────────────────────────
	var payment *entity.PaymentSplit
	if d.Payment != nil {
		p := d.Payment.Reconcile(totals.NetAmount)
		payment = &p
	}

	return &entity.Invoice{
		Number:      d.Number,
		OrderID:     d.OrderID,
		Date:        d.Date,
		Seller:      d.Seller,
		Buyer:       d.Buyer,
		Items:       items,
		Exchange:    exchange,
		Payment:     payment,
		Notes:       d.Notes,
		Header:      d.Header,
		Totals:      totals,
		Tax:         SplitGST(sellerState, d.Buyer.StateCode, totals.TaxRate, totals.TaxAmount),
		Bank:        b.bank,
		Regulatory:  reg,
		GeneratedAt: b.now(),
	}, nil
}

func (b *Builder) price(raw entity.ItemDraft) entity.Item {
	d := raw.Clone()
	p, ok := pricing.NormalizePurity(d.Metal, d.Purity)
	if !ok {
		b.log.Warn().
			Str("variant", d.VariantNo).
			Str("metal", d.Metal).
			Str("purity", d.Purity).
			Str("fallback", p.Label()).
			Msg("pureza no reconocida, se usa la pureza por defecto")
	}
	br := pricing.Calculate(pricing.InputFromItem(d))
	return entity.Item{
		ItemDraft:    d,
		PurityLabel:  p.Label(),
		NetWeight:    br.NetWeight,
		MetalPrice:   br.MetalPrice,
		LabourCharge: br.LabourCharge,
		StonePrice:   br.StonePrice,
		UnitPrice:    br.UnitTotal,
		CostValue:    br.UnitTotal.Mul(decimal.NewFromInt(int64(d.Quantity))),
	}
}
