package invoice

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
)

// HeaderEdit campos editables de una factura ya emitida. Los nil no cambian.
type HeaderEdit struct {
	Seller *entity.Party
	Buyer  *entity.Party
	Header *entity.HeaderOverrides
	Notes  *string
}

// ToDraft reconstruye el Draft del que salió la factura. Las piezas se copian
// tal cual (variante, pesos, tarifas), de modo que reconstruirlo da los mismos
// valores por pieza.
func ToDraft(inv *entity.Invoice) *entity.Draft {
	items := make([]entity.ItemDraft, len(inv.Items))
	for i := range inv.Items {
		items[i] = inv.Items[i].ItemDraft.Clone()
	}

	d := &entity.Draft{
		Number:   inv.Number,
		OrderID:  inv.OrderID,
		Date:     inv.Date,
		Seller:   inv.Seller,
		Buyer:    inv.Buyer,
		Items:    items,
		Discount: inv.Totals.Discount,
		TaxRate:  inv.Totals.TaxRate,
		Notes:    inv.Notes,
		Header:   inv.Header,
	}
	if inv.Exchange != nil {
		ex := *inv.Exchange
		d.Exchange = &ex
	}
	if inv.Payment != nil {
		p := *inv.Payment
		p.Due, p.Overpaid = decimal.Zero, false
		d.Payment = &p
	}
	return d
}

// Edit devuelve un Draft nuevo donde solo cambian partes, cabecera y notas.
// La factura original no se toca.
func Edit(inv *entity.Invoice, e HeaderEdit) *entity.Draft {
	d := ToDraft(inv)
	if e.Seller != nil {
		d.Seller = *e.Seller
	}
	if e.Buyer != nil {
		d.Buyer = *e.Buyer
	}
	if e.Header != nil {
		d.Header = *e.Header
	}
	if e.Notes != nil {
		d.Notes = *e.Notes
	}
	return d
}
