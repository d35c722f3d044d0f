package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Joyeria-api/internal/domain"
	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
	"github.com/jhoicas/Joyeria-api/internal/domain/repository"
)

// DefaultHSNCode capítulo HSN de joyería de metales preciosos.
const DefaultHSNCode = "7113"

// DraftOptions datos de cabecera que no vienen del pedido.
type DraftOptions struct {
	Number   string
	Discount decimal.Decimal
	Exchange *entity.ExchangeGoldInfo
	Payment  *entity.PaymentSplit
	Notes    string
	Header   entity.HeaderOverrides
}

// PrepareDraftUseCase arma un Draft a partir de un pedido: cliente, productos y
// materiales se leen en paralelo y las tarifas se resuelven una sola vez.
type PrepareDraftUseCase struct {
	orders  repository.OrderSource
	catalog repository.CatalogRepository
	rates   *RateResolver
	seller  entity.Party
	taxRate decimal.Decimal
	log     zerolog.Logger
}

// NewPrepareDraftUseCase construye el caso de uso con el vendedor y la tasa de GST por defecto.
func NewPrepareDraftUseCase(
	orders repository.OrderSource,
	catalog repository.CatalogRepository,
	seller entity.Party,
	taxRate decimal.Decimal,
	log zerolog.Logger,
) *PrepareDraftUseCase {
	return &PrepareDraftUseCase{
		orders:  orders,
		catalog: catalog,
		rates:   NewRateResolver(catalog, log),
		seller:  seller,
		taxRate: taxRate,
		log:     log,
	}
}

// FromOrder devuelve el Draft del pedido orderID.
//
// Retorna:
//   - domain.ErrNotFound     si el pedido, el cliente o un producto no existen.
//   - domain.ErrInvalidInput si el pedido no tiene líneas.
func (uc *PrepareDraftUseCase) FromOrder(ctx context.Context, orderID string, opts DraftOptions) (*entity.Draft, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, fmt.Errorf("%w: id de pedido vacío", domain.ErrInvalidInput)
	}

	// ── 1. Pedido ────────────────────────────────────────────────────────────
	order, err := uc.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("borrador: obtener pedido: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("%w: pedido %s", domain.ErrNotFound, orderID)
	}
	if len(order.Lines) == 0 {
		return nil, fmt.Errorf("%w: el pedido %s no tiene líneas", domain.ErrInvalidInput, orderID)
	}

	// ── 2. Cliente, productos y materiales en paralelo ───────────────────────
	var (
		customer  *entity.Customer
		products  []*entity.Product
		materials []*entity.Material
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := uc.orders.GetCustomer(gctx, order.CustomerID)
		if err != nil {
			return fmt.Errorf("borrador: obtener cliente: %w", err)
		}
		if c == nil {
			return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, order.CustomerID)
		}
		customer = c
		return nil
	})
	g.Go(func() error {
		p, err := uc.catalog.GetProductsByIDs(gctx, productIDs(order.Lines))
		if err != nil {
			return fmt.Errorf("borrador: obtener productos: %w", err)
		}
		products = p
		return nil
	})
	g.Go(func() error {
		m, err := uc.catalog.GetMaterials(gctx)
		if err != nil {
			return fmt.Errorf("borrador: obtener materiales: %w", err)
		}
		materials = m
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// ── 3. Piezas con los valores por defecto del producto ───────────────────
	byID := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	items := make([]entity.ItemDraft, 0, len(order.Lines))
	for _, line := range order.Lines {
		product, ok := byID[line.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, line.ProductID)
		}
		items = append(items, itemFromLine(line, product))
	}

	// ── 4. Tarifas, una vez por pureza ───────────────────────────────────────
	book, err := uc.rates.Resolve(ctx, items, materials)
	if err != nil {
		return nil, err
	}
	items = ApplyRates(items, book)

	number := opts.Number
	if number == "" {
		number = order.Number
	}
	uc.log.Debug().Str("order", orderID).Int("items", len(items)).Int("rates", book.Len()).Msg("borrador preparado")

	return &entity.Draft{
		Number:   number,
		OrderID:  order.ID,
		Date:     order.Date,
		Seller:   uc.seller,
		Buyer:    customer.Party(),
		Items:    items,
		Exchange: opts.Exchange,
		Discount: opts.Discount,
		TaxRate:  uc.taxRate,
		Payment:  opts.Payment,
		Notes:    firstNonEmpty(opts.Notes, order.Notes),
		Header:   opts.Header,
	}, nil
}

func productIDs(lines []entity.OrderLine) []string {
	seen := make(map[string]bool, len(lines))
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		if l.ProductID != "" && !seen[l.ProductID] {
			seen[l.ProductID] = true
			ids = append(ids, l.ProductID)
		}
	}
	return ids
}

// itemFromLine toma del producto lo que la línea no sobrescribe.
func itemFromLine(line entity.OrderLine, p *entity.Product) entity.ItemDraft {
	it := entity.ItemDraft{
		VariantNo:           line.VariantNo,
		ProductID:           p.ID,
		Description:         firstNonEmpty(p.Name, p.Description, p.SKU),
		HSNCode:             firstNonEmpty(p.HSNCode, DefaultHSNCode),
		Metal:               p.Metal,
		Purity:              firstNonEmpty(line.Purity, p.Purity),
		Quantity:            line.Quantity,
		GrossWeight:         orDefault(line.GrossWeight, p.GrossWeight),
		StoneWeight:         orDefault(line.StoneWeight, p.StoneWeight),
		MetalWeight:         line.MetalWeight,
		MakingChargePercent: orDefault(line.MakingChargePercent, p.MakingChargePercent),
		LabourRatePerGram:   orDefault(line.LabourRatePerGram, p.LabourRatePerGram),
		StoneAmount:         line.StoneAmount,
	}
	if it.VariantNo == "" {
		it.VariantNo = firstNonEmpty(p.SKU, p.ID)
	}
	switch {
	case len(line.Stones) > 0:
		it.Stones = append([]entity.StoneLine(nil), line.Stones...)
	case len(p.Stones) > 0:
		it.Stones = append([]entity.StoneLine(nil), p.Stones...)
	}
	return it
}

func orDefault(v decimal.NullDecimal, def decimal.Decimal) decimal.Decimal {
	if v.Valid {
		return v.Decimal
	}
	return def
}

func firstNonEmpty(ss ...string) string {
	for _, s := range ss {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}
