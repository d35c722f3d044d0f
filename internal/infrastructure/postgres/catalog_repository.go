package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
	"github.com/jhoicas/Joyeria-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo productos, materiales y tarifas de metal sobre PostgreSQL.
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

const productColumns = `id, sku, name, description, hsn_code, metal, purity, gross_weight, stone_weight,
	making_charge_percent, labour_rate_per_gram, stones, created_at, updated_at`

// GetProductsByIDs devuelve los productos existentes de ids, en el orden de la consulta.
func (r *CatalogRepo) GetProductsByIDs(ctx context.Context, ids []string) ([]*entity.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products WHERE id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.SKU, &p.Name, &p.Description, &p.HSNCode, &p.Metal, &p.Purity,
			&p.GrossWeight, &p.StoneWeight, &p.MakingChargePercent, &p.LabourRatePerGram,
			&p.Stones, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// GetMaterials lista la tabla de materiales.
func (r *CatalogRepo) GetMaterials(ctx context.Context) ([]*entity.Material, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, name, metal, purity, rate_per_gram, updated_at FROM materials ORDER BY metal, purity`)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()

	var out []*entity.Material
	for rows.Next() {
		var m entity.Material
		if err := rows.Scan(&m.ID, &m.Name, &m.Metal, &m.Purity, &m.RatePerGram, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// GetMetalRateForKarat tarifa vigente (la más reciente) de un metal en quilates.
func (r *CatalogRepo) GetMetalRateForKarat(ctx context.Context, metal string, karat int) (decimal.Decimal, bool, error) {
	return r.latestRate(ctx, `
		SELECT rate_per_gram FROM metal_rates
		WHERE metal = $1 AND karat = $2 AND effective_at <= now()
		ORDER BY effective_at DESC LIMIT 1`, metal, karat)
}

// GetMetalRateForPurity tarifa vigente según la finura en partes por mil.
func (r *CatalogRepo) GetMetalRateForPurity(ctx context.Context, metal string, fineness int) (decimal.Decimal, bool, error) {
	return r.latestRate(ctx, `
		SELECT rate_per_gram FROM metal_rates
		WHERE metal = $1 AND fineness = $2 AND effective_at <= now()
		ORDER BY effective_at DESC LIMIT 1`, metal, fineness)
}

func (r *CatalogRepo) latestRate(ctx context.Context, query string, metal string, n int) (decimal.Decimal, bool, error) {
	var rate decimal.Decimal
	err := r.q.QueryRow(ctx, query, metal, n).Scan(&rate)
	if err != nil {
		if isNoRows(err) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, fmt.Errorf("get metal rate %s/%d: %w", metal, n, err)
	}
	return rate, true, nil
}
