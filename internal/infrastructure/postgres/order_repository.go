package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
	"github.com/jhoicas/Joyeria-api/internal/domain/repository"
)

var _ repository.OrderSource = (*OrderRepo)(nil)

// OrderRepo pedidos y clientes de solo lectura sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// GetOrder obtiene el pedido con sus líneas en una misma instantánea. (nil, nil) si no existe.
func (r *OrderRepo) GetOrder(ctx context.Context, id string) (*entity.Order, error) {
	var order *entity.Order
	err := runSnapshot(ctx, r.q, func(q Querier) error {
		o, err := getOrder(ctx, q, id)
		order = o
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func getOrder(ctx context.Context, q Querier, id string) (*entity.Order, error) {
	var o entity.Order
	err := q.QueryRow(ctx,
		`SELECT id, number, customer_id, order_date, notes FROM orders WHERE id = $1`, id,
	).Scan(&o.ID, &o.Number, &o.CustomerID, &o.Date, &o.Notes)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	rows, err := q.Query(ctx, `
		SELECT variant_no, product_id, quantity, gross_weight, stone_weight, metal_weight, purity,
		       making_charge_percent, labour_rate_per_gram, stone_amount, stones
		FROM order_lines WHERE order_id = $1 ORDER BY line_no`, id)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l entity.OrderLine
		if err := rows.Scan(
			&l.VariantNo, &l.ProductID, &l.Quantity, &l.GrossWeight, &l.StoneWeight, &l.MetalWeight,
			&l.Purity, &l.MakingChargePercent, &l.LabourRatePerGram, &l.StoneAmount, &l.Stones,
		); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		o.Lines = append(o.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order lines: %w", err)
	}
	return &o, nil
}

// GetCustomer obtiene un cliente. (nil, nil) si no existe.
func (r *OrderRepo) GetCustomer(ctx context.Context, id string) (*entity.Customer, error) {
	var c entity.Customer
	err := r.q.QueryRow(ctx, `
		SELECT id, name, address, city, state, state_code, pincode, phone, email, gstin, pan, created_at, updated_at
		FROM customers WHERE id = $1`, id,
	).Scan(
		&c.ID, &c.Name, &c.Address, &c.City, &c.State, &c.StateCode, &c.Pincode,
		&c.Phone, &c.Email, &c.GSTIN, &c.PAN, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}
