package repository

import (
	"context"

	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
)

// OrderSource snapshots de solo lectura de pedidos y clientes, consumidos una vez
// por render. Devuelve (nil, nil) si el registro no existe.
type OrderSource interface {
	GetOrder(ctx context.Context, id string) (*entity.Order, error)
	GetCustomer(ctx context.Context, id string) (*entity.Customer, error)
}
