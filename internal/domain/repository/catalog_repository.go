package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
)

// CatalogRepository puerto de lectura de productos, materiales y tarifas de metal.
// El caché, si lo hay, es responsabilidad de la implementación.
type CatalogRepository interface {
	// GetProductsByIDs devuelve los productos encontrados; los ids desconocidos se
	// omiten sin error.
	GetProductsByIDs(ctx context.Context, ids []string) ([]*entity.Product, error)
	GetMaterials(ctx context.Context) ([]*entity.Material, error)
	// GetMetalRateForKarat tarifa por gramo de un metal en quilates; ok=false si no hay.
	GetMetalRateForKarat(ctx context.Context, metal string, karat int) (rate decimal.Decimal, ok bool, err error)
	// GetMetalRateForPurity tarifa por gramo según la finura en partes por mil.
	GetMetalRateForPurity(ctx context.Context, metal string, fineness int) (rate decimal.Decimal, ok bool, err error)
}
