package billing

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
	"github.com/jhoicas/Joyeria-api/internal/domain/pricing"
	"github.com/jhoicas/Joyeria-api/internal/domain/repository"
)

// RateResolver arma el RateBook de un render consultando el catálogo una vez
// por pureza distinta: quilates, luego finura, luego la tabla de materiales.
type RateResolver struct {
	catalog repository.CatalogRepository
	log     zerolog.Logger
}

// NewRateResolver crea el resolvedor.
func NewRateResolver(catalog repository.CatalogRepository, log zerolog.Logger) *RateResolver {
	return &RateResolver{catalog: catalog, log: log}
}

// Resolve devuelve las tarifas de las purezas de items. materials puede ser nil;
// en ese caso se piden al catálogo solo si hacen falta.
func (r *RateResolver) Resolve(ctx context.Context, items []entity.ItemDraft, materials []*entity.Material) (*pricing.RateBook, error) {
	book := pricing.NewRateBook()
	materialsLoaded := materials != nil
	tried := make(map[pricing.Purity]bool)

	for _, it := range items {
		p, ok := pricing.NormalizePurity(it.Metal, it.Purity)
		if !ok {
			r.log.Warn().Str("variant", it.VariantNo).Str("purity", it.Purity).Str("metal", it.Metal).
				Str("fallback", p.Label()).Msg("pureza no reconocida, se usa la de defecto")
		}
		if tried[p] {
			continue
		}
		tried[p] = true

		rate, found, err := r.lookup(ctx, p)
		if err != nil {
			return nil, err
		}
		if !found {
			if !materialsLoaded {
				if materials, err = r.catalog.GetMaterials(ctx); err != nil {
					return nil, fmt.Errorf("tarifas: materiales: %w", err)
				}
				materialsLoaded = true
			}
			for _, m := range materials {
				mp, _ := pricing.NormalizePurity(m.Metal, m.Purity)
				if mp.Metal == p.Metal && mp.Fineness == p.Fineness {
					rate, found = m.RatePerGram, true
					break
				}
			}
		}
		if !found {
			r.log.Warn().Str("purity", p.Label()).Str("metal", p.Metal).Msg("sin tarifa para la pureza, el metal se valoriza en cero")
			continue
		}
		book.Set(p, rate)
	}
	return book, nil
}

func (r *RateResolver) lookup(ctx context.Context, p pricing.Purity) (rate decimal.Decimal, found bool, err error) {
	if p.StandardKarat() {
		rate, found, err = r.catalog.GetMetalRateForKarat(ctx, p.Metal, p.Karat)
		if err != nil {
			return rate, false, fmt.Errorf("tarifas: %s %dK: %w", p.Metal, p.Karat, err)
		}
		if found {
			return rate, true, nil
		}
	}
	rate, found, err = r.catalog.GetMetalRateForPurity(ctx, p.Metal, p.Fineness)
	if err != nil {
		return rate, false, fmt.Errorf("tarifas: %s %d: %w", p.Metal, p.Fineness, err)
	}
	return rate, found, nil
}

// ApplyRates completa RatePerGram en las piezas que no la traen. Una tarifa
// explícita del draft se respeta.
func ApplyRates(items []entity.ItemDraft, book *pricing.RateBook) []entity.ItemDraft {
	out := make([]entity.ItemDraft, len(items))
	for i, it := range items {
		it = it.Clone()
		if !it.RatePerGram.IsPositive() {
			p, _ := pricing.NormalizePurity(it.Metal, it.Purity)
			if rate, ok := book.Rate(p); ok {
				it.RatePerGram = rate
			}
		}
		out[i] = it
	}
	return out
}
