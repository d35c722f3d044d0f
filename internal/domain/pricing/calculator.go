// Package pricing valoriza piezas de joyería a partir de peso, pureza, hechura
// y piedras. Funciones puras: sin E/S ni estado compartido.
//
//	peso neto   = override de metal ó (bruto − piedras), nunca negativo
//	metal       = peso neto × tarifa/g
//	hechura     = peso neto × tarifa × %/100   (modo percent)
//	            = peso neto × tarifa fija/g    (modo per_gram)
//	piedras     = Σ(peso × tarifa por clase) + importe adicional
//	total pieza = metal + hechura + piedras
//
// Nada se redondea aquí; el redondeo es responsabilidad de la presentación.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Input entradas crudas de una pieza.
type Input struct {
	GrossWeight         decimal.Decimal
	StoneWeight         decimal.Decimal
	MetalWeight         decimal.NullDecimal // override: si es válido gana
	RatePerGram         decimal.Decimal
	MakingChargePercent decimal.Decimal
	LabourRatePerGram   decimal.Decimal
	Mode                entity.MakingMode
	Stones              []entity.StoneLine
	StoneAmount         decimal.Decimal
}

// Breakdown desglose valorizado de una unidad.
type Breakdown struct {
	NetWeight    decimal.Decimal
	MetalPrice   decimal.Decimal
	LabourCharge decimal.Decimal
	StonePrice   decimal.Decimal
	StoneByClass map[string]decimal.Decimal
	UnitTotal    decimal.Decimal
	Mode         entity.MakingMode // modo efectivamente aplicado
}

// InputFromItem adapta un ItemDraft al calculador.
func InputFromItem(d entity.ItemDraft) Input {
	return Input{
		GrossWeight:         d.GrossWeight,
		StoneWeight:         d.StoneWeight,
		MetalWeight:         d.MetalWeight,
		RatePerGram:         d.RatePerGram,
		MakingChargePercent: d.MakingChargePercent,
		LabourRatePerGram:   d.LabourRatePerGram,
		Mode:                d.MakingMode,
		Stones:              d.Stones,
		StoneAmount:         d.StoneAmount,
	}
}

// NetMetalWeight peso facturable del metal.
func NetMetalWeight(in Input) decimal.Decimal {
	if in.MetalWeight.Valid {
		return in.MetalWeight.Decimal
	}
	net := in.GrossWeight.Sub(in.StoneWeight)
	if net.IsNegative() {
		return decimal.Zero
	}
	return net
}

// ResolveMode modo sin definir: percent si hay %, si no per_gram.
func ResolveMode(in Input) entity.MakingMode {
	if in.Mode != entity.MakingUnset {
		return in.Mode
	}
	if in.MakingChargePercent.IsPositive() {
		return entity.MakingPercent
	}
	return entity.MakingPerGram
}

// Calculate valoriza una unidad. Una tarifa cero o negativa deja el metal (y la
// hechura porcentual) en cero sin error, para poder facturar solo hechura y piedras.
func Calculate(in Input) Breakdown {
	net := NetMetalWeight(in)

	rate := in.RatePerGram
	if !rate.IsPositive() {
		rate = decimal.Zero
	}
	metal := net.Mul(rate)

	mode := ResolveMode(in)
	var labour decimal.Decimal
	switch mode {
	case entity.MakingPercent:
		labour = net.Mul(rate).Mul(in.MakingChargePercent).Div(hundred)
	default:
		labour = net.Mul(in.LabourRatePerGram)
	}

	byClass := make(map[string]decimal.Decimal, len(in.Stones))
	stones := decimal.Zero
	for _, s := range in.Stones {
		class := s.Class
		if class == "" {
			class = entity.StoneOther
		}
		sub := s.Subtotal()
		byClass[class] = byClass[class].Add(sub)
		stones = stones.Add(sub)
	}
	stones = stones.Add(in.StoneAmount)

	return Breakdown{
		NetWeight:    net,
		MetalPrice:   metal,
		LabourCharge: labour,
		StonePrice:   stones,
		StoneByClass: byClass,
		UnitTotal:    metal.Add(labour).Add(stones),
		Mode:         mode,
	}
}
