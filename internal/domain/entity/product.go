package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Metales soportados.
const (
	MetalGold   = "gold"
	MetalSilver = "silver"
)

// Clases de piedra con subtotal propio en el desglose.
const (
	StoneKundan = "kundan"
	StoneJarkan = "jarkan"
	StoneOther  = "other"
)

// StoneLine piedras de una clase: peso (ct o g) × tarifa.
type StoneLine struct {
	Class  string          `json:"class"`
	Weight decimal.Decimal `json:"weight"`
	Rate   decimal.Decimal `json:"rate"`
}

// Subtotal peso × tarifa, sin redondeo.
func (s StoneLine) Subtotal() decimal.Decimal {
	return s.Weight.Mul(s.Rate)
}

// Product pieza del catálogo con sus valores por defecto de hechura.
type Product struct {
	ID                  string
	SKU                 string
	Name                string
	Description         string
	HSNCode             string
	Metal               string // gold | silver
	Purity              string // "22K", "916", "925"...
	GrossWeight         decimal.Decimal
	StoneWeight         decimal.Decimal
	MakingChargePercent decimal.Decimal
	LabourRatePerGram   decimal.Decimal
	Stones              []StoneLine
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Material tarifa vigente por gramo de un metal y pureza.
type Material struct {
	ID          string
	Name        string
	Metal       string
	Purity      string
	RatePerGram decimal.Decimal
	UpdatedAt   time.Time
}
