package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order pedido de venta tal como lo entrega el origen de pedidos.
type Order struct {
	ID         string
	Number     string
	CustomerID string
	Date       time.Time
	Notes      string
	Lines      []OrderLine
}

// OrderLine pieza pedida. Los campos Null* vacíos toman el valor del producto.
type OrderLine struct {
	VariantNo           string
	ProductID           string
	Quantity            int
	GrossWeight         decimal.NullDecimal
	StoneWeight         decimal.NullDecimal
	MetalWeight         decimal.NullDecimal
	Purity              string
	MakingChargePercent decimal.NullDecimal
	LabourRatePerGram   decimal.NullDecimal
	StoneAmount         decimal.Decimal
	Stones              []StoneLine
}
