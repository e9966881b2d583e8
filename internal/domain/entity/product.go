package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. Stock es el contador agregado
// de unidades; solo se modifica vía los workflows de venta/compra/ajuste,
// siempre junto a un Movement en la misma transacción.
type Product struct {
	ID            string
	Code          string // código único (ej: P001)
	Name          string
	Description   string
	CategoryID    string
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal
	Stock         int // nunca negativo
	MinStock      int // umbral para alerta de stock crítico
	Unit          string // unidad de medida (unidad, kg, litro, caja...)
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LowStock indica si el producto está en o por debajo del stock mínimo.
func (p *Product) LowStock() bool {
	return p.Stock <= p.MinStock
}
