package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustInventoryRequest body para POST /api/inventario/ajustes: fija el
// stock absoluto; el delta equivalente queda registrado en el movimiento.
type AdjustInventoryRequest struct {
	ProductID string `json:"product_id"`
	NewStock  int    `json:"new_stock"`
	Reason    string `json:"reason"` // merma, corrección, inventario físico...
	Notes     string `json:"notes,omitempty"`
}

// MovementResponse un movimiento de inventario en respuestas.
type MovementResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	Type        string    `json:"type"`
	Quantity    int       `json:"quantity"`
	Motive      string    `json:"motive"`
	ReferenceID string    `json:"reference_id,omitempty"`
	StockBefore int       `json:"stock_before"`
	StockAfter  int       `json:"stock_after"`
	UserID      string    `json:"user_id"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// MovementHistoryRequest filtros para el historial de movimientos. Se aplica
// el primer filtro presente: rango de fechas, tipo, producto; sin filtros
// devuelve los más recientes.
type MovementHistoryRequest struct {
	ProductID string     `query:"product_id"`
	Type      string     `query:"type"`
	From      *time.Time `query:"from"`
	To        *time.Time `query:"to"`
	Limit     int        `query:"limit"`
}

// InventoryValuation valor total del inventario activo.
type InventoryValuation struct {
	TotalProducts     int             `json:"total_products"`
	TotalUnits        int             `json:"total_units"`
	PurchaseValue     decimal.Decimal `json:"purchase_value"`
	SaleValue         decimal.Decimal `json:"sale_value"`
	PotentialProfit   decimal.Decimal `json:"potential_profit"`
	MarginPercentage  decimal.Decimal `json:"margin_percentage"`
}

// RotationEntry rotación de un producto en el período consultado.
type RotationEntry struct {
	ProductID     string          `json:"product_id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Stock         int             `json:"stock"`
	UnitsSold     int             `json:"units_sold"`
	SalesCount    int             `json:"sales_count"`
	RotationRate  decimal.Decimal `json:"rotation_rate"`
	InventoryDays decimal.Decimal `json:"inventory_days"`
}
