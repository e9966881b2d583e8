package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseLineRequest una línea de la orden de compra.
type PurchaseLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// RegisterPurchaseRequest body para POST /api/compras. La compra nace
// pendiente: el stock no se toca hasta recibirla.
type RegisterPurchaseRequest struct {
	SupplierID string                `json:"supplier_id"`
	Lines      []PurchaseLineRequest `json:"lines"`
	Date       *time.Time            `json:"date,omitempty"`
	TaxRate    *decimal.Decimal      `json:"tax_rate,omitempty"` // default 0.18
	Notes      string                `json:"notes,omitempty"`
}

// ReceivePurchaseRequest body para POST /api/compras/:id/recibir.
type ReceivePurchaseRequest struct {
	ReceivedDate *time.Time `json:"received_date,omitempty"`
}

// PurchaseResponse resumen de una compra.
type PurchaseResponse struct {
	ID           string          `json:"id"`
	Number       string          `json:"number"`
	SupplierID   string          `json:"supplier_id"`
	SupplierName string          `json:"supplier_name"`
	Date         string          `json:"date"`
	State        string          `json:"state"`
	ReceivedDate string          `json:"received_date,omitempty"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Tax          decimal.Decimal `json:"tax"`
	Total        decimal.Decimal `json:"total"`
	LineCount    int             `json:"line_count"`
	Lines        []PurchaseLineResponse `json:"lines,omitempty"`
}

// PurchaseLineResponse una línea de compra en respuestas.
type PurchaseLineResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// PurchasesPeriodStats estadísticas de compras de un período.
type PurchasesPeriodStats struct {
	TotalPurchases   int             `json:"total_purchases"`
	ReceivedCount    int             `json:"received"`
	PendingCount     int             `json:"pending"`
	TotalSpent       decimal.Decimal `json:"total_spent"`
	AveragePurchase  decimal.Decimal `json:"average_purchase"`
	From             string          `json:"from"`
	To               string          `json:"to"`
}
