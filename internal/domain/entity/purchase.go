package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una compra. Recibida y cancelada son terminales; el stock solo
// se afecta al recibir.
const (
	PurchaseStatePendiente = "pendiente"
	PurchaseStateRecibida  = "recibida"
	PurchaseStateCancelada = "cancelada"
)

// Purchase representa la cabecera de una compra a proveedor.
type Purchase struct {
	ID           string
	Number       string // COM-2026-001
	SupplierID   string
	UserID       string
	Date         time.Time
	State        string
	ReceivedDate *time.Time
	Subtotal     decimal.Decimal
	Tax          decimal.Decimal
	Total        decimal.Decimal
	Notes        string
	CreatedAt    time.Time
}

// PurchaseDetail representa una línea de compra. Inmutable después de creada.
type PurchaseDetail struct {
	ID         string
	PurchaseID string
	ProductID  string
	Quantity   int
	UnitPrice  decimal.Decimal
	Subtotal   decimal.Decimal // Quantity × UnitPrice
}
