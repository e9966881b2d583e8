package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta. La anulación es de una sola vía: no existe des-anular.
const (
	SaleStateCompletada = "completada"
	SaleStateAnulada    = "anulada"
)

// Tipos de comprobante de venta.
const (
	DocTypeBoleta  = "boleta"
	DocTypeFactura = "factura"
	DocTypeTicket  = "ticket"
)

// Métodos de pago.
const (
	PaymentEfectivo      = "efectivo"
	PaymentTarjeta       = "tarjeta"
	PaymentTransferencia = "transferencia"
)

// ValidDocType verifica que el tipo de comprobante sea uno de los soportados.
func ValidDocType(t string) bool {
	return t == DocTypeBoleta || t == DocTypeFactura || t == DocTypeTicket
}

// ValidPaymentMethod verifica que el método de pago sea uno de los soportados.
func ValidPaymentMethod(m string) bool {
	return m == PaymentEfectivo || m == PaymentTarjeta || m == PaymentTransferencia
}

// Sale representa la cabecera de una venta.
type Sale struct {
	ID            string
	Number        string // BOL-2026-0001, FAC-2026-0001, TIC-2026-0001
	CustomerID    string
	UserID        string
	Date          time.Time
	DocumentType  string
	State         string
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal // descuento global
	Tax           decimal.Decimal
	Total         decimal.Decimal
	PaymentMethod string
	Notes         string
	CreatedAt     time.Time
}

// SaleDetail representa una línea de venta. Inmutable después de creada.
type SaleDetail struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal // descuento por línea
	Subtotal  decimal.Decimal // Quantity × UnitPrice − Discount
}
