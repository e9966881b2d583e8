package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest una línea del borrador de venta que envía la capa de
// presentación al momento de confirmar (el "carrito" vive en el cliente; el
// core es stateless entre llamadas).
type SaleLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount,omitempty"`
}

// RegisterSaleRequest body para POST /api/ventas.
type RegisterSaleRequest struct {
	CustomerID     string            `json:"customer_id"`
	Lines          []SaleLineRequest `json:"lines"`
	DocumentType   string            `json:"document_type"`  // boleta | factura | ticket
	PaymentMethod  string            `json:"payment_method"` // efectivo | tarjeta | transferencia
	Date           *time.Time        `json:"date,omitempty"`
	GlobalDiscount decimal.Decimal   `json:"global_discount,omitempty"`
	TaxRate        *decimal.Decimal  `json:"tax_rate,omitempty"` // default 0.18
	Notes          string            `json:"notes,omitempty"`
}

// SaleResponse resumen de una venta registrada.
type SaleResponse struct {
	ID            string          `json:"id"`
	Number        string          `json:"number"`
	CustomerID    string          `json:"customer_id"`
	CustomerName  string          `json:"customer_name"`
	Date          string          `json:"date"`
	DocumentType  string          `json:"document_type"`
	State         string          `json:"state"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	LineCount     int             `json:"line_count"`
	Lines         []SaleLineResponse `json:"lines,omitempty"`
}

// SaleLineResponse una línea de venta en respuestas.
type SaleLineResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SalesPeriodStats estadísticas de ventas de un período.
type SalesPeriodStats struct {
	TotalSales     int                        `json:"total_sales"`
	TotalSold      decimal.Decimal            `json:"total_sold"`
	TotalDiscounts decimal.Decimal            `json:"total_discounts"`
	AverageTicket  decimal.Decimal            `json:"average_ticket"`
	MinTicket      decimal.Decimal            `json:"min_ticket"`
	MaxTicket      decimal.Decimal            `json:"max_ticket"`
	ByPayment      map[string]PaymentBreakdown `json:"by_payment_method"`
	From           string                     `json:"from"`
	To             string                     `json:"to"`
}

// PaymentBreakdown agregado por método de pago.
type PaymentBreakdown struct {
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// DaySalesReport ventas de un día para el cierre de caja.
type DaySalesReport struct {
	Date  string          `json:"date"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
	Sales []SaleResponse  `json:"sales"`
}
