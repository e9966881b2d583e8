package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementEntrada = "entrada"
	MovementSalida  = "salida"
	MovementAjuste  = "ajuste"
)

// Motivos estándar de movimiento. Motive admite también texto libre en
// ajustes manuales (ej: "merma", "inventario físico").
const (
	MotiveVenta     = "venta"
	MotiveCompra    = "compra"
	MotiveAnulacion = "anulación de venta"
)

// Movement es un registro append-only de cambio de stock: cada delta aplicado
// al Stock de un producto deja exactamente un Movement en la misma
// transacción, con snapshot antes/después.
type Movement struct {
	ID          string
	ProductID   string
	Type        string // entrada | salida | ajuste
	Quantity    int    // magnitud, siempre positiva; el signo lo da Type y los snapshots
	Motive      string
	ReferenceID *string // venta o compra origen; nil en ajustes manuales
	StockBefore int
	StockAfter  int
	UserID      string
	Notes       string
	CreatedAt   time.Time
}
