package entity

import "time"

// Supplier representa un proveedor (vendedor en compras).
type Supplier struct {
	ID          string
	RUC         string
	CompanyName string // razón social
	Contact     string
	Phone       string
	Email       string
	Address     string
	Active      bool
	CreatedAt   time.Time
}
