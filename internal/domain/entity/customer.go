package entity

import "time"

// Customer representa un cliente (comprador en ventas).
type Customer struct {
	ID        string
	Document  string // DNI o RUC
	Names     string
	Surnames  string
	Email     string
	Phone     string
	Address   string
	Active    bool
	CreatedAt time.Time
}

// FullName devuelve nombres y apellidos concatenados.
func (c *Customer) FullName() string {
	if c.Surnames == "" {
		return c.Names
	}
	return c.Names + " " + c.Surnames
}
