package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin      = "admin"
	RoleVendedor   = "vendedor"
	RoleAlmacenero = "almacenero"
)

// User representa un usuario del sistema (vendedor, almacenero o admin).
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	FullName     string
	Role         string
	Active       bool
	CreatedAt    time.Time
}
