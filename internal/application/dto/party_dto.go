package dto

import "time"

// CreateCustomerRequest body para POST /api/clientes.
type CreateCustomerRequest struct {
	Document string `json:"document"`
	Names    string `json:"names"`
	Surnames string `json:"surnames,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

// CustomerResponse representación de un cliente.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Document  string    `json:"document"`
	Names     string    `json:"names"`
	Surnames  string    `json:"surnames,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateSupplierRequest body para POST /api/proveedores.
type CreateSupplierRequest struct {
	RUC         string `json:"ruc"`
	CompanyName string `json:"company_name"`
	Contact     string `json:"contact,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	Address     string `json:"address,omitempty"`
}

// SupplierResponse representación de un proveedor.
type SupplierResponse struct {
	ID          string    `json:"id"`
	RUC         string    `json:"ruc"`
	CompanyName string    `json:"company_name"`
	Contact     string    `json:"contact,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Address     string    `json:"address,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateCategoryRequest body para POST /api/categorias.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CategoryResponse representación de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}
