package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/comercial-pro/internal/domain/entity"
)

// CreateProductRequest body para POST /api/productos. Un solo nombre canónico
// por atributo: los campos desconocidos del JSON se descartan, no se mapean
// por alias.
type CreateProductRequest struct {
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	CategoryID    string          `json:"category_id"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	Stock         int             `json:"stock,omitempty"`
	MinStock      int             `json:"min_stock,omitempty"`
	Unit          string          `json:"unit,omitempty"`
}

// UpdateProductRequest body para PUT /api/productos/:id. Stock no se toca por
// aquí: se maneja vía ventas/compras/ajustes.
type UpdateProductRequest struct {
	Name          *string          `json:"name,omitempty"`
	Description   *string          `json:"description,omitempty"`
	CategoryID    *string          `json:"category_id,omitempty"`
	PurchasePrice *decimal.Decimal `json:"purchase_price,omitempty"`
	SalePrice     *decimal.Decimal `json:"sale_price,omitempty"`
	MinStock      *int             `json:"min_stock,omitempty"`
	Unit          *string          `json:"unit,omitempty"`
}

// ProductResponse representación de un producto en respuestas.
type ProductResponse struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	CategoryID    string          `json:"category_id"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	Stock         int             `json:"stock"`
	MinStock      int             `json:"min_stock"`
	Unit          string          `json:"unit,omitempty"`
	Active        bool            `json:"active"`
	LowStock      bool            `json:"low_stock"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToProductResponse mapea la entidad a su representación de respuesta.
func ToProductResponse(p *entity.Product) *ProductResponse {
	return &ProductResponse{
		ID:            p.ID,
		Code:          p.Code,
		Name:          p.Name,
		Description:   p.Description,
		CategoryID:    p.CategoryID,
		PurchasePrice: p.PurchasePrice,
		SalePrice:     p.SalePrice,
		Stock:         p.Stock,
		MinStock:      p.MinStock,
		Unit:          p.Unit,
		Active:        p.Active,
		LowStock:      p.LowStock(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
