package repository

import "github.com/tu-usuario/comercial-pro/internal/domain/entity"

// SupplierRepository define el puerto de persistencia para Supplier (DIP).
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	GetByRUC(ruc string) (*entity.Supplier, error)
	ListActive(limit, offset int) ([]*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	Deactivate(id string) error
}
