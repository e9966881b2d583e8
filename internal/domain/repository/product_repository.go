package repository

import "github.com/tu-usuario/comercial-pro/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// El stock del producto es el Stock Ledger: AdjustStock aplica deltas con
// signo y SetStock fija un valor absoluto (solo ajuste manual); ambos deben
// usarse dentro de una transacción junto a MovementRepository.Create.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCode(code string) (*entity.Product, error)
	ListActive(limit, offset int) ([]*entity.Product, error)
	ListLowStock() ([]*entity.Product, error)
	Search(term string, limit int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	Deactivate(id string) error

	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) dentro
	// de la transacción actual; fuera de una tx se comporta como GetByID.
	GetForUpdate(id string) (*entity.Product, error)
	AdjustStock(id string, delta int) error
	SetStock(id string, stock int) error
}
