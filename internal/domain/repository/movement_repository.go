package repository

import (
	"time"

	"github.com/tu-usuario/comercial-pro/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para movimientos de
// inventario. Create es un insert puro: toda la lógica de negocio vive en los
// workflows; los movimientos nunca se actualizan ni se borran.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	ListByProduct(productID string, limit int) ([]*entity.Movement, error)
	ListByType(movementType string, limit int) ([]*entity.Movement, error)
	ListByDateRange(from, to time.Time) ([]*entity.Movement, error)
	ListRecent(limit int) ([]*entity.Movement, error)
}
