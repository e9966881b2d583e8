package repository

import (
	"time"

	"github.com/tu-usuario/comercial-pro/internal/domain/entity"
)

// PurchaseRepository define el puerto de persistencia para compras (cabecera
// + detalle).
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	CreateDetail(detail *entity.PurchaseDetail) error
	GetByID(id string) (*entity.Purchase, error)
	GetDetails(purchaseID string) ([]*entity.PurchaseDetail, error)

	// UpdateState cambia el estado; receivedDate solo se estampa al recibir.
	UpdateState(id, state string, receivedDate *time.Time) error

	LastNumber(prefix string, year int) (string, error)

	ListByState(state string, limit, offset int) ([]*entity.Purchase, error)
	ListByDateRange(from, to time.Time) ([]*entity.Purchase, error)
}
