package repository

import (
	"time"

	"github.com/tu-usuario/comercial-pro/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas (cabecera +
// detalle). Los detalles son inmutables después de creados; el único update
// permitido sobre la cabecera es el cambio de estado a anulada.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateDetail(detail *entity.SaleDetail) error
	GetByID(id string) (*entity.Sale, error)
	GetDetails(saleID string) ([]*entity.SaleDetail, error)
	UpdateState(id, state string) error

	// LastNumber devuelve el número más alto emitido para el prefijo y año
	// dados ("" si aún no hay documentos ese año).
	LastNumber(prefix string, year int) (string, error)

	ListByState(state string, limit, offset int) ([]*entity.Sale, error)
	ListByDate(date time.Time) ([]*entity.Sale, error)
	ListByDateRange(from, to time.Time) ([]*entity.Sale, error)
}
