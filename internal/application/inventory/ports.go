package inventory

import (
	"context"

	"github.com/tu-usuario/comercial-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repos de
// productos y movimientos. El ajuste de stock y su movimiento se confirman o
// revierten juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
	) error) error
}
