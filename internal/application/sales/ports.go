package sales

import (
	"context"

	"github.com/tu-usuario/comercial-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye los
// repos de ventas, productos y movimientos. Si fn retorna error se hace
// rollback completo: cabecera, detalles, stock y movimientos quedan intactos.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
	) error) error
}
