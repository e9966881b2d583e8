package purchases

import (
	"context"

	"github.com/tu-usuario/comercial-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye los
// repos de compras, productos y movimientos. Un error en fn revierte todo.
type TxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		purchaseRepo repository.PurchaseRepository,
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
	) error) error
}
