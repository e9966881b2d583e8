package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/comercial-pro/internal/application/dto"
	"github.com/tu-usuario/comercial-pro/internal/domain"
	"github.com/tu-usuario/comercial-pro/internal/domain/entity"
	"github.com/tu-usuario/comercial-pro/internal/domain/repository"
)

// AnnulSale anula una venta completada: repone el stock de cada línea con su
// movimiento de entrada y marca la cabecera como anulada, todo en una
// transacción. La anulación es de una sola vía y solo aplica a ventas
// completadas.
func (s *Service) AnnulSale(ctx context.Context, userID, saleID string) (*dto.SaleResponse, error) {
	sale, err := s.saleRepo.GetByID(saleID)
	if err != nil || sale == nil {
		return nil, domain.NewNotFound("venta", saleID)
	}
	if sale.State != entity.SaleStateCompletada {
		return nil, domain.NewInvalidState("venta", sale.State, "anular")
	}

	var details []*entity.SaleDetail
	err = s.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
	) error {
		details, err = saleRepo.GetDetails(saleID)
		if err != nil {
			return fmt.Errorf("obtener detalles: %w", err)
		}

		for _, d := range details {
			product, err := productRepo.GetForUpdate(d.ProductID)
			if err != nil || product == nil {
				return domain.NewNotFound("producto", d.ProductID)
			}
			if err := productRepo.AdjustStock(d.ProductID, d.Quantity); err != nil {
				return fmt.Errorf("reponer stock: %w", err)
			}

			ref := saleID
			if err := movementRepo.Create(&entity.Movement{
				ID:          uuid.New().String(),
				ProductID:   d.ProductID,
				Type:        entity.MovementEntrada,
				Quantity:    d.Quantity,
				Motive:      entity.MotiveAnulacion,
				ReferenceID: &ref,
				StockBefore: product.Stock,
				StockAfter:  product.Stock + d.Quantity,
				UserID:      userID,
				Notes:       fmt.Sprintf("Entrada por anulación de venta %s", sale.Number),
				CreatedAt:   time.Now(),
			}); err != nil {
				return fmt.Errorf("registrar movimiento: %w", err)
			}
		}

		if err := saleRepo.UpdateState(saleID, entity.SaleStateAnulada); err != nil {
			return fmt.Errorf("actualizar estado: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sale.State = entity.SaleStateAnulada

	s.log.Info().
		Str("sale_id", sale.ID).
		Str("number", sale.Number).
		Msg("venta anulada")

	return toSaleResponse(sale, "", details), nil
}
