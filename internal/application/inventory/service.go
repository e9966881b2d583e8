package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/comercial-pro/internal/application/dto"
	"github.com/tu-usuario/comercial-pro/internal/domain"
	"github.com/tu-usuario/comercial-pro/internal/domain/entity"
	"github.com/tu-usuario/comercial-pro/internal/domain/repository"
	"github.com/tu-usuario/comercial-pro/pkg/logger"
)

// Service agrupa los casos de uso de inventario: ajustes manuales, historial
// de movimientos y reportes (valorización, rotación, stock crítico).
type Service struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
	log          *logger.Logger
}

// NewService construye el servicio de inventario.
func NewService(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
	log *logger.Logger,
) *Service {
	return &Service{
		txRunner:     txRunner,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		log:          log,
	}
}

// AdjustInventory fija el stock absoluto de un producto (conteo físico,
// merma, corrección). Registra un movimiento de ajuste con la magnitud del
// delta y snapshots antes/después; el sentido del cambio se lee de ellos.
func (s *Service) AdjustInventory(ctx context.Context, userID string, in dto.AdjustInventoryRequest) (*dto.MovementResponse, error) {
	if in.ProductID == "" {
		return nil, domain.NewInvalidInput("product_id", "es obligatorio")
	}
	if in.NewStock < 0 {
		return nil, domain.NewInvalidInput("new_stock", "no puede ser negativo")
	}
	if in.Reason == "" {
		return nil, domain.NewInvalidInput("reason", "es obligatorio")
	}

	var movement *entity.Movement
	err := s.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
	) error {
		product, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil || product == nil {
			return domain.NewNotFound("producto", in.ProductID)
		}
		// Un ajuste al mismo valor es válido (conteo físico que confirma el
		// stock): queda el movimiento con delta cero como constancia.
		delta := in.NewStock - product.Stock

		if err := productRepo.SetStock(in.ProductID, in.NewStock); err != nil {
			return fmt.Errorf("fijar stock: %w", err)
		}

		quantity := delta
		if quantity < 0 {
			quantity = -quantity
		}
		notes := in.Notes
		if notes == "" {
			notes = fmt.Sprintf("Ajuste de inventario: %s", in.Reason)
		}
		movement = &entity.Movement{
			ID:          uuid.New().String(),
			ProductID:   in.ProductID,
			Type:        entity.MovementAjuste,
			Quantity:    quantity,
			Motive:      in.Reason,
			StockBefore: product.Stock,
			StockAfter:  in.NewStock,
			UserID:      userID,
			Notes:       notes,
			CreatedAt:   time.Now(),
		}
		if err := movementRepo.Create(movement); err != nil {
			return fmt.Errorf("registrar movimiento: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("product_id", in.ProductID).
		Int("stock_before", movement.StockBefore).
		Int("stock_after", movement.StockAfter).
		Str("reason", in.Reason).
		Msg("ajuste de inventario")

	return toMovementResponse(movement), nil
}

func toMovementResponse(m *entity.Movement) *dto.MovementResponse {
	resp := &dto.MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		Type:        m.Type,
		Quantity:    m.Quantity,
		Motive:      m.Motive,
		StockBefore: m.StockBefore,
		StockAfter:  m.StockAfter,
		UserID:      m.UserID,
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt,
	}
	if m.ReferenceID != nil {
		resp.ReferenceID = *m.ReferenceID
	}
	return resp
}
