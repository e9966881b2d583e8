package purchases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/comercial-pro/internal/application/dto"
	"github.com/tu-usuario/comercial-pro/internal/domain"
	"github.com/tu-usuario/comercial-pro/internal/domain/docnumber"
	"github.com/tu-usuario/comercial-pro/internal/domain/entity"
	"github.com/tu-usuario/comercial-pro/internal/domain/repository"
)

// RegisterPurchase registra una orden de compra en estado pendiente. El stock
// no se toca: la mercadería entra recién al recibir la compra.
func (s *Service) RegisterPurchase(ctx context.Context, userID string, in dto.RegisterPurchaseRequest) (*dto.PurchaseResponse, error) {
	if in.SupplierID == "" {
		return nil, domain.NewInvalidInput("supplier_id", "es obligatorio")
	}
	if len(in.Lines) == 0 {
		return nil, domain.NewInvalidInput("lines", "la compra debe tener al menos una línea")
	}

	supplier, err := s.supplierRepo.GetByID(in.SupplierID)
	if err != nil || supplier == nil {
		return nil, domain.NewNotFound("proveedor", in.SupplierID)
	}

	var subtotal decimal.Decimal
	lineSubtotals := make([]decimal.Decimal, len(in.Lines))
	for i, line := range in.Lines {
		field := fmt.Sprintf("lines[%d]", i)
		if line.ProductID == "" {
			return nil, domain.NewInvalidInput(field+".product_id", "es obligatorio")
		}
		if line.Quantity <= 0 {
			return nil, domain.NewInvalidInput(field+".quantity", "debe ser mayor que cero")
		}
		if !line.UnitPrice.GreaterThan(decimal.Zero) {
			return nil, domain.NewInvalidInput(field+".unit_price", "debe ser mayor que cero")
		}
		product, err := s.productRepo.GetByID(line.ProductID)
		if err != nil || product == nil {
			return nil, domain.NewNotFound("producto", line.ProductID)
		}
		lineSubtotals[i] = decimal.NewFromInt(int64(line.Quantity)).Mul(line.UnitPrice)
		subtotal = subtotal.Add(lineSubtotals[i])
	}

	rate := DefaultTaxRate
	if in.TaxRate != nil {
		if in.TaxRate.IsNegative() {
			return nil, domain.NewInvalidInput("tax_rate", "no puede ser negativa")
		}
		rate = taxRateDecimal(*in.TaxRate)
	}
	tax := subtotal.Mul(rate).Round(2)
	total := subtotal.Add(tax)

	date := time.Now()
	if in.Date != nil {
		date = *in.Date
	}

	purchaseID := uuid.New().String()
	purchase := &entity.Purchase{
		ID:         purchaseID,
		SupplierID: in.SupplierID,
		UserID:     userID,
		Date:       date,
		State:      entity.PurchaseStatePendiente,
		Subtotal:   subtotal.Round(2),
		Tax:        tax,
		Total:      total.Round(2),
		Notes:      in.Notes,
		CreatedAt:  time.Now(),
	}
	var details []*entity.PurchaseDetail

	err = s.txRunner.RunPurchase(ctx, func(
		purchaseRepo repository.PurchaseRepository,
		_ repository.ProductRepository,
		_ repository.MovementRepository,
	) error {
		last, err := purchaseRepo.LastNumber(docnumber.PurchasePrefix, date.Year())
		if err != nil {
			return fmt.Errorf("obtener último número: %w", err)
		}
		purchase.Number, err = docnumber.Next(last, docnumber.PurchasePrefix, date.Year(), docnumber.PurchaseSeqWidth)
		if err != nil {
			return err
		}

		if err := purchaseRepo.Create(purchase); err != nil {
			return fmt.Errorf("crear compra: %w", err)
		}
		for i, line := range in.Lines {
			detail := &entity.PurchaseDetail{
				ID:         uuid.New().String(),
				PurchaseID: purchaseID,
				ProductID:  line.ProductID,
				Quantity:   line.Quantity,
				UnitPrice:  line.UnitPrice,
				Subtotal:   lineSubtotals[i].Round(2),
			}
			if err := purchaseRepo.CreateDetail(detail); err != nil {
				return fmt.Errorf("crear detalle: %w", err)
			}
			details = append(details, detail)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("purchase_id", purchase.ID).
		Str("number", purchase.Number).
		Str("total", purchase.Total.String()).
		Msg("compra registrada")

	return toPurchaseResponse(purchase, supplier.CompanyName, details), nil
}

// ReceivePurchase marca una compra pendiente como recibida: suma el stock de
// cada línea con su movimiento de entrada y estampa la fecha de recepción,
// todo en una transacción.
func (s *Service) ReceivePurchase(ctx context.Context, userID, purchaseID string, in dto.ReceivePurchaseRequest) (*dto.PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.GetByID(purchaseID)
	if err != nil || purchase == nil {
		return nil, domain.NewNotFound("compra", purchaseID)
	}
	if purchase.State != entity.PurchaseStatePendiente {
		return nil, domain.NewInvalidState("compra", purchase.State, "recibir")
	}

	receivedDate := time.Now()
	if in.ReceivedDate != nil {
		receivedDate = *in.ReceivedDate
	}

	var details []*entity.PurchaseDetail
	err = s.txRunner.RunPurchase(ctx, func(
		purchaseRepo repository.PurchaseRepository,
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
	) error {
		details, err = purchaseRepo.GetDetails(purchaseID)
		if err != nil {
			return fmt.Errorf("obtener detalles: %w", err)
		}

		for _, d := range details {
			product, err := productRepo.GetForUpdate(d.ProductID)
			if err != nil || product == nil {
				return domain.NewNotFound("producto", d.ProductID)
			}
			if err := productRepo.AdjustStock(d.ProductID, d.Quantity); err != nil {
				return fmt.Errorf("sumar stock: %w", err)
			}

			ref := purchaseID
			if err := movementRepo.Create(&entity.Movement{
				ID:          uuid.New().String(),
				ProductID:   d.ProductID,
				Type:        entity.MovementEntrada,
				Quantity:    d.Quantity,
				Motive:      entity.MotiveCompra,
				ReferenceID: &ref,
				StockBefore: product.Stock,
				StockAfter:  product.Stock + d.Quantity,
				UserID:      userID,
				Notes:       fmt.Sprintf("Entrada por compra %s", purchase.Number),
				CreatedAt:   time.Now(),
			}); err != nil {
				return fmt.Errorf("registrar movimiento: %w", err)
			}
		}

		if err := purchaseRepo.UpdateState(purchaseID, entity.PurchaseStateRecibida, &receivedDate); err != nil {
			return fmt.Errorf("actualizar estado: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	purchase.State = entity.PurchaseStateRecibida
	purchase.ReceivedDate = &receivedDate

	s.log.Info().
		Str("purchase_id", purchase.ID).
		Str("number", purchase.Number).
		Msg("compra recibida")

	return toPurchaseResponse(purchase, "", details), nil
}

// CancelPurchase cancela una compra pendiente. Las recibidas no se cancelan
// (su stock ya entró); las canceladas son terminales.
func (s *Service) CancelPurchase(ctx context.Context, purchaseID string) (*dto.PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.GetByID(purchaseID)
	if err != nil || purchase == nil {
		return nil, domain.NewNotFound("compra", purchaseID)
	}
	if purchase.State != entity.PurchaseStatePendiente {
		return nil, domain.NewInvalidState("compra", purchase.State, "cancelar")
	}
	if err := s.purchaseRepo.UpdateState(purchaseID, entity.PurchaseStateCancelada, nil); err != nil {
		return nil, fmt.Errorf("actualizar estado: %w", err)
	}
	purchase.State = entity.PurchaseStateCancelada

	s.log.Info().
		Str("purchase_id", purchase.ID).
		Str("number", purchase.Number).
		Msg("compra cancelada")

	return toPurchaseResponse(purchase, "", nil), nil
}
