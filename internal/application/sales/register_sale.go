package sales

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

// RegisterSale confirma una venta: valida cliente, líneas y precios fuera de
// la transacción; dentro de ella numera el comprobante, bloquea cada producto
// (FOR UPDATE), re-verifica stock, descuenta y registra la salida de
// inventario junto con cabecera y detalles. Cualquier error revierte todo.
func (s *Service) RegisterSale(ctx context.Context, userID string, in dto.RegisterSaleRequest) (*dto.SaleResponse, error) {
	if in.CustomerID == "" {
		return nil, domain.NewInvalidInput("customer_id", "es obligatorio")
	}
	if len(in.Lines) == 0 {
		return nil, domain.NewInvalidInput("lines", "la venta debe tener al menos una línea")
	}
	if !entity.ValidDocType(in.DocumentType) {
		return nil, domain.NewInvalidInput("document_type", "debe ser boleta, factura o ticket")
	}
	if !entity.ValidPaymentMethod(in.PaymentMethod) {
		return nil, domain.NewInvalidInput("payment_method", "debe ser efectivo, tarjeta o transferencia")
	}
	if in.GlobalDiscount.IsNegative() {
		return nil, domain.NewInvalidInput("global_discount", "no puede ser negativo")
	}

	customer, err := s.customerRepo.GetByID(in.CustomerID)
	if err != nil || customer == nil {
		return nil, domain.NewNotFound("cliente", in.CustomerID)
	}

	// Validación de líneas fuera de la tx (solo lectura). El chequeo de
	// stock definitivo se hace dentro, con la fila bloqueada.
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
		if line.Discount.IsNegative() {
			return nil, domain.NewInvalidInput(field+".discount", "no puede ser negativo")
		}
		product, err := s.productRepo.GetByID(line.ProductID)
		if err != nil || product == nil {
			return nil, domain.NewNotFound("producto", line.ProductID)
		}
		if !product.Active {
			return nil, domain.NewInvalidInput(field+".product_id", "el producto está inactivo")
		}
	}

	// Totales: subtotal por línea = cantidad × precio − descuento de línea;
	// el IGV se aplica sobre la base ya descontada.
	var subtotal decimal.Decimal
	lineSubtotals := make([]decimal.Decimal, len(in.Lines))
	for i, line := range in.Lines {
		ls := decimal.NewFromInt(int64(line.Quantity)).Mul(line.UnitPrice).Sub(line.Discount)
		if ls.IsNegative() {
			return nil, domain.NewInvalidInput(fmt.Sprintf("lines[%d].discount", i), "el descuento excede el importe de la línea")
		}
		lineSubtotals[i] = ls
		subtotal = subtotal.Add(ls)
	}
	if in.GlobalDiscount.GreaterThan(subtotal) {
		return nil, domain.NewInvalidInput("global_discount", "el descuento excede el subtotal de la venta")
	}

	rate := DefaultTaxRate
	if in.TaxRate != nil {
		if in.TaxRate.IsNegative() {
			return nil, domain.NewInvalidInput("tax_rate", "no puede ser negativa")
		}
		rate = taxRateDecimal(*in.TaxRate)
	}
	base := subtotal.Sub(in.GlobalDiscount)
	tax := base.Mul(rate).Round(2)
	total := base.Add(tax)

	date := time.Now()
	if in.Date != nil {
		date = *in.Date
	}

	saleID := uuid.New().String()
	sale := &entity.Sale{
		ID:            saleID,
		CustomerID:    in.CustomerID,
		UserID:        userID,
		Date:          date,
		DocumentType:  in.DocumentType,
		State:         entity.SaleStateCompletada,
		Subtotal:      subtotal.Round(2),
		Discount:      in.GlobalDiscount.Round(2),
		Tax:           tax,
		Total:         total.Round(2),
		PaymentMethod: in.PaymentMethod,
		Notes:         in.Notes,
		CreatedAt:     time.Now(),
	}
	var details []*entity.SaleDetail

	err = s.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
	) error {
		// 1) Numeración correlativa por prefijo y año, dentro de la tx
		// para que dos ventas concurrentes no compartan número.
		prefix := docnumber.SalePrefix(in.DocumentType)
		last, err := saleRepo.LastNumber(prefix, date.Year())
		if err != nil {
			return fmt.Errorf("obtener último número: %w", err)
		}
		sale.Number, err = docnumber.Next(last, prefix, date.Year(), docnumber.SaleSeqWidth)
		if err != nil {
			return err
		}

		if err := saleRepo.Create(sale); err != nil {
			return fmt.Errorf("crear venta: %w", err)
		}

		// 2) Por cada línea: bloquear producto, re-verificar stock,
		// descontar y dejar el movimiento de salida.
		for i, line := range in.Lines {
			product, err := productRepo.GetForUpdate(line.ProductID)
			if err != nil || product == nil {
				return domain.NewNotFound("producto", line.ProductID)
			}
			if product.Stock < line.Quantity {
				return domain.NewInsufficientStock(product.Name, product.Stock, line.Quantity)
			}
			if err := productRepo.AdjustStock(line.ProductID, -line.Quantity); err != nil {
				return fmt.Errorf("descontar stock: %w", err)
			}

			ref := saleID
			if err := movementRepo.Create(&entity.Movement{
				ID:          uuid.New().String(),
				ProductID:   line.ProductID,
				Type:        entity.MovementSalida,
				Quantity:    line.Quantity,
				Motive:      entity.MotiveVenta,
				ReferenceID: &ref,
				StockBefore: product.Stock,
				StockAfter:  product.Stock - line.Quantity,
				UserID:      userID,
				Notes:       fmt.Sprintf("Salida por venta %s", sale.Number),
				CreatedAt:   time.Now(),
			}); err != nil {
				return fmt.Errorf("registrar movimiento: %w", err)
			}

			detail := &entity.SaleDetail{
				ID:        uuid.New().String(),
				SaleID:    saleID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
				Discount:  line.Discount,
				Subtotal:  lineSubtotals[i].Round(2),
			}
			if err := saleRepo.CreateDetail(detail); err != nil {
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
		Str("sale_id", sale.ID).
		Str("number", sale.Number).
		Str("total", sale.Total.String()).
		Int("lines", len(details)).
		Msg("venta registrada")

	return toSaleResponse(sale, customer.FullName(), details), nil
}
