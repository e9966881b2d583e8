package inventory

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/comercial-pro/internal/application/dto"
	"github.com/tu-usuario/comercial-pro/internal/domain"
	"github.com/tu-usuario/comercial-pro/internal/domain/entity"
)

const defaultHistoryLimit = 50

// MovementHistory devuelve movimientos según el primer filtro presente:
// rango de fechas, tipo, producto; sin filtros, los más recientes.
func (s *Service) MovementHistory(ctx context.Context, in dto.MovementHistoryRequest) ([]*dto.MovementResponse, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	var (
		list []*entity.Movement
		err  error
	)
	switch {
	case in.From != nil && in.To != nil:
		if in.To.Before(*in.From) {
			return nil, domain.NewInvalidInput("to", "debe ser posterior a from")
		}
		list, err = s.movementRepo.ListByDateRange(*in.From, *in.To)
	case in.Type != "":
		if in.Type != entity.MovementEntrada && in.Type != entity.MovementSalida && in.Type != entity.MovementAjuste {
			return nil, domain.NewInvalidInput("type", "debe ser entrada, salida o ajuste")
		}
		list, err = s.movementRepo.ListByType(in.Type, limit)
	case in.ProductID != "":
		list, err = s.movementRepo.ListByProduct(in.ProductID, limit)
	default:
		list, err = s.movementRepo.ListRecent(limit)
	}
	if err != nil {
		return nil, err
	}

	out := make([]*dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMovementResponse(m))
	}
	return out, nil
}

// LowStockProducts lista los productos activos en o por debajo de su stock
// mínimo.
func (s *Service) LowStockProducts(ctx context.Context) ([]*dto.ProductResponse, error) {
	list, err := s.productRepo.ListLowStock()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.ToProductResponse(p))
	}
	return out, nil
}

// Valuation valoriza el inventario activo a precio de compra y de venta.
func (s *Service) Valuation(ctx context.Context) (*dto.InventoryValuation, error) {
	list, err := s.productRepo.ListActive(0, 0) // limit 0: sin paginar
	if err != nil {
		return nil, err
	}

	v := &dto.InventoryValuation{}
	for _, p := range list {
		v.TotalProducts++
		if p.Stock == 0 {
			continue
		}
		stock := decimal.NewFromInt(int64(p.Stock))
		v.TotalUnits += p.Stock
		v.PurchaseValue = v.PurchaseValue.Add(stock.Mul(p.PurchasePrice))
		v.SaleValue = v.SaleValue.Add(stock.Mul(p.SalePrice))
	}
	v.PurchaseValue = v.PurchaseValue.Round(2)
	v.SaleValue = v.SaleValue.Round(2)
	v.PotentialProfit = v.SaleValue.Sub(v.PurchaseValue)
	if v.PurchaseValue.GreaterThan(decimal.Zero) {
		v.MarginPercentage = v.PotentialProfit.
			Div(v.PurchaseValue).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}
	return v, nil
}

// Rotation calcula la rotación de productos en el rango consultado a partir
// del ledger de movimientos: cuenta solo salidas por venta. Devuelve además
// los días de inventario estimados al ritmo de venta del período.
func (s *Service) Rotation(ctx context.Context, in dto.MovementHistoryRequest) ([]*dto.RotationEntry, error) {
	if in.From == nil || in.To == nil {
		return nil, domain.NewInvalidInput("from", "el rango de fechas es obligatorio")
	}
	if in.To.Before(*in.From) {
		return nil, domain.NewInvalidInput("to", "debe ser posterior a from")
	}
	movements, err := s.movementRepo.ListByDateRange(*in.From, *in.To)
	if err != nil {
		return nil, err
	}

	type acc struct {
		units int
		count int
	}
	sold := make(map[string]*acc)
	for _, m := range movements {
		if m.Type != entity.MovementSalida || m.Motive != entity.MotiveVenta {
			continue
		}
		a := sold[m.ProductID]
		if a == nil {
			a = &acc{}
			sold[m.ProductID] = a
		}
		a.units += m.Quantity
		a.count++
	}

	days := decimal.NewFromFloat(in.To.Sub(*in.From).Hours() / 24)
	if days.LessThan(decimal.NewFromInt(1)) {
		days = decimal.NewFromInt(1)
	}

	out := make([]*dto.RotationEntry, 0, len(sold))
	for productID, a := range sold {
		product, err := s.productRepo.GetByID(productID)
		if err != nil || product == nil {
			continue
		}
		entry := &dto.RotationEntry{
			ProductID:  productID,
			Code:       product.Code,
			Name:       product.Name,
			Stock:      product.Stock,
			UnitsSold:  a.units,
			SalesCount: a.count,
		}
		unitsSold := decimal.NewFromInt(int64(a.units))
		if product.Stock > 0 {
			entry.RotationRate = unitsSold.
				Div(decimal.NewFromInt(int64(product.Stock))).
				Round(2)
		}
		dailyRate := unitsSold.Div(days)
		if dailyRate.GreaterThan(decimal.Zero) {
			entry.InventoryDays = decimal.NewFromInt(int64(product.Stock)).
				Div(dailyRate).
				Round(1)
		}
		out = append(out, entry)
	}
	return out, nil
}

// ProductsWithoutMovement lista productos activos sin ningún movimiento en el
// rango dado: candidatos a liquidación o a revisar el catálogo.
func (s *Service) ProductsWithoutMovement(ctx context.Context, in dto.MovementHistoryRequest) ([]*dto.ProductResponse, error) {
	if in.From == nil || in.To == nil {
		return nil, domain.NewInvalidInput("from", "el rango de fechas es obligatorio")
	}
	movements, err := s.movementRepo.ListByDateRange(*in.From, *in.To)
	if err != nil {
		return nil, err
	}
	moved := make(map[string]bool, len(movements))
	for _, m := range movements {
		moved[m.ProductID] = true
	}

	products, err := s.productRepo.ListActive(0, 0)
	if err != nil {
		return nil, err
	}
	var out []*dto.ProductResponse
	for _, p := range products {
		if !moved[p.ID] {
			out = append(out, dto.ToProductResponse(p))
		}
	}
	return out, nil
}
