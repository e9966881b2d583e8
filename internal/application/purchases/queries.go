package purchases

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/comercial-pro/internal/application/dto"
	"github.com/tu-usuario/comercial-pro/internal/domain"
	"github.com/tu-usuario/comercial-pro/internal/domain/entity"
)

// GetPurchase devuelve una compra con sus líneas.
func (s *Service) GetPurchase(ctx context.Context, purchaseID string) (*dto.PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.GetByID(purchaseID)
	if err != nil || purchase == nil {
		return nil, domain.NewNotFound("compra", purchaseID)
	}
	details, err := s.purchaseRepo.GetDetails(purchaseID)
	if err != nil {
		return nil, err
	}
	var supplierName string
	if supplier, err := s.supplierRepo.GetByID(purchase.SupplierID); err == nil && supplier != nil {
		supplierName = supplier.CompanyName
	}
	return toPurchaseResponse(purchase, supplierName, details), nil
}

// ListByState lista compras por estado, paginadas.
func (s *Service) ListByState(ctx context.Context, state string, page dto.PageRequest) ([]*dto.PurchaseResponse, error) {
	if state != entity.PurchaseStatePendiente &&
		state != entity.PurchaseStateRecibida &&
		state != entity.PurchaseStateCancelada {
		return nil, domain.NewInvalidInput("state", "debe ser pendiente, recibida o cancelada")
	}
	page.DefaultPage()
	list, err := s.purchaseRepo.ListByState(state, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPurchaseResponse(p, "", nil))
	}
	return out, nil
}

// PeriodStats estadísticas de compras en [from, to]. El gasto solo cuenta
// compras recibidas: lo pendiente aún no es mercadería ni egreso real.
func (s *Service) PeriodStats(ctx context.Context, from, to time.Time) (*dto.PurchasesPeriodStats, error) {
	if to.Before(from) {
		return nil, domain.NewInvalidInput("to", "debe ser posterior a from")
	}
	list, err := s.purchaseRepo.ListByDateRange(from, to)
	if err != nil {
		return nil, err
	}

	stats := &dto.PurchasesPeriodStats{
		From: from.Format("2006-01-02"),
		To:   to.Format("2006-01-02"),
	}
	for _, p := range list {
		stats.TotalPurchases++
		switch p.State {
		case entity.PurchaseStateRecibida:
			stats.ReceivedCount++
			stats.TotalSpent = stats.TotalSpent.Add(p.Total)
		case entity.PurchaseStatePendiente:
			stats.PendingCount++
		}
	}
	if stats.ReceivedCount > 0 {
		stats.AveragePurchase = stats.TotalSpent.Div(decimal.NewFromInt(int64(stats.ReceivedCount))).Round(2)
	}
	return stats, nil
}
