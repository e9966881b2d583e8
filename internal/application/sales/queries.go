package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/comercial-pro/internal/application/dto"
	"github.com/tu-usuario/comercial-pro/internal/domain"
	"github.com/tu-usuario/comercial-pro/internal/domain/entity"
)

// GetSale devuelve una venta con sus líneas.
func (s *Service) GetSale(ctx context.Context, saleID string) (*dto.SaleResponse, error) {
	sale, err := s.saleRepo.GetByID(saleID)
	if err != nil || sale == nil {
		return nil, domain.NewNotFound("venta", saleID)
	}
	details, err := s.saleRepo.GetDetails(saleID)
	if err != nil {
		return nil, err
	}
	var customerName string
	if customer, err := s.customerRepo.GetByID(sale.CustomerID); err == nil && customer != nil {
		customerName = customer.FullName()
	}
	return toSaleResponse(sale, customerName, details), nil
}

// ListByState lista ventas por estado, paginadas.
func (s *Service) ListByState(ctx context.Context, state string, page dto.PageRequest) ([]*dto.SaleResponse, error) {
	if state != entity.SaleStateCompletada && state != entity.SaleStateAnulada {
		return nil, domain.NewInvalidInput("state", "debe ser completada o anulada")
	}
	page.DefaultPage()
	list, err := s.saleRepo.ListByState(state, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SaleResponse, 0, len(list))
	for _, sale := range list {
		out = append(out, toSaleResponse(sale, "", nil))
	}
	return out, nil
}

// DaySales resumen de las ventas de un día (cierre de caja). Las anuladas se
// listan pero no suman al total.
func (s *Service) DaySales(ctx context.Context, date time.Time) (*dto.DaySalesReport, error) {
	list, err := s.saleRepo.ListByDate(date)
	if err != nil {
		return nil, err
	}
	report := &dto.DaySalesReport{Date: date.Format("2006-01-02")}
	for _, sale := range list {
		report.Sales = append(report.Sales, *toSaleResponse(sale, "", nil))
		if sale.State == entity.SaleStateCompletada {
			report.Count++
			report.Total = report.Total.Add(sale.Total)
		}
	}
	return report, nil
}

// PeriodStats estadísticas de ventas completadas en [from, to]: totales,
// ticket promedio/mínimo/máximo y desglose por método de pago.
func (s *Service) PeriodStats(ctx context.Context, from, to time.Time) (*dto.SalesPeriodStats, error) {
	if to.Before(from) {
		return nil, domain.NewInvalidInput("to", "debe ser posterior a from")
	}
	list, err := s.saleRepo.ListByDateRange(from, to)
	if err != nil {
		return nil, err
	}

	stats := &dto.SalesPeriodStats{
		ByPayment: make(map[string]dto.PaymentBreakdown),
		From:      from.Format("2006-01-02"),
		To:        to.Format("2006-01-02"),
	}
	for _, sale := range list {
		if sale.State != entity.SaleStateCompletada {
			continue
		}
		stats.TotalSales++
		stats.TotalSold = stats.TotalSold.Add(sale.Total)
		stats.TotalDiscounts = stats.TotalDiscounts.Add(sale.Discount)
		if stats.TotalSales == 1 || sale.Total.LessThan(stats.MinTicket) {
			stats.MinTicket = sale.Total
		}
		if sale.Total.GreaterThan(stats.MaxTicket) {
			stats.MaxTicket = sale.Total
		}
		bp := stats.ByPayment[sale.PaymentMethod]
		bp.Count++
		bp.Amount = bp.Amount.Add(sale.Total)
		stats.ByPayment[sale.PaymentMethod] = bp
	}
	if stats.TotalSales > 0 {
		stats.AverageTicket = stats.TotalSold.Div(decimal.NewFromInt(int64(stats.TotalSales))).Round(2)
	}
	return stats, nil
}
