package sales

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/comercial-pro/internal/application/dto"
	"github.com/tu-usuario/comercial-pro/internal/domain/entity"
	"github.com/tu-usuario/comercial-pro/internal/domain/repository"
	"github.com/tu-usuario/comercial-pro/pkg/logger"
)

// DefaultTaxRate IGV 18%.
var DefaultTaxRate = decimal.NewFromFloat(0.18)

// Service agrupa los casos de uso de ventas: registrar, anular y consultar.
type Service struct {
	txRunner     TxRunner
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	log          *logger.Logger
}

// NewService construye el servicio de ventas.
func NewService(
	txRunner TxRunner,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	log *logger.Logger,
) *Service {
	return &Service{
		txRunner:     txRunner,
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		log:          log,
	}
}

// taxRateDecimal normaliza la tasa: valores > 1 se interpretan como
// porcentaje (18 -> 0.18).
func taxRateDecimal(rate decimal.Decimal) decimal.Decimal {
	if rate.GreaterThan(decimal.NewFromInt(1)) {
		return rate.Div(decimal.NewFromInt(100))
	}
	return rate
}

func toSaleResponse(s *entity.Sale, customerName string, details []*entity.SaleDetail) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:            s.ID,
		Number:        s.Number,
		CustomerID:    s.CustomerID,
		CustomerName:  customerName,
		Date:          s.Date.Format("2006-01-02"),
		DocumentType:  s.DocumentType,
		State:         s.State,
		Subtotal:      s.Subtotal,
		Discount:      s.Discount,
		Tax:           s.Tax,
		Total:         s.Total,
		PaymentMethod: s.PaymentMethod,
		LineCount:     len(details),
	}
	for _, d := range details {
		resp.Lines = append(resp.Lines, dto.SaleLineResponse{
			ID:        d.ID,
			ProductID: d.ProductID,
			Quantity:  d.Quantity,
			UnitPrice: d.UnitPrice,
			Discount:  d.Discount,
			Subtotal:  d.Subtotal,
		})
	}
	return resp
}
