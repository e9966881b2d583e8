package purchases

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/comercial-pro/internal/application/dto"
	"github.com/tu-usuario/comercial-pro/internal/domain/entity"
	"github.com/tu-usuario/comercial-pro/internal/domain/repository"
	"github.com/tu-usuario/comercial-pro/pkg/logger"
)

// DefaultTaxRate IGV 18%.
var DefaultTaxRate = decimal.NewFromFloat(0.18)

// Service agrupa los casos de uso de compras a proveedor: registrar la orden,
// recibirla (única operación que suma stock), cancelarla y consultar.
type Service struct {
	txRunner     TxRunner
	purchaseRepo repository.PurchaseRepository
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	log          *logger.Logger
}

// NewService construye el servicio de compras.
func NewService(
	txRunner TxRunner,
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	log *logger.Logger,
) *Service {
	return &Service{
		txRunner:     txRunner,
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		log:          log,
	}
}

func taxRateDecimal(rate decimal.Decimal) decimal.Decimal {
	if rate.GreaterThan(decimal.NewFromInt(1)) {
		return rate.Div(decimal.NewFromInt(100))
	}
	return rate
}

func toPurchaseResponse(p *entity.Purchase, supplierName string, details []*entity.PurchaseDetail) *dto.PurchaseResponse {
	resp := &dto.PurchaseResponse{
		ID:           p.ID,
		Number:       p.Number,
		SupplierID:   p.SupplierID,
		SupplierName: supplierName,
		Date:         p.Date.Format("2006-01-02"),
		State:        p.State,
		Subtotal:     p.Subtotal,
		Tax:          p.Tax,
		Total:        p.Total,
		LineCount:    len(details),
	}
	if p.ReceivedDate != nil {
		resp.ReceivedDate = p.ReceivedDate.Format("2006-01-02")
	}
	for _, d := range details {
		resp.Lines = append(resp.Lines, dto.PurchaseLineResponse{
			ID:        d.ID,
			ProductID: d.ProductID,
			Quantity:  d.Quantity,
			UnitPrice: d.UnitPrice,
			Subtotal:  d.Subtotal,
		})
	}
	return resp
}
