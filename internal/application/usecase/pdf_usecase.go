package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/comercial-pro/internal/domain"
	"github.com/tu-usuario/comercial-pro/internal/domain/entity"
	"github.com/tu-usuario/comercial-pro/internal/domain/repository"
	"github.com/tu-usuario/comercial-pro/pkg/logger"
)

// ReceiptLine línea de venta resuelta para imprimir (con nombre de producto).
type ReceiptLine struct {
	ProductName string
	ProductCode string
	Quantity    int
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal
	Subtotal    decimal.Decimal
}

// ReceiptPDFGenerator genera el comprobante de una venta en PDF.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, sale *entity.Sale, customer *entity.Customer, lines []ReceiptLine) ([]byte, error)
}

// PDFUseCase arma el comprobante imprimible de una venta: resuelve cliente y
// nombres de producto y delega el render al generador.
type PDFUseCase struct {
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	generator    ReceiptPDFGenerator
	log          *logger.Logger
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	generator ReceiptPDFGenerator,
	log *logger.Logger,
) *PDFUseCase {
	return &PDFUseCase{
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		generator:    generator,
		log:          log,
	}
}

// SaleReceiptPDF genera el PDF del comprobante y devuelve los bytes y un
// nombre de archivo sugerido.
func (uc *PDFUseCase) SaleReceiptPDF(ctx context.Context, saleID string) ([]byte, string, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil || sale == nil {
		return nil, "", domain.NewNotFound("venta", saleID)
	}
	details, err := uc.saleRepo.GetDetails(saleID)
	if err != nil {
		return nil, "", err
	}
	customer, err := uc.customerRepo.GetByID(sale.CustomerID)
	if err != nil || customer == nil {
		return nil, "", domain.NewNotFound("cliente", sale.CustomerID)
	}

	lines := make([]ReceiptLine, 0, len(details))
	for _, d := range details {
		line := ReceiptLine{
			Quantity:  d.Quantity,
			UnitPrice: d.UnitPrice,
			Discount:  d.Discount,
			Subtotal:  d.Subtotal,
		}
		if product, err := uc.productRepo.GetByID(d.ProductID); err == nil && product != nil {
			line.ProductName = product.Name
			line.ProductCode = product.Code
		} else {
			line.ProductName = d.ProductID
		}
		lines = append(lines, line)
	}

	pdfBytes, err := uc.generator.GenerateReceiptPDF(ctx, sale, customer, lines)
	if err != nil {
		return nil, "", fmt.Errorf("generar comprobante: %w", err)
	}

	uc.log.Debug().Str("sale_id", saleID).Int("bytes", len(pdfBytes)).Msg("comprobante generado")
	return pdfBytes, fmt.Sprintf("%s.pdf", sale.Number), nil
}
