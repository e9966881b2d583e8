package usecase

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/comercial-pro/internal/application/dto"
	"github.com/tu-usuario/comercial-pro/internal/domain"
	"github.com/tu-usuario/comercial-pro/internal/domain/entity"
	"github.com/tu-usuario/comercial-pro/internal/domain/repository"
	"github.com/tu-usuario/comercial-pro/pkg/logger"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ProductUseCase CRUD de productos del catálogo. El stock no se edita por
// aquí: lo mueven ventas, compras y ajustes.
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	log          *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	log *logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, categoryRepo: categoryRepo, log: log}
}

// Create registra un producto nuevo. El código es único; el precio de venta
// no puede quedar por debajo del de compra.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if strings.TrimSpace(in.Code) == "" {
		return nil, domain.NewInvalidInput("code", "es obligatorio")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.NewInvalidInput("name", "es obligatorio")
	}
	if in.CategoryID == "" {
		return nil, domain.NewInvalidInput("category_id", "es obligatorio")
	}
	if in.PurchasePrice.IsNegative() {
		return nil, domain.NewInvalidInput("purchase_price", "no puede ser negativo")
	}
	if !in.SalePrice.GreaterThan(decimal.Zero) {
		return nil, domain.NewInvalidInput("sale_price", "debe ser mayor que cero")
	}
	if in.SalePrice.LessThan(in.PurchasePrice) {
		return nil, domain.NewInvalidInput("sale_price", "no puede ser menor que el precio de compra")
	}
	if in.Stock < 0 {
		return nil, domain.NewInvalidInput("stock", "no puede ser negativo")
	}
	if in.MinStock < 0 {
		return nil, domain.NewInvalidInput("min_stock", "no puede ser negativo")
	}

	if category, err := uc.categoryRepo.GetByID(in.CategoryID); err != nil || category == nil {
		return nil, domain.NewNotFound("categoría", in.CategoryID)
	}
	if existing, _ := uc.productRepo.GetByCode(in.Code); existing != nil {
		return nil, domain.ErrDuplicate
	}

	unit := in.Unit
	if unit == "" {
		unit = "unidad"
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		Code:          strings.TrimSpace(in.Code),
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		CategoryID:    in.CategoryID,
		PurchasePrice: in.PurchasePrice,
		SalePrice:     in.SalePrice,
		Stock:         in.Stock,
		MinStock:      in.MinStock,
		Unit:          unit,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}

	uc.log.Info().Str("product_id", product.ID).Str("code", product.Code).Msg("producto creado")
	return dto.ToProductResponse(product), nil
}

// GetByID devuelve un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil || product == nil {
		return nil, domain.NewNotFound("producto", id)
	}
	return dto.ToProductResponse(product), nil
}

// List devuelve productos activos paginados.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.productRepo.ListActive(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.ProductListResponse{
		Items: make([]dto.ProductResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, p := range list {
		resp.Items = append(resp.Items, *dto.ToProductResponse(p))
	}
	return resp, nil
}

// Search busca por nombre o código. El término se normaliza sin tildes para
// que "algodon" encuentre "algodón".
func (uc *ProductUseCase) Search(ctx context.Context, term string, limit int) ([]*dto.ProductResponse, error) {
	term = strings.TrimSpace(term)
	if len([]rune(term)) < 2 {
		return nil, domain.NewInvalidInput("q", "mínimo 2 caracteres")
	}
	if limit <= 0 {
		limit = 20
	}
	list, err := uc.productRepo.Search(removeAccents(term), limit)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.ToProductResponse(p))
	}
	return out, nil
}

// removeAccents descompone (NFD), elimina las marcas diacríticas y recompone.
func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Update modifica atributos del producto. Solo viaja lo que cambia; el stock
// queda explícitamente fuera.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil || product == nil {
		return nil, domain.NewNotFound("producto", id)
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.NewInvalidInput("name", "no puede ser vacío")
		}
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.CategoryID != nil {
		if category, err := uc.categoryRepo.GetByID(*in.CategoryID); err != nil || category == nil {
			return nil, domain.NewNotFound("categoría", *in.CategoryID)
		}
		product.CategoryID = *in.CategoryID
	}
	if in.PurchasePrice != nil {
		if in.PurchasePrice.IsNegative() {
			return nil, domain.NewInvalidInput("purchase_price", "no puede ser negativo")
		}
		product.PurchasePrice = *in.PurchasePrice
	}
	if in.SalePrice != nil {
		if !in.SalePrice.GreaterThan(decimal.Zero) {
			return nil, domain.NewInvalidInput("sale_price", "debe ser mayor que cero")
		}
		product.SalePrice = *in.SalePrice
	}
	if product.SalePrice.LessThan(product.PurchasePrice) {
		return nil, domain.NewInvalidInput("sale_price", "no puede ser menor que el precio de compra")
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, domain.NewInvalidInput("min_stock", "no puede ser negativo")
		}
		product.MinStock = *in.MinStock
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	product.UpdatedAt = time.Now()

	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// Deactivate baja lógica del producto; el historial de movimientos queda.
func (uc *ProductUseCase) Deactivate(ctx context.Context, id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil || product == nil {
		return domain.NewNotFound("producto", id)
	}
	return uc.productRepo.Deactivate(id)
}
