package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/comercial-pro/internal/application/dto"
	"github.com/tu-usuario/comercial-pro/internal/domain"
	"github.com/tu-usuario/comercial-pro/internal/domain/entity"
	"github.com/tu-usuario/comercial-pro/internal/domain/repository"
	"github.com/tu-usuario/comercial-pro/pkg/logger"
)

// SupplierUseCase CRUD de proveedores.
type SupplierUseCase struct {
	supplierRepo repository.SupplierRepository
	log          *logger.Logger
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(supplierRepo repository.SupplierRepository, log *logger.Logger) *SupplierUseCase {
	return &SupplierUseCase{supplierRepo: supplierRepo, log: log}
}

// Create registra un proveedor. El RUC es único.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if strings.TrimSpace(in.RUC) == "" {
		return nil, domain.NewInvalidInput("ruc", "es obligatorio")
	}
	if strings.TrimSpace(in.CompanyName) == "" {
		return nil, domain.NewInvalidInput("company_name", "es obligatorio")
	}
	if existing, _ := uc.supplierRepo.GetByRUC(in.RUC); existing != nil {
		return nil, domain.ErrDuplicate
	}

	supplier := &entity.Supplier{
		ID:          uuid.New().String(),
		RUC:         strings.TrimSpace(in.RUC),
		CompanyName: strings.TrimSpace(in.CompanyName),
		Contact:     in.Contact,
		Phone:       in.Phone,
		Email:       in.Email,
		Address:     in.Address,
		Active:      true,
		CreatedAt:   time.Now(),
	}
	if err := uc.supplierRepo.Create(supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// GetByID devuelve un proveedor por ID.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id string) (*dto.SupplierResponse, error) {
	supplier, err := uc.supplierRepo.GetByID(id)
	if err != nil || supplier == nil {
		return nil, domain.NewNotFound("proveedor", id)
	}
	return toSupplierResponse(supplier), nil
}

// List devuelve proveedores activos paginados.
func (uc *SupplierUseCase) List(ctx context.Context, page dto.PageRequest) ([]*dto.SupplierResponse, error) {
	page.DefaultPage()
	list, err := uc.supplierRepo.ListActive(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSupplierResponse(s))
	}
	return out, nil
}

// Update modifica datos de contacto del proveedor; el RUC no cambia.
func (uc *SupplierUseCase) Update(ctx context.Context, id string, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	supplier, err := uc.supplierRepo.GetByID(id)
	if err != nil || supplier == nil {
		return nil, domain.NewNotFound("proveedor", id)
	}
	if strings.TrimSpace(in.CompanyName) == "" {
		return nil, domain.NewInvalidInput("company_name", "es obligatorio")
	}
	supplier.CompanyName = strings.TrimSpace(in.CompanyName)
	supplier.Contact = in.Contact
	supplier.Phone = in.Phone
	supplier.Email = in.Email
	supplier.Address = in.Address
	if err := uc.supplierRepo.Update(supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// Deactivate baja lógica del proveedor.
func (uc *SupplierUseCase) Deactivate(ctx context.Context, id string) error {
	supplier, err := uc.supplierRepo.GetByID(id)
	if err != nil || supplier == nil {
		return domain.NewNotFound("proveedor", id)
	}
	return uc.supplierRepo.Deactivate(id)
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:          s.ID,
		RUC:         s.RUC,
		CompanyName: s.CompanyName,
		Contact:     s.Contact,
		Phone:       s.Phone,
		Email:       s.Email,
		Address:     s.Address,
		Active:      s.Active,
		CreatedAt:   s.CreatedAt,
	}
}
