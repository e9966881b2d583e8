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

// CustomerUseCase CRUD de clientes.
type CustomerUseCase struct {
	customerRepo repository.CustomerRepository
	log          *logger.Logger
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(customerRepo repository.CustomerRepository, log *logger.Logger) *CustomerUseCase {
	return &CustomerUseCase{customerRepo: customerRepo, log: log}
}

// Create registra un cliente. El documento (DNI/RUC) es único.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if strings.TrimSpace(in.Document) == "" {
		return nil, domain.NewInvalidInput("document", "es obligatorio")
	}
	if strings.TrimSpace(in.Names) == "" {
		return nil, domain.NewInvalidInput("names", "es obligatorio")
	}
	if existing, _ := uc.customerRepo.GetByDocument(in.Document); existing != nil {
		return nil, domain.ErrDuplicate
	}

	customer := &entity.Customer{
		ID:        uuid.New().String(),
		Document:  strings.TrimSpace(in.Document),
		Names:     strings.TrimSpace(in.Names),
		Surnames:  strings.TrimSpace(in.Surnames),
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		Active:    true,
		CreatedAt: time.Now(),
	}
	if err := uc.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID devuelve un cliente por ID.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil || customer == nil {
		return nil, domain.NewNotFound("cliente", id)
	}
	return toCustomerResponse(customer), nil
}

// GetByDocument busca un cliente por DNI/RUC (lookup rápido en caja).
func (uc *CustomerUseCase) GetByDocument(ctx context.Context, document string) (*dto.CustomerResponse, error) {
	customer, err := uc.customerRepo.GetByDocument(document)
	if err != nil || customer == nil {
		return nil, domain.NewNotFound("cliente", document)
	}
	return toCustomerResponse(customer), nil
}

// List devuelve clientes activos paginados.
func (uc *CustomerUseCase) List(ctx context.Context, page dto.PageRequest) ([]*dto.CustomerResponse, error) {
	page.DefaultPage()
	list, err := uc.customerRepo.ListActive(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

// Update modifica datos de contacto del cliente; el documento no cambia.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil || customer == nil {
		return nil, domain.NewNotFound("cliente", id)
	}
	if strings.TrimSpace(in.Names) == "" {
		return nil, domain.NewInvalidInput("names", "es obligatorio")
	}
	customer.Names = strings.TrimSpace(in.Names)
	customer.Surnames = strings.TrimSpace(in.Surnames)
	customer.Email = in.Email
	customer.Phone = in.Phone
	customer.Address = in.Address
	if err := uc.customerRepo.Update(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Deactivate baja lógica del cliente.
func (uc *CustomerUseCase) Deactivate(ctx context.Context, id string) error {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil || customer == nil {
		return domain.NewNotFound("cliente", id)
	}
	return uc.customerRepo.Deactivate(id)
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:        c.ID,
		Document:  c.Document,
		Names:     c.Names,
		Surnames:  c.Surnames,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
	}
}
