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

// CategoryUseCase CRUD de categorías.
type CategoryUseCase struct {
	categoryRepo repository.CategoryRepository
	log          *logger.Logger
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(categoryRepo repository.CategoryRepository, log *logger.Logger) *CategoryUseCase {
	return &CategoryUseCase{categoryRepo: categoryRepo, log: log}
}

// Create registra una categoría.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.NewInvalidInput("name", "es obligatorio")
	}
	category := &entity.Category{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Active:      true,
		CreatedAt:   time.Now(),
	}
	if err := uc.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// GetByID devuelve una categoría por ID.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil || category == nil {
		return nil, domain.NewNotFound("categoría", id)
	}
	return toCategoryResponse(category), nil
}

// List devuelve las categorías activas.
func (uc *CategoryUseCase) List(ctx context.Context) ([]*dto.CategoryResponse, error) {
	list, err := uc.categoryRepo.ListActive()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCategoryResponse(c))
	}
	return out, nil
}

// Update modifica nombre y descripción.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil || category == nil {
		return nil, domain.NewNotFound("categoría", id)
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.NewInvalidInput("name", "es obligatorio")
	}
	category.Name = strings.TrimSpace(in.Name)
	category.Description = in.Description
	if err := uc.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Deactivate baja lógica de la categoría.
func (uc *CategoryUseCase) Deactivate(ctx context.Context, id string) error {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil || category == nil {
		return domain.NewNotFound("categoría", id)
	}
	return uc.categoryRepo.Deactivate(id)
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
	}
}
