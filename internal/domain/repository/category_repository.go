package repository

import "github.com/tu-usuario/comercial-pro/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	ListActive() ([]*entity.Category, error)
	Update(category *entity.Category) error
	Deactivate(id string) error
}
