package repository

import "github.com/tu-usuario/comercial-pro/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para Customer (DIP).
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByDocument(document string) (*entity.Customer, error)
	ListActive(limit, offset int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	Deactivate(id string) error
}
