package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/comercial-pro/internal/domain"
	"github.com/tu-usuario/comercial-pro/internal/domain/entity"
	"github.com/tu-usuario/comercial-pro/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, documento, nombres, apellidos, email, telefono, direccion, activo, created_at`

// CustomerRepo implementación del puerto CustomerRepository sobre PostgreSQL.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador de persistencia para clientes.
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(&c.ID, &c.Document, &c.Names, &c.Surnames, &c.Email, &c.Phone, &c.Address, &c.Active, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// Create persiste un cliente.
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	query := `
		INSERT INTO clientes (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Document, customer.Names, customer.Surnames,
		customer.Email, customer.Phone, customer.Address, customer.Active, customer.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cliente: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID. Devuelve nil, nil si no existe.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(context.Background(),
		`SELECT `+customerColumns+` FROM clientes WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return c, nil
}

// GetByDocument obtiene un cliente por DNI/RUC.
func (r *CustomerRepo) GetByDocument(document string) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(context.Background(),
		`SELECT `+customerColumns+` FROM clientes WHERE documento = $1`, document))
	if err != nil {
		return nil, fmt.Errorf("get cliente por documento: %w", err)
	}
	return c, nil
}

// ListActive lista clientes activos paginados.
func (r *CustomerRepo) ListActive(limit, offset int) ([]*entity.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM clientes WHERE activo
		ORDER BY nombres
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()

	var out []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.ID, &c.Document, &c.Names, &c.Surnames, &c.Email, &c.Phone, &c.Address, &c.Active, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// Update actualiza datos de contacto; el documento no cambia.
func (r *CustomerRepo) Update(customer *entity.Customer) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE clientes SET nombres = $2, apellidos = $3, email = $4, telefono = $5, direccion = $6 WHERE id = $1`,
		customer.ID, customer.Names, customer.Surnames, customer.Email, customer.Phone, customer.Address)
	if err != nil {
		return fmt.Errorf("update cliente: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Deactivate baja lógica del cliente.
func (r *CustomerRepo) Deactivate(id string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE clientes SET activo = false WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate cliente: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
