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

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

const supplierColumns = `id, ruc, razon_social, contacto, telefono, email, direccion, activo, created_at`

// SupplierRepo implementación del puerto SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador de persistencia para proveedores.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

func scanSupplier(row pgx.Row) (*entity.Supplier, error) {
	var s entity.Supplier
	err := row.Scan(&s.ID, &s.RUC, &s.CompanyName, &s.Contact, &s.Phone, &s.Email, &s.Address, &s.Active, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// Create persiste un proveedor.
func (r *SupplierRepo) Create(supplier *entity.Supplier) error {
	query := `
		INSERT INTO proveedores (` + supplierColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		supplier.ID, supplier.RUC, supplier.CompanyName, supplier.Contact,
		supplier.Phone, supplier.Email, supplier.Address, supplier.Active, supplier.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert proveedor: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID. Devuelve nil, nil si no existe.
func (r *SupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	s, err := scanSupplier(r.q.QueryRow(context.Background(),
		`SELECT `+supplierColumns+` FROM proveedores WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get proveedor: %w", err)
	}
	return s, nil
}

// GetByRUC obtiene un proveedor por RUC.
func (r *SupplierRepo) GetByRUC(ruc string) (*entity.Supplier, error) {
	s, err := scanSupplier(r.q.QueryRow(context.Background(),
		`SELECT `+supplierColumns+` FROM proveedores WHERE ruc = $1`, ruc))
	if err != nil {
		return nil, fmt.Errorf("get proveedor por ruc: %w", err)
	}
	return s, nil
}

// ListActive lista proveedores activos paginados.
func (r *SupplierRepo) ListActive(limit, offset int) ([]*entity.Supplier, error) {
	query := `
		SELECT ` + supplierColumns + `
		FROM proveedores WHERE activo
		ORDER BY razon_social
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list proveedores: %w", err)
	}
	defer rows.Close()

	var out []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.RUC, &s.CompanyName, &s.Contact, &s.Phone, &s.Email, &s.Address, &s.Active, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan proveedor: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// Update actualiza datos de contacto; el RUC no cambia.
func (r *SupplierRepo) Update(supplier *entity.Supplier) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE proveedores SET razon_social = $2, contacto = $3, telefono = $4, email = $5, direccion = $6 WHERE id = $1`,
		supplier.ID, supplier.CompanyName, supplier.Contact, supplier.Phone, supplier.Email, supplier.Address)
	if err != nil {
		return fmt.Errorf("update proveedor: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Deactivate baja lógica del proveedor.
func (r *SupplierRepo) Deactivate(id string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE proveedores SET activo = false WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate proveedor: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
