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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, codigo, nombre, descripcion, categoria_id, precio_compra, precio_venta, stock, stock_minimo, unidad_medida, activo, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Code, &p.Name, &p.Description, &p.CategoryID,
		&p.PurchasePrice, &p.SalePrice, &p.Stock, &p.MinStock,
		&p.Unit, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// Create persiste un producto nuevo.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO productos (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Code, product.Name, product.Description, product.CategoryID,
		product.PurchasePrice, product.SalePrice, product.Stock, product.MinStock,
		product.Unit, product.Active, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Devuelve nil, nil si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM productos WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return p, nil
}

// GetByCode obtiene un producto por su código único.
func (r *ProductRepo) GetByCode(code string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM productos WHERE codigo = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, code))
	if err != nil {
		return nil, fmt.Errorf("get producto por codigo: %w", err)
	}
	return p, nil
}

// GetForUpdate obtiene el producto bloqueando su fila (SELECT FOR UPDATE)
// dentro de la transacción actual. Sobre el pool equivale a GetByID.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM productos WHERE id = $1 FOR UPDATE`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get producto for update: %w", err)
	}
	return p, nil
}

// ListActive lista productos activos ordenados por nombre. limit <= 0 trae todo.
func (r *ProductRepo) ListActive(limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM productos WHERE activo ORDER BY nombre`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// ListLowStock lista productos activos en o por debajo de su stock mínimo.
func (r *ProductRepo) ListLowStock() ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM productos
		WHERE activo AND stock <= stock_minimo
		ORDER BY stock`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list stock critico: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// Search busca productos activos por nombre o código. El término llega ya
// normalizado sin tildes; el nombre almacenado se pliega igual en la consulta
// para que "cafe" encuentre "Café".
func (r *ProductRepo) Search(term string, limit int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM productos
		WHERE activo AND (
			translate(lower(nombre), 'áéíóúäëïöüâêîôûñ', 'aeiouaeiouaeioun') LIKE '%' || lower($1) || '%'
			OR lower(codigo) LIKE '%' || lower($1) || '%'
		)
		ORDER BY nombre
		LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, term, limit)
	if err != nil {
		return nil, fmt.Errorf("search productos: %w", err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

func collectProducts(rows pgx.Rows) ([]*entity.Product, error) {
	var out []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.Code, &p.Name, &p.Description, &p.CategoryID,
			&p.PurchasePrice, &p.SalePrice, &p.Stock, &p.MinStock,
			&p.Unit, &p.Active, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// Update actualiza atributos del producto. El stock no se toca por aquí.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE productos
		SET nombre = $2, descripcion = $3, categoria_id = $4, precio_compra = $5,
		    precio_venta = $6, stock_minimo = $7, unidad_medida = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.CategoryID,
		product.PurchasePrice, product.SalePrice, product.MinStock, product.Unit, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update producto: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Deactivate baja lógica del producto.
func (r *ProductRepo) Deactivate(id string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE productos SET activo = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate producto: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdjustStock aplica un delta con signo al stock.
func (r *ProductRepo) AdjustStock(id string, delta int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE productos SET stock = stock + $2, updated_at = now() WHERE id = $1`, id, delta)
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetStock fija el stock absoluto (ajuste manual).
func (r *ProductRepo) SetStock(id string, stock int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE productos SET stock = $2, updated_at = now() WHERE id = $1`, id, stock)
	if err != nil {
		return fmt.Errorf("set stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
