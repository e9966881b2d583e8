package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/comercial-pro/internal/domain"
	"github.com/tu-usuario/comercial-pro/internal/domain/entity"
	"github.com/tu-usuario/comercial-pro/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

const purchaseColumns = `id, numero, proveedor_id, usuario_id, fecha, estado, fecha_recepcion, subtotal, impuesto, total, notas, created_at`

// PurchaseRepo implementación del puerto PurchaseRepository sobre PostgreSQL (usable con pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador de persistencia para compras. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persiste la cabecera de una compra.
func (r *PurchaseRepo) Create(purchase *entity.Purchase) error {
	query := `
		INSERT INTO compras (` + purchaseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		purchase.ID, purchase.Number, purchase.SupplierID, purchase.UserID,
		purchase.Date, purchase.State, purchase.ReceivedDate,
		purchase.Subtotal, purchase.Tax, purchase.Total, purchase.Notes, purchase.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert compra: %w", err)
	}
	return nil
}

// CreateDetail persiste una línea de compra.
func (r *PurchaseRepo) CreateDetail(detail *entity.PurchaseDetail) error {
	query := `
		INSERT INTO compra_detalles (id, compra_id, producto_id, cantidad, precio_unitario, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		detail.ID, detail.PurchaseID, detail.ProductID, detail.Quantity,
		detail.UnitPrice, detail.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert detalle de compra: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una compra. Devuelve nil, nil si no existe.
func (r *PurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM compras WHERE id = $1`
	var p entity.Purchase
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Number, &p.SupplierID, &p.UserID, &p.Date,
		&p.State, &p.ReceivedDate, &p.Subtotal, &p.Tax, &p.Total, &p.Notes, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get compra: %w", err)
	}
	return &p, nil
}

// GetDetails obtiene las líneas de una compra.
func (r *PurchaseRepo) GetDetails(purchaseID string) ([]*entity.PurchaseDetail, error) {
	query := `
		SELECT id, compra_id, producto_id, cantidad, precio_unitario, subtotal
		FROM compra_detalles WHERE compra_id = $1`
	rows, err := r.q.Query(context.Background(), query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("get detalles de compra: %w", err)
	}
	defer rows.Close()

	var out []*entity.PurchaseDetail
	for rows.Next() {
		var d entity.PurchaseDetail
		if err := rows.Scan(&d.ID, &d.PurchaseID, &d.ProductID, &d.Quantity, &d.UnitPrice, &d.Subtotal); err != nil {
			return nil, fmt.Errorf("scan detalle de compra: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

// UpdateState cambia el estado; receivedDate solo viaja al recibir.
func (r *PurchaseRepo) UpdateState(id, state string, receivedDate *time.Time) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE compras SET estado = $2, fecha_recepcion = COALESCE($3, fecha_recepcion) WHERE id = $1`,
		id, state, receivedDate)
	if err != nil {
		return fmt.Errorf("update estado de compra: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// LastNumber devuelve el número más alto emitido para el prefijo y año ("" si
// aún no hay). El orden es por secuencia numérica: pasado "...-999" el orden
// lexicográfico ya no sirve.
func (r *PurchaseRepo) LastNumber(prefix string, year int) (string, error) {
	pattern := fmt.Sprintf("%s-%d-%%", prefix, year)
	var number string
	err := r.q.QueryRow(context.Background(),
		`SELECT numero FROM compras WHERE numero LIKE $1
		 ORDER BY split_part(numero, '-', 3)::int DESC LIMIT 1`,
		pattern,
	).Scan(&number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("ultimo numero de compra: %w", err)
	}
	return number, nil
}

// ListByState lista compras por estado, de la más reciente a la más antigua.
func (r *PurchaseRepo) ListByState(state string, limit, offset int) ([]*entity.Purchase, error) {
	query := `
		SELECT ` + purchaseColumns + `
		FROM compras WHERE estado = $1
		ORDER BY fecha DESC, numero DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, state, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list compras por estado: %w", err)
	}
	defer rows.Close()
	return collectPurchases(rows)
}

// ListByDateRange lista compras con fecha en [from, to].
func (r *PurchaseRepo) ListByDateRange(from, to time.Time) ([]*entity.Purchase, error) {
	query := `
		SELECT ` + purchaseColumns + `
		FROM compras WHERE fecha BETWEEN $1 AND $2
		ORDER BY fecha`
	rows, err := r.q.Query(context.Background(), query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list compras por rango: %w", err)
	}
	defer rows.Close()
	return collectPurchases(rows)
}

func collectPurchases(rows pgx.Rows) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	for rows.Next() {
		var p entity.Purchase
		if err := rows.Scan(
			&p.ID, &p.Number, &p.SupplierID, &p.UserID, &p.Date,
			&p.State, &p.ReceivedDate, &p.Subtotal, &p.Tax, &p.Total, &p.Notes, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan compra: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
