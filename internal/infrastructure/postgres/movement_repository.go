package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/comercial-pro/internal/domain/entity"
	"github.com/tu-usuario/comercial-pro/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, producto_id, tipo, cantidad, motivo, referencia_id, stock_anterior, stock_nuevo, usuario_id, notas, created_at`

// MovementRepo implementación del puerto MovementRepository sobre PostgreSQL
// (usable con pool o tx). La tabla es append-only: solo INSERT y SELECT.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador de persistencia para movimientos. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta un movimiento de inventario.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	query := `
		INSERT INTO movimientos_inventario (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.Type, movement.Quantity,
		movement.Motive, movement.ReferenceID, movement.StockBefore, movement.StockAfter,
		movement.UserID, movement.Notes, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movimiento: %w", err)
	}
	return nil
}

// ListByProduct movimientos de un producto, del más reciente al más antiguo.
func (r *MovementRepo) ListByProduct(productID string, limit int) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movimientos_inventario
		WHERE producto_id = $1
		ORDER BY created_at DESC
		LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("list movimientos por producto: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// ListByType movimientos de un tipo (entrada, salida, ajuste).
func (r *MovementRepo) ListByType(movementType string, limit int) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movimientos_inventario
		WHERE tipo = $1
		ORDER BY created_at DESC
		LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, movementType, limit)
	if err != nil {
		return nil, fmt.Errorf("list movimientos por tipo: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// ListByDateRange movimientos creados en [from, to].
func (r *MovementRepo) ListByDateRange(from, to time.Time) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movimientos_inventario
		WHERE created_at BETWEEN $1 AND $2
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list movimientos por rango: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// ListRecent los últimos movimientos registrados.
func (r *MovementRepo) ListRecent(limit int) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movimientos_inventario
		ORDER BY created_at DESC
		LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("list movimientos recientes: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

func collectMovements(rows pgx.Rows) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.Motive, &m.ReferenceID,
			&m.StockBefore, &m.StockAfter, &m.UserID, &m.Notes, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
