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

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, numero, cliente_id, usuario_id, fecha, tipo_comprobante, estado, subtotal, descuento, impuesto, total, metodo_pago, notas, created_at`

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera de una venta.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO ventas (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.Number, sale.CustomerID, sale.UserID, sale.Date,
		sale.DocumentType, sale.State, sale.Subtotal, sale.Discount,
		sale.Tax, sale.Total, sale.PaymentMethod, sale.Notes, sale.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert venta: %w", err)
	}
	return nil
}

// CreateDetail persiste una línea de venta.
func (r *SaleRepo) CreateDetail(detail *entity.SaleDetail) error {
	query := `
		INSERT INTO venta_detalles (id, venta_id, producto_id, cantidad, precio_unitario, descuento, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		detail.ID, detail.SaleID, detail.ProductID, detail.Quantity,
		detail.UnitPrice, detail.Discount, detail.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert detalle de venta: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una venta. Devuelve nil, nil si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM ventas WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Number, &s.CustomerID, &s.UserID, &s.Date,
		&s.DocumentType, &s.State, &s.Subtotal, &s.Discount,
		&s.Tax, &s.Total, &s.PaymentMethod, &s.Notes, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get venta: %w", err)
	}
	return &s, nil
}

// GetDetails obtiene las líneas de una venta.
func (r *SaleRepo) GetDetails(saleID string) ([]*entity.SaleDetail, error) {
	query := `
		SELECT id, venta_id, producto_id, cantidad, precio_unitario, descuento, subtotal
		FROM venta_detalles WHERE venta_id = $1`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("get detalles de venta: %w", err)
	}
	defer rows.Close()

	var out []*entity.SaleDetail
	for rows.Next() {
		var d entity.SaleDetail
		if err := rows.Scan(&d.ID, &d.SaleID, &d.ProductID, &d.Quantity, &d.UnitPrice, &d.Discount, &d.Subtotal); err != nil {
			return nil, fmt.Errorf("scan detalle de venta: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

// UpdateState cambia el estado de la venta.
func (r *SaleRepo) UpdateState(id, state string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE ventas SET estado = $2 WHERE id = $1`, id, state)
	if err != nil {
		return fmt.Errorf("update estado de venta: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// LastNumber devuelve el número más alto emitido para el prefijo y año
// ("" si aún no hay). Ordena por la secuencia numérica, no por el string:
// al desbordar el ancho ("...-9999" → "...-10000") el orden lexicográfico
// dejaría de coincidir y se reemitirían números.
func (r *SaleRepo) LastNumber(prefix string, year int) (string, error) {
	pattern := fmt.Sprintf("%s-%d-%%", prefix, year)
	var number string
	err := r.q.QueryRow(context.Background(),
		`SELECT numero FROM ventas WHERE numero LIKE $1
		 ORDER BY split_part(numero, '-', 3)::int DESC LIMIT 1`,
		pattern,
	).Scan(&number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("ultimo numero de venta: %w", err)
	}
	return number, nil
}

// ListByState lista ventas por estado, de la más reciente a la más antigua.
func (r *SaleRepo) ListByState(state string, limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM ventas WHERE estado = $1
		ORDER BY fecha DESC, numero DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, state, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ventas por estado: %w", err)
	}
	defer rows.Close()
	return collectSales(rows)
}

// ListByDate lista las ventas de un día calendario.
func (r *SaleRepo) ListByDate(date time.Time) ([]*entity.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM ventas WHERE fecha::date = $1::date
		ORDER BY numero`
	rows, err := r.q.Query(context.Background(), query, date)
	if err != nil {
		return nil, fmt.Errorf("list ventas por dia: %w", err)
	}
	defer rows.Close()
	return collectSales(rows)
}

// ListByDateRange lista ventas con fecha en [from, to].
func (r *SaleRepo) ListByDateRange(from, to time.Time) ([]*entity.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM ventas WHERE fecha BETWEEN $1 AND $2
		ORDER BY fecha`
	rows, err := r.q.Query(context.Background(), query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list ventas por rango: %w", err)
	}
	defer rows.Close()
	return collectSales(rows)
}

func collectSales(rows pgx.Rows) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(
			&s.ID, &s.Number, &s.CustomerID, &s.UserID, &s.Date,
			&s.DocumentType, &s.State, &s.Subtotal, &s.Discount,
			&s.Tax, &s.Total, &s.PaymentMethod, &s.Notes, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan venta: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}
