package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/deposito-pro/internal/domain/entity"
	"github.com/tu-usuario/deposito-pro/internal/domain/repository"
)

var _ repository.MovimientoRepository = (*MovimientoRepo)(nil)

// MovimientoRepo implementación sobre PostgreSQL (usable con pool o tx).
// Las filas son inmutables: solo INSERT y SELECT.
type MovimientoRepo struct {
	q Querier
}

// NewMovimientoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovimientoRepository(q Querier) *MovimientoRepo {
	return &MovimientoRepo{q: q}
}

const movimientoColumns = `id, item_id, tipo_item, tipo_movimiento, cantidad,
	stock_anterior, stock_nuevo, almacen_id, responsable, fecha, observaciones, created_at, created_by`

// Create persiste una fila del ledger de movimientos.
func (r *MovimientoRepo) Create(mov *entity.Movimiento) error {
	query := `
		INSERT INTO movimientos (id, item_id, tipo_item, tipo_movimiento, cantidad, stock_anterior, stock_nuevo, almacen_id, responsable, fecha, observaciones, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		mov.ID, mov.ItemID, mov.TipoItem, mov.TipoMovimiento, mov.Cantidad,
		mov.StockAnterior, mov.StockNuevo, nullable(mov.AlmacenID),
		mov.Responsable, mov.Fecha, nullable(mov.Observaciones),
		mov.CreatedAt, nullable(mov.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("create movimiento: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovimientoRepo) GetByID(id string) (*entity.Movimiento, error) {
	query := "SELECT " + movimientoColumns + " FROM movimientos WHERE id = $1"
	rows, err := r.q.Query(context.Background(), query, id)
	if err != nil {
		return nil, fmt.Errorf("get movimiento: %w", err)
	}
	defer rows.Close()
	list, err := scanMovimientos(rows)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

// ListByItem lista movimientos de un item en un rango de fechas.
func (r *MovimientoRepo) ListByItem(itemID, tipoItem string, from, to *time.Time, limit, offset int) ([]*entity.Movimiento, error) {
	query := "SELECT " + movimientoColumns + " FROM movimientos WHERE item_id = $1 AND tipo_item = $2"
	args := []any{itemID, tipoItem}
	query, args = appendDateRange(query, args, from, to)
	query += fmt.Sprintf(" ORDER BY fecha DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	return r.list(query, args...)
}

// List lista movimientos de todos los items en un rango de fechas.
func (r *MovimientoRepo) List(from, to *time.Time, limit, offset int) ([]*entity.Movimiento, error) {
	query := "SELECT " + movimientoColumns + " FROM movimientos WHERE 1=1"
	args := []any{}
	query, args = appendDateRange(query, args, from, to)
	query += fmt.Sprintf(" ORDER BY fecha DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	return r.list(query, args...)
}

func appendDateRange(query string, args []any, from, to *time.Time) (string, []any) {
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND fecha >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND fecha <= $%d", len(args))
	}
	return query, args
}

func (r *MovimientoRepo) list(query string, args ...any) ([]*entity.Movimiento, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()
	return scanMovimientos(rows)
}

func scanMovimientos(rows pgx.Rows) ([]*entity.Movimiento, error) {
	var list []*entity.Movimiento
	for rows.Next() {
		var m entity.Movimiento
		var almacenID, observaciones, createdBy *string
		if err := rows.Scan(
			&m.ID, &m.ItemID, &m.TipoItem, &m.TipoMovimiento, &m.Cantidad,
			&m.StockAnterior, &m.StockNuevo, &almacenID, &m.Responsable,
			&m.Fecha, &observaciones, &m.CreatedAt, &createdBy,
		); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		m.AlmacenID = deref(almacenID)
		m.Observaciones = deref(observaciones)
		m.CreatedBy = deref(createdBy)
		list = append(list, &m)
	}
	return list, rows.Err()
}
