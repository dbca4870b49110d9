package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/deposito-pro/internal/domain"
	"github.com/tu-usuario/deposito-pro/internal/domain/entity"
	"github.com/tu-usuario/deposito-pro/internal/domain/repository"
)

var _ repository.OrdenVentaRepository = (*OrdenVentaRepo)(nil)

// OrdenVentaRepo implementación sobre PostgreSQL (usable con pool o tx).
type OrdenVentaRepo struct {
	q Querier
}

// NewOrdenVentaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrdenVentaRepository(q Querier) *OrdenVentaRepo {
	return &OrdenVentaRepo{q: q}
}

// Create persiste la orden y sus líneas.
func (r *OrdenVentaRepo) Create(orden *entity.OrdenVenta) error {
	query := `
		INSERT INTO ordenes_venta (id, numero, cliente_id, fecha, estado, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		orden.ID, orden.Numero, orden.ClienteID, orden.Fecha, orden.Estado,
		orden.CreatedAt, orden.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert orden: %w", err)
	}
	for _, l := range orden.Lineas {
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO orden_lineas (id, orden_id, producto, cantidad_inicial, cantidad_restante)
			 VALUES ($1, $2, $3, $4, $5)`,
			l.ID, orden.ID, l.Producto, l.CantidadInicial, l.CantidadRestante,
		)
		if err != nil {
			return fmt.Errorf("insert orden linea: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una orden con líneas (sin bloqueo).
func (r *OrdenVentaRepo) GetByID(id string) (*entity.OrdenVenta, error) {
	return r.get(id, false)
}

// GetForUpdate obtiene la orden con líneas y bloquea la fila de la orden
// y las de sus líneas (SELECT FOR UPDATE).
func (r *OrdenVentaRepo) GetForUpdate(id string) (*entity.OrdenVenta, error) {
	return r.get(id, true)
}

func (r *OrdenVentaRepo) get(id string, forUpdate bool) (*entity.OrdenVenta, error) {
	query := `SELECT id, numero, cliente_id, fecha, estado, created_at, updated_at
		FROM ordenes_venta WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var o entity.OrdenVenta
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.Numero, &o.ClienteID, &o.Fecha, &o.Estado, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get orden: %w", err)
	}
	lineas, err := r.lineas(id, forUpdate)
	if err != nil {
		return nil, err
	}
	o.Lineas = lineas
	return &o, nil
}

func (r *OrdenVentaRepo) lineas(ordenID string, forUpdate bool) ([]entity.LineaOrden, error) {
	query := `SELECT id, orden_id, producto, cantidad_inicial, cantidad_restante
		FROM orden_lineas WHERE orden_id = $1 ORDER BY producto`
	if forUpdate {
		query += " FOR UPDATE"
	}
	rows, err := r.q.Query(context.Background(), query, ordenID)
	if err != nil {
		return nil, fmt.Errorf("get orden lineas: %w", err)
	}
	defer rows.Close()
	var lineas []entity.LineaOrden
	for rows.Next() {
		var l entity.LineaOrden
		if err := rows.Scan(&l.ID, &l.OrdenID, &l.Producto, &l.CantidadInicial, &l.CantidadRestante); err != nil {
			return nil, fmt.Errorf("scan orden linea: %w", err)
		}
		lineas = append(lineas, l)
	}
	return lineas, rows.Err()
}

// List devuelve una página de órdenes con líneas, opcionalmente filtrada por estado.
func (r *OrdenVentaRepo) List(estado string, limit, offset int) ([]*entity.OrdenVenta, error) {
	query := `SELECT id, numero, cliente_id, fecha, estado, created_at, updated_at FROM ordenes_venta`
	args := []any{}
	if estado != "" {
		args = append(args, estado)
		query += fmt.Sprintf(" WHERE estado = $%d", len(args))
	}
	query += fmt.Sprintf(" ORDER BY fecha DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ordenes: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrdenVenta
	for rows.Next() {
		var o entity.OrdenVenta
		if err := rows.Scan(&o.ID, &o.Numero, &o.ClienteID, &o.Fecha, &o.Estado, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan orden: %w", err)
		}
		list = append(list, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range list {
		lineas, err := r.lineas(o.ID, false)
		if err != nil {
			return nil, err
		}
		o.Lineas = lineas
	}
	return list, nil
}

// UpdateEstado cambia el estado de la orden.
func (r *OrdenVentaRepo) UpdateEstado(id, estado string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE ordenes_venta SET estado = $2, updated_at = now() WHERE id = $1`,
		id, estado,
	)
	if err != nil {
		return fmt.Errorf("update estado orden: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateLineaRestante escribe la nueva cantidad restante de una línea.
// Usar solo dentro de la tx del despacho con las líneas ya bloqueadas.
func (r *OrdenVentaRepo) UpdateLineaRestante(lineaID string, restante decimal.Decimal) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE orden_lineas SET cantidad_restante = $2 WHERE id = $1`,
		lineaID, restante,
	)
	if err != nil {
		return fmt.Errorf("update linea restante: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
