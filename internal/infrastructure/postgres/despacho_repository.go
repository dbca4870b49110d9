package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/deposito-pro/internal/domain/repository"
	"github.com/tu-usuario/deposito-pro/internal/domain/entity"
)

var _ repository.DespachoRepository = (*DespachoRepo)(nil)

// DespachoRepo implementación sobre PostgreSQL (usable con pool o tx).
type DespachoRepo struct {
	q Querier
}

// NewDespachoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDespachoRepository(q Querier) *DespachoRepo {
	return &DespachoRepo{q: q}
}

// Create persiste el despacho y sus códigos de bolsón.
func (r *DespachoRepo) Create(despacho *entity.Despacho) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO despachos (id, orden_id, responsable, observaciones, fecha, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		despacho.ID, despacho.OrdenID, despacho.Responsable,
		despacho.Observaciones, despacho.Fecha, despacho.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert despacho: %w", err)
	}
	for _, codigo := range despacho.Codigos {
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO despacho_codigos (despacho_id, codigo) VALUES ($1, $2)`,
			despacho.ID, codigo,
		)
		if err != nil {
			return fmt.Errorf("insert despacho codigo: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un despacho con sus códigos. Devuelve (nil, nil) si no existe.
func (r *DespachoRepo) GetByID(id string) (*entity.Despacho, error) {
	var d entity.Despacho
	err := r.q.QueryRow(context.Background(),
		`SELECT id, orden_id, responsable, observaciones, fecha, created_by
		 FROM despachos WHERE id = $1`, id,
	).Scan(&d.ID, &d.OrdenID, &d.Responsable, &d.Observaciones, &d.Fecha, &d.CreatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get despacho: %w", err)
	}
	codigos, err := r.codigos(id)
	if err != nil {
		return nil, err
	}
	d.Codigos = codigos
	return &d, nil
}

// ListByOrden devuelve los despachos registrados contra una orden.
func (r *DespachoRepo) ListByOrden(ordenID string) ([]*entity.Despacho, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, orden_id, responsable, observaciones, fecha, created_by
		 FROM despachos WHERE orden_id = $1 ORDER BY fecha`, ordenID,
	)
	if err != nil {
		return nil, fmt.Errorf("list despachos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Despacho
	for rows.Next() {
		var d entity.Despacho
		if err := rows.Scan(&d.ID, &d.OrdenID, &d.Responsable, &d.Observaciones, &d.Fecha, &d.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan despacho: %w", err)
		}
		list = append(list, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, d := range list {
		codigos, err := r.codigos(d.ID)
		if err != nil {
			return nil, err
		}
		d.Codigos = codigos
	}
	return list, nil
}

func (r *DespachoRepo) codigos(despachoID string) ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT codigo FROM despacho_codigos WHERE despacho_id = $1 ORDER BY codigo`, despachoID,
	)
	if err != nil {
		return nil, fmt.Errorf("get despacho codigos: %w", err)
	}
	defer rows.Close()
	var codigos []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan despacho codigo: %w", err)
		}
		codigos = append(codigos, c)
	}
	return codigos, rows.Err()
}
