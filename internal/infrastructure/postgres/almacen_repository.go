package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/deposito-pro/internal/domain"
	"github.com/tu-usuario/deposito-pro/internal/domain/entity"
	"github.com/tu-usuario/deposito-pro/internal/domain/repository"
)

var _ repository.AlmacenRepository = (*AlmacenRepo)(nil)

// AlmacenRepo implementación sobre PostgreSQL.
type AlmacenRepo struct {
	q Querier
}

func NewAlmacenRepository(q Querier) *AlmacenRepo {
	return &AlmacenRepo{q: q}
}

func (r *AlmacenRepo) Create(almacen *entity.Almacen) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO almacenes (id, nombre, direccion, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		almacen.ID, almacen.Nombre, almacen.Direccion, almacen.CreatedAt, almacen.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert almacen: %w", err)
	}
	return nil
}

func (r *AlmacenRepo) GetByID(id string) (*entity.Almacen, error) {
	var a entity.Almacen
	err := r.q.QueryRow(context.Background(),
		`SELECT id, nombre, direccion, created_at, updated_at FROM almacenes WHERE id = $1`, id,
	).Scan(&a.ID, &a.Nombre, &a.Direccion, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get almacen: %w", err)
	}
	return &a, nil
}

func (r *AlmacenRepo) List(limit, offset int) ([]*entity.Almacen, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, nombre, direccion, created_at, updated_at
		 FROM almacenes ORDER BY nombre LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list almacenes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Almacen
	for rows.Next() {
		var a entity.Almacen
		if err := rows.Scan(&a.ID, &a.Nombre, &a.Direccion, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan almacen: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

func (r *AlmacenRepo) Update(almacen *entity.Almacen) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE almacenes SET nombre = $2, direccion = $3, updated_at = now() WHERE id = $1`,
		almacen.ID, almacen.Nombre, almacen.Direccion,
	)
	if err != nil {
		return fmt.Errorf("update almacen: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AlmacenRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), "DELETE FROM almacenes WHERE id = $1", id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete almacen: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
