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

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

// ClienteRepo implementación sobre PostgreSQL.
type ClienteRepo struct {
	q Querier
}

func NewClienteRepository(q Querier) *ClienteRepo {
	return &ClienteRepo{q: q}
}

const clienteColumns = "id, nombre, cuit, email, telefono, direccion, created_at, updated_at"

func (r *ClienteRepo) Create(cliente *entity.Cliente) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO clientes (id, nombre, cuit, email, telefono, direccion, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		cliente.ID, cliente.Nombre, cliente.CUIT, cliente.Email,
		cliente.Telefono, cliente.Direccion, cliente.CreatedAt, cliente.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cliente: %w", err)
	}
	return nil
}

func (r *ClienteRepo) GetByID(id string) (*entity.Cliente, error) {
	var c entity.Cliente
	err := r.q.QueryRow(context.Background(),
		"SELECT "+clienteColumns+" FROM clientes WHERE id = $1", id,
	).Scan(&c.ID, &c.Nombre, &c.CUIT, &c.Email, &c.Telefono, &c.Direccion, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return &c, nil
}

func (r *ClienteRepo) List(limit, offset int) ([]*entity.Cliente, error) {
	rows, err := r.q.Query(context.Background(),
		"SELECT "+clienteColumns+" FROM clientes ORDER BY nombre LIMIT $1 OFFSET $2",
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Cliente
	for rows.Next() {
		var c entity.Cliente
		if err := rows.Scan(&c.ID, &c.Nombre, &c.CUIT, &c.Email, &c.Telefono, &c.Direccion, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

func (r *ClienteRepo) Update(cliente *entity.Cliente) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE clientes
		 SET nombre = $2, cuit = $3, email = $4, telefono = $5, direccion = $6, updated_at = now()
		 WHERE id = $1`,
		cliente.ID, cliente.Nombre, cliente.CUIT, cliente.Email, cliente.Telefono, cliente.Direccion,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ClienteRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), "DELETE FROM clientes WHERE id = $1", id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
