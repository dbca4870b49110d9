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

var _ repository.KitRepository = (*KitRepo)(nil)

// KitRepo implementación del puerto KitRepository sobre PostgreSQL (usable con pool o tx).
type KitRepo struct {
	q Querier
}

// NewKitRepository construye el adaptador. Pasar pool o tx (Querier).
func NewKitRepository(q Querier) *KitRepo {
	return &KitRepo{q: q}
}

// Create persiste el kit y sus componentes. StockActual inicia en 0.
func (r *KitRepo) Create(kit *entity.Kit) error {
	query := `
		INSERT INTO kits (id, codigo, nombre, stock_actual, created_at, updated_at)
		VALUES ($1, $2, $3, 0, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		kit.ID, kit.Codigo, kit.Nombre, kit.CreatedAt, kit.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert kit: %w", err)
	}
	return r.insertComponentes(kit.ID, kit.Componentes)
}

func (r *KitRepo) insertComponentes(kitID string, componentes []entity.KitComponente) error {
	for _, c := range componentes {
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO kit_componentes (kit_id, bien_id, cantidad_por_kit) VALUES ($1, $2, $3)`,
			kitID, c.BienID, c.CantidadPorKit,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert kit componente: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un kit con sus componentes.
func (r *KitRepo) GetByID(id string) (*entity.Kit, error) {
	return r.get(id, false)
}

// GetForUpdate obtiene el kit con componentes y bloquea la fila del kit (SELECT FOR UPDATE).
func (r *KitRepo) GetForUpdate(id string) (*entity.Kit, error) {
	return r.get(id, true)
}

func (r *KitRepo) get(id string, forUpdate bool) (*entity.Kit, error) {
	query := `SELECT id, codigo, nombre, stock_actual, created_at, updated_at FROM kits WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var k entity.Kit
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&k.ID, &k.Codigo, &k.Nombre, &k.StockActual, &k.CreatedAt, &k.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get kit: %w", err)
	}
	componentes, err := r.componentes(id)
	if err != nil {
		return nil, err
	}
	k.Componentes = componentes
	return &k, nil
}

func (r *KitRepo) componentes(kitID string) ([]entity.KitComponente, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT bien_id, cantidad_por_kit FROM kit_componentes WHERE kit_id = $1 ORDER BY bien_id`,
		kitID,
	)
	if err != nil {
		return nil, fmt.Errorf("get kit componentes: %w", err)
	}
	defer rows.Close()
	var componentes []entity.KitComponente
	for rows.Next() {
		var c entity.KitComponente
		if err := rows.Scan(&c.BienID, &c.CantidadPorKit); err != nil {
			return nil, fmt.Errorf("scan kit componente: %w", err)
		}
		componentes = append(componentes, c)
	}
	return componentes, rows.Err()
}

// List devuelve una página de kits con componentes, ordenada por nombre.
func (r *KitRepo) List(limit, offset int) ([]*entity.Kit, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, codigo, nombre, stock_actual, created_at, updated_at
		 FROM kits ORDER BY nombre LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list kits: %w", err)
	}
	defer rows.Close()
	var list []*entity.Kit
	for rows.Next() {
		var k entity.Kit
		if err := rows.Scan(&k.ID, &k.Codigo, &k.Nombre, &k.StockActual, &k.CreatedAt, &k.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan kit: %w", err)
		}
		list = append(list, &k)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, k := range list {
		componentes, err := r.componentes(k.ID)
		if err != nil {
			return nil, err
		}
		k.Componentes = componentes
	}
	return list, nil
}

// Update modifica nombre y reemplaza los componentes del kit.
func (r *KitRepo) Update(kit *entity.Kit) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE kits SET nombre = $2, updated_at = $3 WHERE id = $1`,
		kit.ID, kit.Nombre, kit.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update kit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM kit_componentes WHERE kit_id = $1`, kit.ID,
	); err != nil {
		return fmt.Errorf("delete kit componentes: %w", err)
	}
	return r.insertComponentes(kit.ID, kit.Componentes)
}

// UpdateStock escribe el nuevo stock del kit. Usar solo dentro de una tx
// con la fila bloqueada por GetForUpdate.
func (r *KitRepo) UpdateStock(id string, stock decimal.Decimal) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE kits SET stock_actual = $2, updated_at = now() WHERE id = $1`,
		id, stock,
	)
	if err != nil {
		return fmt.Errorf("update stock kit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un kit y sus componentes.
func (r *KitRepo) Delete(id string) error {
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM kit_componentes WHERE kit_id = $1`, id,
	); err != nil {
		return fmt.Errorf("delete kit componentes: %w", err)
	}
	tag, err := r.q.Exec(context.Background(), `DELETE FROM kits WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete kit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
