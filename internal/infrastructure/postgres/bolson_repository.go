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

var _ repository.BolsonRepository = (*BolsonRepo)(nil)

// BolsonRepo implementación del puerto BolsonRepository sobre PostgreSQL (usable con pool o tx).
// El índice único sobre codigo es la garantía de unicidad del registro.
type BolsonRepo struct {
	q Querier
}

// NewBolsonRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBolsonRepository(q Querier) *BolsonRepo {
	return &BolsonRepo{q: q}
}

const bolsonColumns = `id, codigo, producto, peso, precinto, despachado, created_at, created_by`

// Create persiste un bolsón nuevo (despachado=false).
func (r *BolsonRepo) Create(bolson *entity.Bolson) error {
	query := `
		INSERT INTO bolsones (id, codigo, producto, peso, precinto, despachado, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, false, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		bolson.ID, bolson.Codigo, bolson.Producto, bolson.Peso,
		nullable(bolson.Precinto), bolson.CreatedAt, nullable(bolson.CreatedBy),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert bolson: %w", err)
	}
	return nil
}

// GetByID obtiene un bolsón por ID.
func (r *BolsonRepo) GetByID(id string) (*entity.Bolson, error) {
	return r.getWhere("id = $1", id, "")
}

// GetByCodigo obtiene un bolsón por su código (sin bloqueo; para verificación).
func (r *BolsonRepo) GetByCodigo(codigo string) (*entity.Bolson, error) {
	return r.getWhere("codigo = $1", codigo, "")
}

// GetByCodigoForUpdate obtiene el bolsón y bloquea la fila (SELECT FOR UPDATE).
func (r *BolsonRepo) GetByCodigoForUpdate(codigo string) (*entity.Bolson, error) {
	return r.getWhere("codigo = $1", codigo, " FOR UPDATE")
}

func (r *BolsonRepo) getWhere(where, arg, suffix string) (*entity.Bolson, error) {
	query := "SELECT " + bolsonColumns + " FROM bolsones WHERE " + where + suffix
	var b entity.Bolson
	var precinto, createdBy *string
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&b.ID, &b.Codigo, &b.Producto, &b.Peso, &precinto, &b.Despachado, &b.CreatedAt, &createdBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bolson: %w", err)
	}
	b.Precinto = deref(precinto)
	b.CreatedBy = deref(createdBy)
	return &b, nil
}

// MarcarDespachado marca despachado=true. Usar solo dentro de la tx del despacho
// con la fila bloqueada por GetByCodigoForUpdate.
func (r *BolsonRepo) MarcarDespachado(id string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE bolsones SET despachado = true WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("marcar bolson despachado: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve bolsones; con soloDisponibles=true excluye los despachados.
func (r *BolsonRepo) List(soloDisponibles bool, limit, offset int) ([]*entity.Bolson, error) {
	query := "SELECT " + bolsonColumns + " FROM bolsones"
	if soloDisponibles {
		query += " WHERE despachado = false"
	}
	query += " ORDER BY created_at DESC LIMIT $1 OFFSET $2"
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list bolsones: %w", err)
	}
	defer rows.Close()
	var list []*entity.Bolson
	for rows.Next() {
		var b entity.Bolson
		var precinto, createdBy *string
		if err := rows.Scan(
			&b.ID, &b.Codigo, &b.Producto, &b.Peso, &precinto, &b.Despachado, &b.CreatedAt, &createdBy,
		); err != nil {
			return nil, fmt.Errorf("scan bolson: %w", err)
		}
		b.Precinto = deref(precinto)
		b.CreatedBy = deref(createdBy)
		list = append(list, &b)
	}
	return list, rows.Err()
}
