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

var _ repository.BienRepository = (*BienRepo)(nil)

// BienRepo implementación del puerto BienRepository sobre PostgreSQL (usable con pool o tx).
type BienRepo struct {
	q Querier
}

// NewBienRepository construye el adaptador de persistencia para bienes. Pasar pool o tx (Querier).
func NewBienRepository(q Querier) *BienRepo {
	return &BienRepo{q: q}
}

const bienColumns = `id, codigo, nombre, tipo, categoria_id, familia_id, unidad_medida,
	stock_actual, cantidad_critica, precio, created_at, updated_at`

// Create persiste un bien nuevo. StockActual inicia en 0.
func (r *BienRepo) Create(bien *entity.Bien) error {
	query := `
		INSERT INTO bienes (id, codigo, nombre, tipo, categoria_id, familia_id, unidad_medida, stock_actual, cantidad_critica, precio, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		bien.ID, bien.Codigo, bien.Nombre, nullable(bien.Tipo), nullable(bien.CategoriaID),
		nullable(bien.FamiliaID), nullable(bien.UnidadMedida), bien.CantidadCritica,
		bien.Precio, bien.CreatedAt, bien.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert bien: %w", err)
	}
	return nil
}

// GetByID obtiene un bien por ID.
func (r *BienRepo) GetByID(id string) (*entity.Bien, error) {
	return r.getWhere("id = $1", id, "")
}

// GetByCodigo obtiene un bien por su código.
func (r *BienRepo) GetByCodigo(codigo string) (*entity.Bien, error) {
	return r.getWhere("codigo = $1", codigo, "")
}

// GetForUpdate obtiene el bien y bloquea la fila (SELECT FOR UPDATE).
func (r *BienRepo) GetForUpdate(id string) (*entity.Bien, error) {
	return r.getWhere("id = $1", id, " FOR UPDATE")
}

func (r *BienRepo) getWhere(where, arg, suffix string) (*entity.Bien, error) {
	query := "SELECT " + bienColumns + " FROM bienes WHERE " + where + suffix
	var b entity.Bien
	var tipo, categoriaID, familiaID, unidadMedida *string
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&b.ID, &b.Codigo, &b.Nombre, &tipo, &categoriaID, &familiaID, &unidadMedida,
		&b.StockActual, &b.CantidadCritica, &b.Precio, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bien: %w", err)
	}
	b.Tipo = deref(tipo)
	b.CategoriaID = deref(categoriaID)
	b.FamiliaID = deref(familiaID)
	b.UnidadMedida = deref(unidadMedida)
	return &b, nil
}

// List devuelve una página de bienes ordenada por nombre.
func (r *BienRepo) List(limit, offset int) ([]*entity.Bien, error) {
	query := "SELECT " + bienColumns + " FROM bienes ORDER BY nombre LIMIT $1 OFFSET $2"
	return r.list(query, limit, offset)
}

// ListCriticos devuelve los bienes con stock en o por debajo del umbral crítico.
func (r *BienRepo) ListCriticos() ([]*entity.Bien, error) {
	query := "SELECT " + bienColumns + ` FROM bienes
		WHERE cantidad_critica IS NOT NULL AND stock_actual <= cantidad_critica
		ORDER BY nombre`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list bienes criticos: %w", err)
	}
	defer rows.Close()
	return scanBienes(rows)
}

func (r *BienRepo) list(query string, args ...any) ([]*entity.Bien, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bienes: %w", err)
	}
	defer rows.Close()
	return scanBienes(rows)
}

func scanBienes(rows pgx.Rows) ([]*entity.Bien, error) {
	var list []*entity.Bien
	for rows.Next() {
		var b entity.Bien
		var tipo, categoriaID, familiaID, unidadMedida *string
		if err := rows.Scan(
			&b.ID, &b.Codigo, &b.Nombre, &tipo, &categoriaID, &familiaID, &unidadMedida,
			&b.StockActual, &b.CantidadCritica, &b.Precio, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan bien: %w", err)
		}
		b.Tipo = deref(tipo)
		b.CategoriaID = deref(categoriaID)
		b.FamiliaID = deref(familiaID)
		b.UnidadMedida = deref(unidadMedida)
		list = append(list, &b)
	}
	return list, rows.Err()
}

// Update modifica datos descriptivos (no el stock).
func (r *BienRepo) Update(bien *entity.Bien) error {
	query := `
		UPDATE bienes
		SET nombre = $2, tipo = $3, categoria_id = $4, familia_id = $5,
		    unidad_medida = $6, cantidad_critica = $7, precio = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		bien.ID, bien.Nombre, nullable(bien.Tipo), nullable(bien.CategoriaID),
		nullable(bien.FamiliaID), nullable(bien.UnidadMedida), bien.CantidadCritica,
		bien.Precio, bien.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update bien: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock escribe el nuevo stock del bien. Usar solo dentro de una tx
// con la fila bloqueada por GetForUpdate.
func (r *BienRepo) UpdateStock(id string, stock decimal.Decimal) error {
	query := `UPDATE bienes SET stock_actual = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, stock)
	if err != nil {
		return fmt.Errorf("update stock bien: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un bien. Las FKs de kit_componentes y movimientos traducen
// a ErrConflict: un bien referenciado no se borra.
func (r *BienRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM bienes WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete bien: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
