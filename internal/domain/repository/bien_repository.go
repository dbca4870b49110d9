package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/deposito-pro/internal/domain/entity"
)

// BienRepository define el puerto de persistencia para Bien (DIP).
type BienRepository interface {
	Create(bien *entity.Bien) error
	GetByID(id string) (*entity.Bien, error)
	GetByCodigo(codigo string) (*entity.Bien, error)
	List(limit, offset int) ([]*entity.Bien, error)
	ListCriticos() ([]*entity.Bien, error)
	Update(bien *entity.Bien) error
	// UpdateStock escribe el nuevo stock; usar solo dentro de una tx con la fila bloqueada.
	UpdateStock(id string, stock decimal.Decimal) error
	// GetForUpdate obtiene el bien y bloquea la fila (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Bien, error)
	// Delete falla con domain.ErrConflict si el bien está referenciado por kits o movimientos.
	Delete(id string) error
}
