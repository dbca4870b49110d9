package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/deposito-pro/internal/domain/entity"
)

// KitRepository define el puerto de persistencia para Kit y sus componentes.
type KitRepository interface {
	Create(kit *entity.Kit) error
	GetByID(id string) (*entity.Kit, error)
	List(limit, offset int) ([]*entity.Kit, error)
	// Update reemplaza datos y componentes del kit.
	Update(kit *entity.Kit) error
	UpdateStock(id string, stock decimal.Decimal) error
	// GetForUpdate obtiene el kit con componentes y bloquea la fila del kit.
	GetForUpdate(id string) (*entity.Kit, error)
	Delete(id string) error
}
