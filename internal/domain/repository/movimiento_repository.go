package repository

import (
	"time"

	"github.com/tu-usuario/deposito-pro/internal/domain/entity"
)

// MovimientoRepository define el puerto de persistencia para el ledger de movimientos.
// Solo inserta y lista: las filas son inmutables.
type MovimientoRepository interface {
	Create(mov *entity.Movimiento) error
	GetByID(id string) (*entity.Movimiento, error)
	ListByItem(itemID, tipoItem string, from, to *time.Time, limit, offset int) ([]*entity.Movimiento, error)
	List(from, to *time.Time, limit, offset int) ([]*entity.Movimiento, error)
}
