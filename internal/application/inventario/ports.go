package inventario

import (
	"context"

	"github.com/tu-usuario/deposito-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza atomicidad para ajuste + cascada de kit.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		bienRepo repository.BienRepository,
		kitRepo repository.KitRepository,
		movRepo repository.MovimientoRepository,
	) error) error
}
