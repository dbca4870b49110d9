package despacho

import (
	"context"

	"github.com/tu-usuario/deposito-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los repositorios
// que toca un despacho. Garantiza que el lote completo se aplica o nada.
type TxRunner interface {
	RunDespacho(ctx context.Context, fn func(
		ordenRepo repository.OrdenVentaRepository,
		bolsonRepo repository.BolsonRepository,
		despachoRepo repository.DespachoRepository,
	) error) error
}
