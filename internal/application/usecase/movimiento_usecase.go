package usecase

import (
	"time"

	"github.com/tu-usuario/deposito-pro/internal/application/dto"
	"github.com/tu-usuario/deposito-pro/internal/domain/entity"
	"github.com/tu-usuario/deposito-pro/internal/domain/repository"
)

// MovimientoUseCase consulta del ledger de movimientos (solo lectura).
type MovimientoUseCase struct {
	repo repository.MovimientoRepository
}

// NewMovimientoUseCase construye el caso de uso.
func NewMovimientoUseCase(repo repository.MovimientoRepository) *MovimientoUseCase {
	return &MovimientoUseCase{repo: repo}
}

// List devuelve movimientos en el rango de fechas dado (nil = sin límite).
func (uc *MovimientoUseCase) List(from, to *time.Time, limit, offset int) ([]dto.MovimientoResponse, error) {
	movs, err := uc.repo.List(from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	return toMovimientoResponses(movs), nil
}

// ListByItem devuelve los movimientos de un bien o kit.
func (uc *MovimientoUseCase) ListByItem(itemID, tipoItem string, from, to *time.Time, limit, offset int) ([]dto.MovimientoResponse, error) {
	movs, err := uc.repo.ListByItem(itemID, tipoItem, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	return toMovimientoResponses(movs), nil
}

func toMovimientoResponses(movs []*entity.Movimiento) []dto.MovimientoResponse {
	out := make([]dto.MovimientoResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.MovimientoResponse{
			ID:             m.ID,
			ItemID:         m.ItemID,
			TipoItem:       m.TipoItem,
			TipoMovimiento: m.TipoMovimiento,
			Cantidad:       m.Cantidad,
			StockAnterior:  m.StockAnterior,
			StockNuevo:     m.StockNuevo,
			AlmacenID:      m.AlmacenID,
			Responsable:    m.Responsable,
			Fecha:          m.Fecha,
			Observaciones:  m.Observaciones,
		})
	}
	return out
}
