package inventario

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/deposito-pro/internal/application/dto"
	"github.com/tu-usuario/deposito-pro/internal/domain/repository"
)

// CriticosUseCase genera el reporte de bienes en o por debajo de su cantidad
// crítica, ordenado por faltante descendente (primero lo más urgente).
type CriticosUseCase struct {
	bienRepo repository.BienRepository
}

// NewCriticosUseCase construye el caso de uso.
func NewCriticosUseCase(bienRepo repository.BienRepository) *CriticosUseCase {
	return &CriticosUseCase{bienRepo: bienRepo}
}

// ListarCriticos devuelve los bienes con stock_actual <= cantidad_critica.
// Lectura sin bloqueo: una foto eventualmente consistente alcanza para el reporte.
func (uc *CriticosUseCase) ListarCriticos(ctx context.Context) ([]dto.BienCriticoDTO, error) {
	bienes, err := uc.bienRepo.ListCriticos()
	if err != nil {
		return nil, err
	}

	criticos := make([]dto.BienCriticoDTO, 0, len(bienes))
	for _, b := range bienes {
		if b.CantidadCritica == nil {
			continue
		}
		faltante := b.CantidadCritica.Sub(b.StockActual)
		if faltante.LessThan(decimal.Zero) {
			faltante = decimal.Zero
		}
		criticos = append(criticos, dto.BienCriticoDTO{
			BienID:          b.ID,
			Codigo:          b.Codigo,
			Nombre:          b.Nombre,
			StockActual:     b.StockActual,
			CantidadCritica: *b.CantidadCritica,
			Faltante:        faltante,
		})
	}

	sort.Slice(criticos, func(i, j int) bool {
		return criticos[i].Faltante.GreaterThan(criticos[j].Faltante)
	})
	return criticos, nil
}
