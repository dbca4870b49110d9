package inventario

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/deposito-pro/internal/domain"
	"github.com/tu-usuario/deposito-pro/internal/domain/entity"
	"github.com/tu-usuario/deposito-pro/internal/domain/repository"
)

// AjusteUseCase aplica ajustes y salidas de stock sobre bienes y kits de forma
// transaccional, con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
// Para kits propaga el mismo delta a cada componente (cascada) en la misma tx.
type AjusteUseCase struct {
	txRunner TxRunner
}

// NewAjusteUseCase construye el caso de uso.
func NewAjusteUseCase(txRunner TxRunner) *AjusteUseCase {
	return &AjusteUseCase{txRunner: txRunner}
}

// AjusteInput entrada para aplicar un ajuste o salida.
type AjusteInput struct {
	TipoItem       string // BIEN | KIT
	ItemID         string
	TipoMovimiento string // AJUSTE_ENTRADA | AJUSTE_SALIDA | SALIDA
	Cantidad       decimal.Decimal
	AlmacenID      string
	Responsable    string
	Fecha          time.Time
	Observaciones  string
	UserID         string
}

// ComponenteActualizado foto antes/después de un componente tras la cascada.
type ComponenteActualizado struct {
	BienID        string
	StockAnterior decimal.Decimal
	StockNuevo    decimal.Decimal
}

// ResultadoAjuste foto antes/después del item ajustado.
type ResultadoAjuste struct {
	StockAnterior decimal.Decimal
	StockNuevo    decimal.Decimal
	Diferencia    decimal.Decimal
	Componentes   []ComponenteActualizado // solo para kits
}

// AplicarAjuste valida la entrada, inicia la transacción, bloquea las filas
// tocadas y aplica el delta. Para un kit, el stock del kit y el de todos sus
// componentes cambian juntos o no cambia nada.
func (uc *AjusteUseCase) AplicarAjuste(ctx context.Context, input AjusteInput) (*ResultadoAjuste, error) {
	if input.ItemID == "" || !input.Cantidad.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if !entity.TipoMovimientoValido(input.TipoMovimiento) {
		return nil, domain.ErrInvalidInput
	}
	if input.TipoItem != entity.TipoItemBien && input.TipoItem != entity.TipoItemKit {
		return nil, domain.ErrInvalidInput
	}
	if input.Fecha.IsZero() {
		input.Fecha = time.Now()
	}

	var resultado *ResultadoAjuste
	err := uc.txRunner.Run(ctx, func(
		bienRepo repository.BienRepository,
		kitRepo repository.KitRepository,
		movRepo repository.MovimientoRepository,
	) error {
		var err error
		if input.TipoItem == entity.TipoItemKit {
			resultado, err = uc.ajustarKit(bienRepo, kitRepo, movRepo, input)
		} else {
			resultado, err = uc.ajustarBien(bienRepo, movRepo, input)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return resultado, nil
}

// ajustarBien bloquea la fila del bien, valida dirección y persiste stock + movimiento.
func (uc *AjusteUseCase) ajustarBien(
	bienRepo repository.BienRepository,
	movRepo repository.MovimientoRepository,
	input AjusteInput,
) (*ResultadoAjuste, error) {
	bien, err := bienRepo.GetForUpdate(input.ItemID)
	if err != nil {
		return nil, err
	}
	if bien == nil {
		return nil, domain.ErrNotFound
	}

	anterior := bien.StockActual
	nuevo, err := aplicarDelta(anterior, input.Cantidad, input.TipoMovimiento)
	if err != nil {
		return nil, err
	}
	if err := bienRepo.UpdateStock(bien.ID, nuevo); err != nil {
		return nil, err
	}
	if err := uc.registrarMovimiento(movRepo, input, entity.TipoItemBien, anterior, nuevo); err != nil {
		return nil, err
	}
	return &ResultadoAjuste{
		StockAnterior: anterior,
		StockNuevo:    nuevo,
		Diferencia:    nuevo.Sub(anterior),
	}, nil
}

// ajustarKit bloquea primero la fila del kit y después cada componente en orden
// ascendente de ID (orden global de bloqueo, evita deadlocks con ajustes directos).
// Valida todos los componentes antes de escribir nada (validate-then-apply).
func (uc *AjusteUseCase) ajustarKit(
	bienRepo repository.BienRepository,
	kitRepo repository.KitRepository,
	movRepo repository.MovimientoRepository,
	input AjusteInput,
) (*ResultadoAjuste, error) {
	kit, err := kitRepo.GetForUpdate(input.ItemID)
	if err != nil {
		return nil, err
	}
	if kit == nil {
		return nil, domain.ErrNotFound
	}

	anterior := kit.StockActual
	nuevo, err := aplicarDelta(anterior, input.Cantidad, input.TipoMovimiento)
	if err != nil {
		return nil, err
	}

	componentes := make([]entity.KitComponente, len(kit.Componentes))
	copy(componentes, kit.Componentes)
	sort.Slice(componentes, func(i, j int) bool {
		return componentes[i].BienID < componentes[j].BienID
	})

	// Fase 1: bloquear y validar cada componente. Ninguna escritura todavía.
	type pendiente struct {
		bien  *entity.Bien
		nuevo decimal.Decimal
	}
	pendientes := make([]pendiente, 0, len(componentes))
	for _, comp := range componentes {
		bien, err := bienRepo.GetForUpdate(comp.BienID)
		if err != nil {
			return nil, err
		}
		if bien == nil {
			return nil, domain.ErrNotFound
		}
		deltaComp := input.Cantidad.Mul(comp.CantidadPorKit)
		stockComp, err := aplicarDelta(bien.StockActual, deltaComp, input.TipoMovimiento)
		if err != nil {
			return nil, &domain.ComponentStockError{BienID: bien.ID, BienNombre: bien.Nombre}
		}
		pendientes = append(pendientes, pendiente{bien: bien, nuevo: stockComp})
	}

	// Fase 2: aplicar. Las filas ya están bloqueadas; cualquier error hace rollback total.
	actualizados := make([]ComponenteActualizado, 0, len(pendientes))
	for _, p := range pendientes {
		if err := bienRepo.UpdateStock(p.bien.ID, p.nuevo); err != nil {
			return nil, err
		}
		actualizados = append(actualizados, ComponenteActualizado{
			BienID:        p.bien.ID,
			StockAnterior: p.bien.StockActual,
			StockNuevo:    p.nuevo,
		})
	}
	if err := kitRepo.UpdateStock(kit.ID, nuevo); err != nil {
		return nil, err
	}
	if err := uc.registrarMovimiento(movRepo, input, entity.TipoItemKit, anterior, nuevo); err != nil {
		return nil, err
	}
	return &ResultadoAjuste{
		StockAnterior: anterior,
		StockNuevo:    nuevo,
		Diferencia:    nuevo.Sub(anterior),
		Componentes:   actualizados,
	}, nil
}

// registrarMovimiento escribe la fila inmutable del ledger con la foto antes/después.
func (uc *AjusteUseCase) registrarMovimiento(
	movRepo repository.MovimientoRepository,
	input AjusteInput,
	tipoItem string,
	anterior, nuevo decimal.Decimal,
) error {
	return movRepo.Create(&entity.Movimiento{
		ID:             uuid.New().String(),
		ItemID:         input.ItemID,
		TipoItem:       tipoItem,
		TipoMovimiento: input.TipoMovimiento,
		Cantidad:       input.Cantidad,
		StockAnterior:  anterior,
		StockNuevo:     nuevo,
		AlmacenID:      input.AlmacenID,
		Responsable:    input.Responsable,
		Fecha:          input.Fecha,
		Observaciones:  input.Observaciones,
		CreatedAt:      time.Now(),
		CreatedBy:      input.UserID,
	})
}

// aplicarDelta calcula el stock resultante según la dirección del movimiento.
// Un egreso que dejaría stock negativo falla con ErrInsufficientStock.
func aplicarDelta(actual, cantidad decimal.Decimal, tipoMovimiento string) (decimal.Decimal, error) {
	if entity.EsEntrada(tipoMovimiento) {
		return actual.Add(cantidad), nil
	}
	if cantidad.GreaterThan(actual) {
		return decimal.Zero, domain.ErrInsufficientStock
	}
	return actual.Sub(cantidad), nil
}
