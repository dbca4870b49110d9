package inventario_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/deposito-pro/internal/application/inventario"
	"github.com/tu-usuario/deposito-pro/internal/domain"
	"github.com/tu-usuario/deposito-pro/internal/domain/entity"
	"github.com/tu-usuario/deposito-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// Los fakes escriben directo (sin rollback). Eso alcanza porque el motor valida
// todo antes de escribir nada: si una falla deja estado modificado en estos
// tests, el motor rompió el contrato de validate-then-apply.
// ──────────────────────────────────────────────────────────────────────────────

type fakeBienRepo struct {
	bienes map[string]*entity.Bien
	locks  *[]string // registro del orden de GetForUpdate (compartido con el kit repo)
}

func (f *fakeBienRepo) Create(b *entity.Bien) error { f.bienes[b.ID] = b; return nil }

func (f *fakeBienRepo) GetByID(id string) (*entity.Bien, error) {
	b, ok := f.bienes[id]
	if !ok {
		return nil, nil
	}
	copia := *b
	return &copia, nil
}

func (f *fakeBienRepo) GetByCodigo(codigo string) (*entity.Bien, error) {
	for _, b := range f.bienes {
		if b.Codigo == codigo {
			copia := *b
			return &copia, nil
		}
	}
	return nil, nil
}

func (f *fakeBienRepo) List(limit, offset int) ([]*entity.Bien, error) { return nil, nil }
func (f *fakeBienRepo) ListCriticos() ([]*entity.Bien, error)          { return nil, nil }
func (f *fakeBienRepo) Update(b *entity.Bien) error                    { f.bienes[b.ID] = b; return nil }
func (f *fakeBienRepo) Delete(id string) error                         { delete(f.bienes, id); return nil }

func (f *fakeBienRepo) UpdateStock(id string, stock decimal.Decimal) error {
	b, ok := f.bienes[id]
	if !ok {
		return domain.ErrNotFound
	}
	b.StockActual = stock
	return nil
}

func (f *fakeBienRepo) GetForUpdate(id string) (*entity.Bien, error) {
	if f.locks != nil {
		*f.locks = append(*f.locks, "bien:"+id)
	}
	return f.GetByID(id)
}

type fakeKitRepo struct {
	kits  map[string]*entity.Kit
	locks *[]string
}

func (f *fakeKitRepo) Create(k *entity.Kit) error                    { f.kits[k.ID] = k; return nil }
func (f *fakeKitRepo) List(limit, offset int) ([]*entity.Kit, error) { return nil, nil }
func (f *fakeKitRepo) Update(k *entity.Kit) error                    { f.kits[k.ID] = k; return nil }
func (f *fakeKitRepo) Delete(id string) error                        { delete(f.kits, id); return nil }

func (f *fakeKitRepo) GetByID(id string) (*entity.Kit, error) {
	k, ok := f.kits[id]
	if !ok {
		return nil, nil
	}
	copia := *k
	copia.Componentes = append([]entity.KitComponente(nil), k.Componentes...)
	return &copia, nil
}

func (f *fakeKitRepo) UpdateStock(id string, stock decimal.Decimal) error {
	k, ok := f.kits[id]
	if !ok {
		return domain.ErrNotFound
	}
	k.StockActual = stock
	return nil
}

func (f *fakeKitRepo) GetForUpdate(id string) (*entity.Kit, error) {
	if f.locks != nil {
		*f.locks = append(*f.locks, "kit:"+id)
	}
	return f.GetByID(id)
}

type fakeMovRepo struct {
	movimientos []*entity.Movimiento
}

func (f *fakeMovRepo) Create(m *entity.Movimiento) error { f.movimientos = append(f.movimientos, m); return nil }
func (f *fakeMovRepo) GetByID(id string) (*entity.Movimiento, error) { return nil, nil }
func (f *fakeMovRepo) ListByItem(itemID, tipoItem string, from, to *time.Time, limit, offset int) ([]*entity.Movimiento, error) {
	return nil, nil
}
func (f *fakeMovRepo) List(from, to *time.Time, limit, offset int) ([]*entity.Movimiento, error) {
	return nil, nil
}

// fakeTxRunner entrega los fakes a la función; no simula rollback.
type fakeTxRunner struct {
	bienes *fakeBienRepo
	kits   *fakeKitRepo
	movs   *fakeMovRepo
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(
	bienRepo repository.BienRepository,
	kitRepo repository.KitRepository,
	movRepo repository.MovimientoRepository,
) error) error {
	return fn(f.bienes, f.kits, f.movs)
}

// newFixture arma el entorno de prueba con el registro de bloqueos compartido.
func newFixture() (*inventario.AjusteUseCase, *fakeBienRepo, *fakeKitRepo, *fakeMovRepo, *[]string) {
	locks := &[]string{}
	bienes := &fakeBienRepo{bienes: map[string]*entity.Bien{}, locks: locks}
	kits := &fakeKitRepo{kits: map[string]*entity.Kit{}, locks: locks}
	movs := &fakeMovRepo{}
	uc := inventario.NewAjusteUseCase(&fakeTxRunner{bienes: bienes, kits: kits, movs: movs})
	return uc, bienes, kits, movs, locks
}

func d(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// ──────────────────────────────────────────────────────────────────────────────
// Ajustes sobre bienes
// ──────────────────────────────────────────────────────────────────────────────

func TestAplicarAjuste_EntradaBien(t *testing.T) {
	uc, bienes, _, movs, _ := newFixture()
	bienes.bienes["b1"] = &entity.Bien{ID: "b1", Nombre: "Harina", StockActual: d(10)}

	res, err := uc.AplicarAjuste(context.Background(), inventario.AjusteInput{
		TipoItem:       entity.TipoItemBien,
		ItemID:         "b1",
		TipoMovimiento: entity.TipoAjusteEntrada,
		Cantidad:       d(5),
		Responsable:    "ana",
	})
	require.NoError(t, err)

	assert.True(t, res.StockAnterior.Equal(d(10)))
	assert.True(t, res.StockNuevo.Equal(d(15)))
	assert.True(t, res.Diferencia.Equal(d(5)))
	assert.True(t, bienes.bienes["b1"].StockActual.Equal(d(15)))

	// Exactamente una fila del ledger, con la foto antes/después.
	require.Len(t, movs.movimientos, 1)
	mov := movs.movimientos[0]
	assert.Equal(t, entity.TipoItemBien, mov.TipoItem)
	assert.Equal(t, entity.TipoAjusteEntrada, mov.TipoMovimiento)
	assert.True(t, mov.StockAnterior.Equal(d(10)))
	assert.True(t, mov.StockNuevo.Equal(d(15)))
	assert.Equal(t, "ana", mov.Responsable)
}

func TestAplicarAjuste_SalidaBien(t *testing.T) {
	uc, bienes, _, movs, _ := newFixture()
	bienes.bienes["b1"] = &entity.Bien{ID: "b1", Nombre: "Harina", StockActual: d(10)}

	res, err := uc.AplicarAjuste(context.Background(), inventario.AjusteInput{
		TipoItem:       entity.TipoItemBien,
		ItemID:         "b1",
		TipoMovimiento: entity.TipoAjusteSalida,
		Cantidad:       d(4),
	})
	require.NoError(t, err)

	assert.True(t, res.StockNuevo.Equal(d(6)))
	assert.True(t, res.Diferencia.Equal(d(-4)))
	require.Len(t, movs.movimientos, 1)
}

func TestAplicarAjuste_SalidaInsuficiente_NoMutaNada(t *testing.T) {
	uc, bienes, _, movs, _ := newFixture()
	bienes.bienes["b1"] = &entity.Bien{ID: "b1", Nombre: "Harina", StockActual: d(3)}

	_, err := uc.AplicarAjuste(context.Background(), inventario.AjusteInput{
		TipoItem:       entity.TipoItemBien,
		ItemID:         "b1",
		TipoMovimiento: entity.TipoAjusteSalida,
		Cantidad:       d(5),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, bienes.bienes["b1"].StockActual.Equal(d(3)), "el stock no debe cambiar")
	assert.Empty(t, movs.movimientos, "no debe quedar fila parcial en el ledger")
}

func TestAplicarAjuste_BienInexistente(t *testing.T) {
	uc, _, _, _, _ := newFixture()

	_, err := uc.AplicarAjuste(context.Background(), inventario.AjusteInput{
		TipoItem:       entity.TipoItemBien,
		ItemID:         "no-existe",
		TipoMovimiento: entity.TipoAjusteEntrada,
		Cantidad:       d(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAplicarAjuste_ValidacionDeEntrada(t *testing.T) {
	uc, _, _, _, _ := newFixture()

	casos := []inventario.AjusteInput{
		{TipoItem: entity.TipoItemBien, ItemID: "", TipoMovimiento: entity.TipoAjusteEntrada, Cantidad: d(1)},
		{TipoItem: entity.TipoItemBien, ItemID: "b1", TipoMovimiento: entity.TipoAjusteEntrada, Cantidad: d(0)},
		{TipoItem: entity.TipoItemBien, ItemID: "b1", TipoMovimiento: entity.TipoAjusteEntrada, Cantidad: d(-2)},
		{TipoItem: entity.TipoItemBien, ItemID: "b1", TipoMovimiento: "CUALQUIERA", Cantidad: d(1)},
		{TipoItem: "CAJA", ItemID: "b1", TipoMovimiento: entity.TipoAjusteEntrada, Cantidad: d(1)},
	}
	for _, input := range casos {
		_, err := uc.AplicarAjuste(context.Background(), input)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

// La SALIDA operativa usa las mismas reglas de piso que el ajuste de salida.
func TestAplicarAjuste_SalidaOperativa(t *testing.T) {
	uc, bienes, _, movs, _ := newFixture()
	bienes.bienes["b1"] = &entity.Bien{ID: "b1", Nombre: "Harina", StockActual: d(8)}

	res, err := uc.AplicarAjuste(context.Background(), inventario.AjusteInput{
		TipoItem:       entity.TipoItemBien,
		ItemID:         "b1",
		TipoMovimiento: entity.TipoSalida,
		Cantidad:       d(8),
	})
	require.NoError(t, err)
	assert.True(t, res.StockNuevo.IsZero())
	require.Len(t, movs.movimientos, 1)
	assert.Equal(t, entity.TipoSalida, movs.movimientos[0].TipoMovimiento)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cascada de kits
// ──────────────────────────────────────────────────────────────────────────────

func kitConComponentes(bienes *fakeBienRepo, kits *fakeKitRepo) {
	bienes.bienes["g1"] = &entity.Bien{ID: "g1", Nombre: "Tornillo", StockActual: d(100)}
	bienes.bienes["g2"] = &entity.Bien{ID: "g2", Nombre: "Tuerca", StockActual: d(100)}
	kits.kits["k1"] = &entity.Kit{
		ID: "k1", Nombre: "Kit fijación", StockActual: d(20),
		Componentes: []entity.KitComponente{
			{BienID: "g2", CantidadPorKit: d(3)},
			{BienID: "g1", CantidadPorKit: d(2)},
		},
	}
}

func TestAplicarAjuste_KitEntradaPropagaAComponentes(t *testing.T) {
	uc, bienes, kits, movs, _ := newFixture()
	kitConComponentes(bienes, kits)

	res, err := uc.AplicarAjuste(context.Background(), inventario.AjusteInput{
		TipoItem:       entity.TipoItemKit,
		ItemID:         "k1",
		TipoMovimiento: entity.TipoAjusteEntrada,
		Cantidad:       d(5),
	})
	require.NoError(t, err)

	// kit +5, g1 +5×2, g2 +5×3, todo junto
	assert.True(t, kits.kits["k1"].StockActual.Equal(d(25)))
	assert.True(t, bienes.bienes["g1"].StockActual.Equal(d(110)))
	assert.True(t, bienes.bienes["g2"].StockActual.Equal(d(115)))

	require.Len(t, res.Componentes, 2)

	// Una sola fila del ledger por el ajuste del kit.
	require.Len(t, movs.movimientos, 1)
	assert.Equal(t, entity.TipoItemKit, movs.movimientos[0].TipoItem)
	assert.True(t, movs.movimientos[0].StockAnterior.Equal(d(20)))
	assert.True(t, movs.movimientos[0].StockNuevo.Equal(d(25)))
}

func TestAplicarAjuste_KitSalidaDescuentaComponentes(t *testing.T) {
	uc, bienes, kits, _, _ := newFixture()
	kitConComponentes(bienes, kits)

	_, err := uc.AplicarAjuste(context.Background(), inventario.AjusteInput{
		TipoItem:       entity.TipoItemKit,
		ItemID:         "k1",
		TipoMovimiento: entity.TipoAjusteSalida,
		Cantidad:       d(10),
	})
	require.NoError(t, err)

	assert.True(t, kits.kits["k1"].StockActual.Equal(d(10)))
	assert.True(t, bienes.bienes["g1"].StockActual.Equal(d(80)))
	assert.True(t, bienes.bienes["g2"].StockActual.Equal(d(70)))
}

func TestAplicarAjuste_KitCascadaAbortaSiUnComponenteNoAlcanza(t *testing.T) {
	uc, bienes, kits, movs, _ := newFixture()
	kitConComponentes(bienes, kits)
	// g2 necesita 10×3=30 y solo hay 25; g1 sí alcanza.
	bienes.bienes["g2"].StockActual = d(25)

	_, err := uc.AplicarAjuste(context.Background(), inventario.AjusteInput{
		TipoItem:       entity.TipoItemKit,
		ItemID:         "k1",
		TipoMovimiento: entity.TipoAjusteSalida,
		Cantidad:       d(10),
	})
	require.Error(t, err)

	var compErr *domain.ComponentStockError
	require.ErrorAs(t, err, &compErr, "debe nombrar el componente ofensor")
	assert.Equal(t, "g2", compErr.BienID)
	assert.Equal(t, "Tuerca", compErr.BienNombre)
	assert.ErrorIs(t, err, domain.ErrInsufficientComponent)

	// Nada cambió: ni el kit, ni el componente con stock de sobra.
	assert.True(t, kits.kits["k1"].StockActual.Equal(d(20)))
	assert.True(t, bienes.bienes["g1"].StockActual.Equal(d(100)))
	assert.True(t, bienes.bienes["g2"].StockActual.Equal(d(25)))
	assert.Empty(t, movs.movimientos)
}

func TestAplicarAjuste_KitBloqueaEnOrdenDeterminista(t *testing.T) {
	uc, bienes, kits, _, locks := newFixture()
	kitConComponentes(bienes, kits)

	_, err := uc.AplicarAjuste(context.Background(), inventario.AjusteInput{
		TipoItem:       entity.TipoItemKit,
		ItemID:         "k1",
		TipoMovimiento: entity.TipoAjusteEntrada,
		Cantidad:       d(1),
	})
	require.NoError(t, err)

	// Primero la fila del kit, después los componentes en orden ascendente de
	// ID aunque el kit los declare en otro orden.
	assert.Equal(t, []string{"kit:k1", "bien:g1", "bien:g2"}, *locks)
}

func TestAplicarAjuste_KitInexistente(t *testing.T) {
	uc, _, _, _, _ := newFixture()

	_, err := uc.AplicarAjuste(context.Background(), inventario.AjusteInput{
		TipoItem:       entity.TipoItemKit,
		ItemID:         "no-existe",
		TipoMovimiento: entity.TipoAjusteEntrada,
		Cantidad:       d(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// El error del tx runner se propaga sin envolver resultados parciales.
func TestAplicarAjuste_ErrorDeTransaccion(t *testing.T) {
	errTx := errors.New("conexión caída")
	uc := inventario.NewAjusteUseCase(&txRunnerConError{err: errTx})

	res, err := uc.AplicarAjuste(context.Background(), inventario.AjusteInput{
		TipoItem:       entity.TipoItemBien,
		ItemID:         "b1",
		TipoMovimiento: entity.TipoAjusteEntrada,
		Cantidad:       d(1),
	})
	assert.Nil(t, res)
	assert.ErrorIs(t, err, errTx)
}

type txRunnerConError struct{ err error }

func (f *txRunnerConError) Run(_ context.Context, _ func(
	repository.BienRepository, repository.KitRepository, repository.MovimientoRepository,
) error) error {
	return f.err
}
