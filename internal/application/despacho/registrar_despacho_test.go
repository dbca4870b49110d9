package despacho_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/deposito-pro/internal/application/despacho"
	"github.com/tu-usuario/deposito-pro/internal/domain"
	"github.com/tu-usuario/deposito-pro/internal/domain/entity"
	"github.com/tu-usuario/deposito-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// Sin rollback: el motor valida el lote completo antes de escribir, así que
// cualquier mutación tras una falla es una violación del contrato y estos
// tests la detectan.
// ──────────────────────────────────────────────────────────────────────────────

type fakeOrdenRepo struct {
	ordenes map[string]*entity.OrdenVenta
}

func (f *fakeOrdenRepo) Create(o *entity.OrdenVenta) error { f.ordenes[o.ID] = o; return nil }

func (f *fakeOrdenRepo) GetByID(id string) (*entity.OrdenVenta, error) {
	o, ok := f.ordenes[id]
	if !ok {
		return nil, nil
	}
	copia := *o
	copia.Lineas = append([]entity.LineaOrden(nil), o.Lineas...)
	return &copia, nil
}

func (f *fakeOrdenRepo) GetForUpdate(id string) (*entity.OrdenVenta, error) { return f.GetByID(id) }

func (f *fakeOrdenRepo) List(estado string, limit, offset int) ([]*entity.OrdenVenta, error) {
	return nil, nil
}

func (f *fakeOrdenRepo) UpdateEstado(id, estado string) error {
	o, ok := f.ordenes[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Estado = estado
	return nil
}

func (f *fakeOrdenRepo) UpdateLineaRestante(lineaID string, restante decimal.Decimal) error {
	for _, o := range f.ordenes {
		for i := range o.Lineas {
			if o.Lineas[i].ID == lineaID {
				o.Lineas[i].CantidadRestante = restante
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

type fakeBolsonRepo struct {
	bolsones map[string]*entity.Bolson // por código
	locks    []string                  // códigos en el orden en que se bloquearon
}

func (f *fakeBolsonRepo) Create(b *entity.Bolson) error { f.bolsones[b.Codigo] = b; return nil }

func (f *fakeBolsonRepo) GetByID(id string) (*entity.Bolson, error) {
	for _, b := range f.bolsones {
		if b.ID == id {
			copia := *b
			return &copia, nil
		}
	}
	return nil, nil
}

func (f *fakeBolsonRepo) GetByCodigo(codigo string) (*entity.Bolson, error) {
	b, ok := f.bolsones[codigo]
	if !ok {
		return nil, nil
	}
	copia := *b
	return &copia, nil
}

func (f *fakeBolsonRepo) GetByCodigoForUpdate(codigo string) (*entity.Bolson, error) {
	f.locks = append(f.locks, codigo)
	return f.GetByCodigo(codigo)
}

func (f *fakeBolsonRepo) MarcarDespachado(id string) error {
	for _, b := range f.bolsones {
		if b.ID == id {
			b.Despachado = true
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeBolsonRepo) List(soloDisponibles bool, limit, offset int) ([]*entity.Bolson, error) {
	return nil, nil
}

type fakeDespachoRepo struct {
	despachos []*entity.Despacho
}

func (f *fakeDespachoRepo) Create(d *entity.Despacho) error {
	f.despachos = append(f.despachos, d)
	return nil
}
func (f *fakeDespachoRepo) GetByID(id string) (*entity.Despacho, error) { return nil, nil }
func (f *fakeDespachoRepo) ListByOrden(ordenID string) ([]*entity.Despacho, error) {
	return f.despachos, nil
}

type fakeDespachoTxRunner struct {
	ordenes   *fakeOrdenRepo
	bolsones  *fakeBolsonRepo
	despachos *fakeDespachoRepo
}

func (f *fakeDespachoTxRunner) RunDespacho(_ context.Context, fn func(
	ordenRepo repository.OrdenVentaRepository,
	bolsonRepo repository.BolsonRepository,
	despachoRepo repository.DespachoRepository,
) error) error {
	return fn(f.ordenes, f.bolsones, f.despachos)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

func kg(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

type fixture struct {
	uc        *despacho.RegistrarDespachoUseCase
	ordenes   *fakeOrdenRepo
	bolsones  *fakeBolsonRepo
	despachos *fakeDespachoRepo
}

// newFixture arma una orden ABIERTA con una línea de 100 kg de "Cebolla Morada".
func newFixture() *fixture {
	ordenes := &fakeOrdenRepo{ordenes: map[string]*entity.OrdenVenta{
		"ov1": {
			ID: "ov1", Numero: "OV-20260831-ABC", Estado: entity.EstadoAbierta,
			Lineas: []entity.LineaOrden{
				{ID: "l1", OrdenID: "ov1", Producto: "Cebolla Morada", CantidadInicial: kg(100), CantidadRestante: kg(100)},
			},
		},
	}}
	bolsones := &fakeBolsonRepo{bolsones: map[string]*entity.Bolson{}}
	despachos := &fakeDespachoRepo{}
	uc := despacho.NewRegistrarDespachoUseCase(
		&fakeDespachoTxRunner{ordenes: ordenes, bolsones: bolsones, despachos: despachos},
		bolsones,
	)
	return &fixture{uc: uc, ordenes: ordenes, bolsones: bolsones, despachos: despachos}
}

func (f *fixture) agregarBolson(codigo, producto string, peso int64) {
	f.bolsones.bolsones[codigo] = &entity.Bolson{
		ID: "id-" + codigo, Codigo: codigo, Producto: producto, Peso: kg(peso),
	}
}

func (f *fixture) linea() entity.LineaOrden { return f.ordenes.ordenes["ov1"].Lineas[0] }

func (f *fixture) agregarLinea(id, producto string, cantidad int64) {
	o := f.ordenes.ordenes["ov1"]
	o.Lineas = append(o.Lineas, entity.LineaOrden{
		ID: id, OrdenID: o.ID, Producto: producto,
		CantidadInicial: kg(cantidad), CantidadRestante: kg(cantidad),
	})
}

func (f *fixture) restanteDe(lineaID string) decimal.Decimal {
	for _, l := range f.ordenes.ordenes["ov1"].Lineas {
		if l.ID == lineaID {
			return l.CantidadRestante
		}
	}
	return decimal.NewFromInt(-1)
}

// ──────────────────────────────────────────────────────────────────────────────
// RegistrarDespacho
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistrarDespacho_Parcial(t *testing.T) {
	f := newFixture()
	f.agregarBolson("BOL-1", "Cebolla Morada", 30)
	f.agregarBolson("BOL-2", "Cebolla Morada", 40)

	res, err := f.uc.RegistrarDespacho(context.Background(), "ov1", []string{"BOL-1", "BOL-2"}, "juan", "", "u1")
	require.NoError(t, err)

	// 100 - (30+40) = 30 restante; la orden sigue abierta.
	assert.Equal(t, 2, res.BolsonesDespachados)
	assert.False(t, res.OrdenCompleta)
	assert.Empty(t, res.Advertencias)
	assert.True(t, f.linea().CantidadRestante.Equal(kg(30)))
	assert.Equal(t, entity.EstadoAbierta, f.ordenes.ordenes["ov1"].Estado)

	assert.True(t, f.bolsones.bolsones["BOL-1"].Despachado)
	assert.True(t, f.bolsones.bolsones["BOL-2"].Despachado)

	require.Len(t, f.despachos.despachos, 1)
	assert.Equal(t, []string{"BOL-1", "BOL-2"}, f.despachos.despachos[0].Codigos)
	assert.Equal(t, res.DespachoID, f.despachos.despachos[0].ID)
}

func TestRegistrarDespacho_SobreDespachoClavaEnCeroConAdvertencia(t *testing.T) {
	f := newFixture()
	f.agregarBolson("BOL-1", "Cebolla Morada", 80)
	f.agregarBolson("BOL-2", "Cebolla Morada", 70)

	res, err := f.uc.RegistrarDespacho(context.Background(), "ov1", []string{"BOL-1", "BOL-2"}, "", "", "u1")
	require.NoError(t, err)

	// 150 kg contra 100 restantes: piso en cero, advertencia y orden completa.
	assert.True(t, f.linea().CantidadRestante.IsZero())
	assert.True(t, res.OrdenCompleta)
	require.Len(t, res.Advertencias, 1)
	assert.Contains(t, res.Advertencias[0], "sobre-despacho")
	assert.Equal(t, entity.EstadoEnLogistica, f.ordenes.ordenes["ov1"].Estado)
}

func TestRegistrarDespacho_CoberturaExactaCompletaLaOrden(t *testing.T) {
	f := newFixture()
	f.agregarBolson("BOL-1", "Cebolla Morada", 60)
	f.agregarBolson("BOL-2", "Cebolla Morada", 40)

	res, err := f.uc.RegistrarDespacho(context.Background(), "ov1", []string{"BOL-1", "BOL-2"}, "", "", "u1")
	require.NoError(t, err)

	assert.True(t, res.OrdenCompleta)
	assert.Empty(t, res.Advertencias, "cobertura exacta no es sobre-despacho")
	assert.Equal(t, entity.EstadoEnLogistica, f.ordenes.ordenes["ov1"].Estado)
}

func TestRegistrarDespacho_DosLineas_SoloUnaCompletaNoCierraLaOrden(t *testing.T) {
	f := newFixture()
	f.agregarLinea("l2", "Zanahoria", 50)
	f.agregarBolson("BOL-1", "Cebolla Morada", 60)
	f.agregarBolson("BOL-2", "Cebolla Morada", 40)

	res, err := f.uc.RegistrarDespacho(context.Background(), "ov1", []string{"BOL-1", "BOL-2"}, "", "", "u1")
	require.NoError(t, err)

	// La línea de cebolla llega a cero pero la de zanahoria sigue intacta:
	// la orden no se completa.
	assert.False(t, res.OrdenCompleta)
	assert.True(t, f.restanteDe("l1").IsZero())
	assert.True(t, f.restanteDe("l2").Equal(kg(50)))
	assert.Equal(t, entity.EstadoAbierta, f.ordenes.ordenes["ov1"].Estado)
}

func TestRegistrarDespacho_BloqueaBolsonesPorCodigoAscendente(t *testing.T) {
	f := newFixture()
	f.agregarBolson("BOL-1", "Cebolla Morada", 10)
	f.agregarBolson("BOL-2", "Cebolla Morada", 10)
	f.agregarBolson("BOL-3", "Cebolla Morada", 10)

	// El orden de escaneo no importa: las filas se bloquean por código
	// ascendente para que dos despachos concurrentes no se crucen.
	_, err := f.uc.RegistrarDespacho(context.Background(), "ov1", []string{"BOL-3", "BOL-1", "BOL-2"}, "", "", "u1")
	require.NoError(t, err)

	assert.Equal(t, []string{"BOL-1", "BOL-2", "BOL-3"}, f.bolsones.locks)
}

func TestRegistrarDespacho_YaDespachadoAbortaElLote(t *testing.T) {
	f := newFixture()
	f.agregarBolson("BOL-1", "Cebolla Morada", 30)
	f.agregarBolson("BOL-2", "Cebolla Morada", 40)
	f.bolsones.bolsones["BOL-2"].Despachado = true

	_, err := f.uc.RegistrarDespacho(context.Background(), "ov1", []string{"BOL-1", "BOL-2"}, "", "", "u1")
	require.ErrorIs(t, err, domain.ErrAlreadyDispatched)

	// El código válido del mismo lote tampoco se marca, y la línea no cambia.
	assert.False(t, f.bolsones.bolsones["BOL-1"].Despachado)
	assert.True(t, f.linea().CantidadRestante.Equal(kg(100)))
	assert.Empty(t, f.despachos.despachos)
}

func TestRegistrarDespacho_CodigoRepetidoEnLaSolicitud(t *testing.T) {
	f := newFixture()
	f.agregarBolson("BOL-1", "Cebolla Morada", 30)

	_, err := f.uc.RegistrarDespacho(context.Background(), "ov1", []string{"BOL-1", "BOL-1"}, "", "", "u1")
	require.ErrorIs(t, err, domain.ErrDuplicateCode)

	assert.False(t, f.bolsones.bolsones["BOL-1"].Despachado)
}

func TestRegistrarDespacho_BolsonInexistente(t *testing.T) {
	f := newFixture()
	f.agregarBolson("BOL-1", "Cebolla Morada", 30)

	_, err := f.uc.RegistrarDespacho(context.Background(), "ov1", []string{"BOL-1", "BOL-X"}, "", "", "u1")
	require.ErrorIs(t, err, domain.ErrBolsonNotFound)

	assert.False(t, f.bolsones.bolsones["BOL-1"].Despachado)
	assert.True(t, f.linea().CantidadRestante.Equal(kg(100)))
}

func TestRegistrarDespacho_ProductoSinLineaEnLaOrden(t *testing.T) {
	f := newFixture()
	f.agregarBolson("BOL-1", "Zanahoria", 30)

	_, err := f.uc.RegistrarDespacho(context.Background(), "ov1", []string{"BOL-1"}, "", "", "u1")
	require.ErrorIs(t, err, domain.ErrProductNotInOrder)
	assert.False(t, f.bolsones.bolsones["BOL-1"].Despachado)
}

func TestRegistrarDespacho_ProductoMatchSinAcentosNiMayusculas(t *testing.T) {
	f := newFixture()
	// La línea dice "Cebolla Morada"; producción carga con acentos y mayúsculas propias.
	f.agregarBolson("BOL-1", "CEBOLLA MORADÁ", 25)

	res, err := f.uc.RegistrarDespacho(context.Background(), "ov1", []string{"BOL-1"}, "", "", "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, res.BolsonesDespachados)
	assert.True(t, f.linea().CantidadRestante.Equal(kg(75)))
}

func TestRegistrarDespacho_OrdenNoAbierta(t *testing.T) {
	f := newFixture()
	f.ordenes.ordenes["ov1"].Estado = entity.EstadoEnLogistica
	f.agregarBolson("BOL-1", "Cebolla Morada", 30)

	_, err := f.uc.RegistrarDespacho(context.Background(), "ov1", []string{"BOL-1"}, "", "", "u1")
	assert.ErrorIs(t, err, domain.ErrOrderNotOpen)
}

func TestRegistrarDespacho_OrdenInexistente(t *testing.T) {
	f := newFixture()
	f.agregarBolson("BOL-1", "Cebolla Morada", 30)

	_, err := f.uc.RegistrarDespacho(context.Background(), "no-existe", []string{"BOL-1"}, "", "", "u1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegistrarDespacho_Validacion(t *testing.T) {
	f := newFixture()

	_, err := f.uc.RegistrarDespacho(context.Background(), "", []string{"BOL-1"}, "", "", "u1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.RegistrarDespacho(context.Background(), "ov1", nil, "", "", "u1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.RegistrarDespacho(context.Background(), "ov1", []string{"  "}, "", "", "u1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// VerificarBolson
// ──────────────────────────────────────────────────────────────────────────────

func TestVerificarBolson_IdempotenteSinMutarEstado(t *testing.T) {
	f := newFixture()
	f.agregarBolson("BOL-1", "Cebolla Morada", 30)

	primera, err := f.uc.VerificarBolson(context.Background(), "BOL-1")
	require.NoError(t, err)
	segunda, err := f.uc.VerificarBolson(context.Background(), "BOL-1")
	require.NoError(t, err)

	assert.Equal(t, primera, segunda, "dos verificaciones seguidas devuelven lo mismo")
	assert.False(t, primera.Despachado)
	assert.False(t, f.bolsones.bolsones["BOL-1"].Despachado, "verificar no despacha")
}

func TestVerificarBolson_Despachado(t *testing.T) {
	f := newFixture()
	f.agregarBolson("BOL-1", "Cebolla Morada", 30)
	f.bolsones.bolsones["BOL-1"].Despachado = true

	res, err := f.uc.VerificarBolson(context.Background(), "BOL-1")
	require.NoError(t, err)
	assert.True(t, res.Despachado)
	assert.Equal(t, "BOL-1", res.Bolson.Codigo)
}

func TestVerificarBolson_NoExiste(t *testing.T) {
	f := newFixture()

	_, err := f.uc.VerificarBolson(context.Background(), "BOL-X")
	assert.ErrorIs(t, err, domain.ErrBolsonNotFound)
}
