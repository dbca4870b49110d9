package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/deposito-pro/internal/application/dto"
	"github.com/tu-usuario/deposito-pro/internal/application/inventario"
	"github.com/tu-usuario/deposito-pro/internal/application/usecase"
	"github.com/tu-usuario/deposito-pro/internal/domain/entity"
	"github.com/tu-usuario/deposito-pro/internal/domain/repository"
	apphttp "github.com/tu-usuario/deposito-pro/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos para el flujo kit + motor de ajustes
// ──────────────────────────────────────────────────────────────────────────────

type stubKitRepo struct {
	kits map[string]*entity.Kit
}

func (s *stubKitRepo) Create(k *entity.Kit) error { s.kits[k.ID] = k; return nil }
func (s *stubKitRepo) GetByID(id string) (*entity.Kit, error) {
	k, ok := s.kits[id]
	if !ok {
		return nil, nil
	}
	copia := *k
	copia.Componentes = append([]entity.KitComponente(nil), k.Componentes...)
	return &copia, nil
}
func (s *stubKitRepo) List(int, int) ([]*entity.Kit, error) { return nil, nil }
func (s *stubKitRepo) Update(*entity.Kit) error { return nil }
func (s *stubKitRepo) UpdateStock(id string, stock decimal.Decimal) error {
	s.kits[id].StockActual = stock
	return nil
}
func (s *stubKitRepo) GetForUpdate(id string) (*entity.Kit, error) { return s.GetByID(id) }
func (s *stubKitRepo) Delete(string) error { return nil }

type stubBienRepo struct {
	bienes map[string]*entity.Bien
}

func (s *stubBienRepo) Create(b *entity.Bien) error { s.bienes[b.ID] = b; return nil }
func (s *stubBienRepo) GetByID(id string) (*entity.Bien, error) {
	b, ok := s.bienes[id]
	if !ok {
		return nil, nil
	}
	copia := *b
	return &copia, nil
}
func (s *stubBienRepo) GetByCodigo(string) (*entity.Bien, error) { return nil, nil }
func (s *stubBienRepo) List(int, int) ([]*entity.Bien, error) { return nil, nil }
func (s *stubBienRepo) ListCriticos() ([]*entity.Bien, error) { return nil, nil }
func (s *stubBienRepo) Update(*entity.Bien) error { return nil }
func (s *stubBienRepo) UpdateStock(id string, stock decimal.Decimal) error {
	s.bienes[id].StockActual = stock
	return nil
}
func (s *stubBienRepo) GetForUpdate(id string) (*entity.Bien, error) { return s.GetByID(id) }
func (s *stubBienRepo) Delete(string) error { return nil }

type stubMovRepo struct{}

func (s *stubMovRepo) Create(*entity.Movimiento) error { return nil }
func (s *stubMovRepo) GetByID(string) (*entity.Movimiento, error) { return nil, nil }
func (s *stubMovRepo) ListByItem(string, string, *time.Time, *time.Time, int, int) ([]*entity.Movimiento, error) {
	return nil, nil
}
func (s *stubMovRepo) List(*time.Time, *time.Time, int, int) ([]*entity.Movimiento, error) {
	return nil, nil
}

type stubAjusteTx struct {
	bienes *stubBienRepo
	kits   *stubKitRepo
}

func (s *stubAjusteTx) Run(_ context.Context, fn func(
	bienRepo repository.BienRepository,
	kitRepo repository.KitRepository,
	movRepo repository.MovimientoRepository,
) error) error {
	return fn(s.bienes, s.kits, &stubMovRepo{})
}

func buildKitApp() (*fiber.App, *stubKitRepo, *stubBienRepo) {
	bienes := &stubBienRepo{bienes: map[string]*entity.Bien{
		"g1": {ID: "g1", Nombre: "Tornillo", StockActual: decimal.NewFromInt(100)},
		"g2": {ID: "g2", Nombre: "Tuerca", StockActual: decimal.NewFromInt(100)},
	}}
	kits := &stubKitRepo{kits: map[string]*entity.Kit{
		"k1": {
			ID: "k1", Codigo: "KIT-1", Nombre: "Kit fijación",
			StockActual: decimal.NewFromInt(20),
			Componentes: []entity.KitComponente{
				{BienID: "g1", CantidadPorKit: decimal.NewFromInt(2)},
				{BienID: "g2", CantidadPorKit: decimal.NewFromInt(3)},
			},
		},
	}}
	kitUC := usecase.NewKitUseCase(kits, bienes)
	ajusteUC := inventario.NewAjusteUseCase(&stubAjusteTx{bienes: bienes, kits: kits})
	handler := apphttp.NewKitHandler(kitUC, ajusteUC)

	app := fiber.New()
	app.Post("/api/kits/:id/incrementar-stock", handler.IncrementarStock)
	app.Post("/api/kits/:id/descontar-stock", handler.DescontarStock)
	return app, kits, bienes
}

func postKitStock(t *testing.T, app *fiber.App, path string, cantidad int64) *http.Response {
	t.Helper()
	raw, err := json.Marshal(dto.KitStockRequest{Cantidad: decimal.NewFromInt(cantidad)})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestKitHandler_IncrementarStock_DevuelveElKitActualizado(t *testing.T) {
	app, _, bienes := buildKitApp()

	resp := postKitStock(t, app, "/api/kits/k1/incrementar-stock", 5)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.KitStockResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.Success)
	assert.Equal(t, "k1", out.Kit.ID)
	assert.True(t, out.Kit.StockActual.Equal(decimal.NewFromInt(25)),
		"la respuesta lleva el kit con su stock ya actualizado")
	assert.Len(t, out.Kit.Componentes, 2)

	// La cascada también corrió: 5 kits × 2 tornillos, 5 × 3 tuercas.
	assert.True(t, bienes.bienes["g1"].StockActual.Equal(decimal.NewFromInt(110)))
	assert.True(t, bienes.bienes["g2"].StockActual.Equal(decimal.NewFromInt(115)))
}

func TestKitHandler_DescontarStock_DevuelveElKitActualizado(t *testing.T) {
	app, _, _ := buildKitApp()

	resp := postKitStock(t, app, "/api/kits/k1/descontar-stock", 4)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.KitStockResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.Kit.StockActual.Equal(decimal.NewFromInt(16)))
}

func TestKitHandler_DescontarSinStockDeComponente_Retorna400(t *testing.T) {
	app, kits, bienes := buildKitApp()
	bienes.bienes["g2"].StockActual = decimal.NewFromInt(5) // alcanza para 1 kit, no para 4

	resp := postKitStock(t, app, "/api/kits/k1/descontar-stock", 4)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.True(t, kits.kits["k1"].StockActual.Equal(decimal.NewFromInt(20)),
		"el stock del kit no cambia si la cascada aborta")
}
