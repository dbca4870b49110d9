package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/deposito-pro/internal/application/auth"
	"github.com/tu-usuario/deposito-pro/internal/application/despacho"
	"github.com/tu-usuario/deposito-pro/internal/application/inventario"
	"github.com/tu-usuario/deposito-pro/internal/application/usecase"
	"github.com/tu-usuario/deposito-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	BienUC     *usecase.BienUseCase
	KitUC      *usecase.KitUseCase
	BolsonUC   *usecase.BolsonUseCase
	OrdenUC    *usecase.OrdenVentaUseCase
	ClienteUC  *usecase.ClienteUseCase
	AlmacenUC  *usecase.AlmacenUseCase
	MovUC      *usecase.MovimientoUseCase
	AjusteUC   *inventario.AjusteUseCase
	CriticosUC *inventario.CriticosUseCase
	DespachoUC *despacho.RegistrarDespachoUseCase
	RemitoUC   *despacho.RemitoUseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Roles: deposito opera stock y despachos; ventas gestiona órdenes y
	// clientes; admin puede todo.
	deposito := RequireRole(entity.RoleAdmin, entity.RoleDeposito)
	ventas := RequireRole(entity.RoleAdmin, entity.RoleVentas)

	// Bienes (protegido)
	bienes := protected.Group("/bienes")
	bienHandler := NewBienHandler(deps.BienUC, deps.CriticosUC)
	bienes.Post("/", deposito, bienHandler.Create)
	bienes.Get("/", bienHandler.List)
	bienes.Get("/criticos", bienHandler.ListCriticos)
	bienes.Get("/:id", bienHandler.GetByID)
	bienes.Put("/:id", deposito, bienHandler.Update)
	bienes.Delete("/:id", deposito, bienHandler.Delete)

	// Kits (protegido)
	kits := protected.Group("/kits")
	kitHandler := NewKitHandler(deps.KitUC, deps.AjusteUC)
	kits.Post("/", deposito, kitHandler.Create)
	kits.Get("/", kitHandler.List)
	kits.Get("/:id", kitHandler.GetByID)
	kits.Put("/:id", deposito, kitHandler.Update)
	kits.Delete("/:id", deposito, kitHandler.Delete)
	kits.Post("/:id/incrementar-stock", deposito, kitHandler.IncrementarStock)
	kits.Post("/:id/descontar-stock", deposito, kitHandler.DescontarStock)

	// Ajustes, salidas y ledger de movimientos (protegido)
	inventarioHandler := NewInventarioHandler(deps.AjusteUC, deps.MovUC)
	protected.Post("/ajustes-inventario", deposito, inventarioHandler.AplicarAjuste)
	protected.Post("/salidas/procesar", deposito, inventarioHandler.ProcesarSalida)
	protected.Get("/movimientos", inventarioHandler.ListMovimientos)

	// Bolsones (protegido, producción)
	bolsones := protected.Group("/bolsones")
	bolsonHandler := NewBolsonHandler(deps.BolsonUC)
	bolsones.Post("/", deposito, bolsonHandler.Create)
	bolsones.Get("/", bolsonHandler.List)
	bolsones.Get("/:id", bolsonHandler.GetByID)
	bolsones.Get("/:id/etiqueta", bolsonHandler.Etiqueta)

	// Despachos (protegido)
	despachos := protected.Group("/despachos")
	despachoHandler := NewDespachoHandler(deps.DespachoUC, deps.RemitoUC)
	despachos.Post("/nuevo", deposito, despachoHandler.Registrar)
	despachos.Get("/verificar-bolson/:codigo", despachoHandler.VerificarBolson)
	despachos.Get("/:id/remito", despachoHandler.Remito)

	// Órdenes de venta (protegido)
	ordenes := protected.Group("/ordenes-venta")
	ordenHandler := NewOrdenVentaHandler(deps.OrdenUC)
	ordenes.Post("/", ventas, ordenHandler.Create)
	ordenes.Get("/", ordenHandler.List)
	ordenes.Get("/:id", ordenHandler.GetByID)
	ordenes.Post("/:id/completar", ventas, ordenHandler.Completar)

	// Clientes (protegido)
	clientes := protected.Group("/clientes")
	clienteHandler := NewClienteHandler(deps.ClienteUC)
	clientes.Post("/", ventas, clienteHandler.Create)
	clientes.Get("/", clienteHandler.List)
	clientes.Get("/:id", clienteHandler.GetByID)
	clientes.Put("/:id", ventas, clienteHandler.Update)
	clientes.Delete("/:id", ventas, clienteHandler.Delete)

	// Almacenes (protegido)
	almacenes := protected.Group("/almacenes")
	almacenHandler := NewAlmacenHandler(deps.AlmacenUC)
	almacenes.Post("/", deposito, almacenHandler.Create)
	almacenes.Get("/", almacenHandler.List)
	almacenes.Get("/:id", almacenHandler.GetByID)
	almacenes.Put("/:id", deposito, almacenHandler.Update)
	almacenes.Delete("/:id", deposito, almacenHandler.Delete)
}
