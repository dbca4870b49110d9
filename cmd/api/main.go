package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/deposito-pro/internal/application/auth"
	"github.com/tu-usuario/deposito-pro/internal/application/despacho"
	"github.com/tu-usuario/deposito-pro/internal/application/inventario"
	"github.com/tu-usuario/deposito-pro/internal/application/usecase"
	infrapdf "github.com/tu-usuario/deposito-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/deposito-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/deposito-pro/internal/interfaces/http"
	"github.com/tu-usuario/deposito-pro/pkg/config"
	"github.com/tu-usuario/deposito-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios sobre el pool (lecturas y escrituras de una sola fila).
	// Las operaciones multi-fila (ajustes de kit, despachos) corren sobre
	// repositorios construidos dentro de la transacción por el TxRunner.
	userRepo := postgres.NewUserRepository(pool)
	bienRepo := postgres.NewBienRepository(pool)
	kitRepo := postgres.NewKitRepository(pool)
	movRepo := postgres.NewMovimientoRepository(pool)
	bolsonRepo := postgres.NewBolsonRepository(pool)
	ordenRepo := postgres.NewOrdenVentaRepository(pool)
	despachoRepo := postgres.NewDespachoRepository(pool)
	clienteRepo := postgres.NewClienteRepository(pool)
	almacenRepo := postgres.NewAlmacenRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	etiquetaGen := infrapdf.NewEtiquetaGenerator()
	remitoGen := infrapdf.NewRemitoGenerator()

	bienUC := usecase.NewBienUseCase(bienRepo)
	kitUC := usecase.NewKitUseCase(kitRepo, bienRepo)
	bolsonUC := usecase.NewBolsonUseCase(bolsonRepo, etiquetaGen)
	ordenUC := usecase.NewOrdenVentaUseCase(ordenRepo, clienteRepo)
	clienteUC := usecase.NewClienteUseCase(clienteRepo)
	almacenUC := usecase.NewAlmacenUseCase(almacenRepo)
	movUC := usecase.NewMovimientoUseCase(movRepo)
	ajusteUC := inventario.NewAjusteUseCase(txRunner)
	criticosUC := inventario.NewCriticosUseCase(bienRepo)
	despachoUC := despacho.NewRegistrarDespachoUseCase(txRunner, bolsonRepo)
	remitoUC := despacho.NewRemitoUseCase(despachoRepo, ordenRepo, clienteRepo, bolsonRepo, remitoGen)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(log.RequestMiddleware())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Depósito Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		BienUC:     bienUC,
		KitUC:      kitUC,
		BolsonUC:   bolsonUC,
		OrdenUC:    ordenUC,
		ClienteUC:  clienteUC,
		AlmacenUC:  almacenUC,
		MovUC:      movUC,
		AjusteUC:   ajusteUC,
		CriticosUC: criticosUC,
		DespachoUC: despachoUC,
		RemitoUC:   remitoUC,
		AuthUC:     authUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
