package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/jhoicas/inventario-compras/internal/application/inventory"
	"github.com/jhoicas/inventario-compras/internal/application/purchasing"
	"github.com/jhoicas/inventario-compras/internal/application/usecase"
	"github.com/jhoicas/inventario-compras/internal/infrastructure/draftstore"
	infrapdf "github.com/jhoicas/inventario-compras/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-compras/internal/infrastructure/rest"
	httpRouter "github.com/jhoicas/inventario-compras/internal/interfaces/http"
	"github.com/jhoicas/inventario-compras/internal/observability"
	"github.com/jhoicas/inventario-compras/pkg/config"
	"github.com/jhoicas/inventario-compras/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("upstream", cfg.Upstream.BaseURL).
		Msg("iniciando aplicación")

	ctx := context.Background()
	metrics := observability.NewMetrics()

	// Servidor de inventario: única fuente de verdad de artículos, proveedores y órdenes.
	gw := rest.New(cfg.Upstream.BaseURL, cfg.Upstream.Timeout(), log, rest.WithRecorder(metrics))

	var store purchasing.DraftStore
	switch cfg.Drafts.Store {
	case "redis":
		rdb, err := draftstore.Connect(ctx, cfg.Drafts.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		store = draftstore.NewRedisStore(rdb, cfg.Drafts.TTL())
	default:
		store = draftstore.NewMemoryStore(cfg.Drafts.TTL())
	}
	log.Info().Str("store", cfg.Drafts.Store).Dur("ttl", cfg.Drafts.TTL()).Msg("borradores")

	articleUC := usecase.NewArticleUseCase(gw, gw)
	supplierUC := usecase.NewSupplierUseCase(gw)
	linkUC := usecase.NewLinkUseCase(gw)
	saleUC := usecase.NewSaleUseCase(gw, gw)

	resolver := inventory.NewLinkResolver(gw, gw, gw)
	replenishmentUC := inventory.NewReplenishmentUseCase(gw, gw)

	guard := purchasing.NewKeyedGuard()
	validator := purchasing.NewOrderValidator(gw, gw)
	// un envío hace la lectura de validación y la creación; cada una acotada por el timeout
	submitLease := 2*cfg.Upstream.Timeout() + 30*time.Second
	composer := purchasing.NewComposer(store, gw, replenishmentUC, validator, guard, log,
		purchasing.WithComposerMetrics(metrics), purchasing.WithSubmitLease(submitLease))
	lifecycle := purchasing.NewLifecycleController(gw, validator, resolver, guard, metrics, log)

	// PDF: documento de la orden para enviar al proveedor
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	orderPDFUC := purchasing.NewPDFUseCase(gw, gw, pdfGenerator, cfg.App.Name)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Upstream.Timeout() + 5*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(metrics.Middleware())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.DocsPath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.DocsPath,
			Path:     "docs",
			Title:    "Inventario Compras API",
		}))
	} else {
		log.Warn().Str("path", cfg.App.DocsPath).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ArticleUC:     articleUC,
		SupplierUC:    supplierUC,
		LinkUC:        linkUC,
		SaleUC:        saleUC,
		Replenishment: replenishmentUC,
		Resolver:      resolver,
		Composer:      composer,
		Lifecycle:     lifecycle,
		PDF:           orderPDFUC,
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
