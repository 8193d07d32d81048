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
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/resto-inventario/internal/application/auth"
	"github.com/jhoicas/resto-inventario/internal/application/catalog"
	appitem "github.com/jhoicas/resto-inventario/internal/application/item"
	"github.com/jhoicas/resto-inventario/internal/application/ledger"
	"github.com/jhoicas/resto-inventario/internal/application/report"
	apptrx "github.com/jhoicas/resto-inventario/internal/application/transaction"
	"github.com/jhoicas/resto-inventario/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/resto-inventario/internal/infrastructure/pdf"
	"github.com/jhoicas/resto-inventario/internal/infrastructure/postgres"
	"github.com/jhoicas/resto-inventario/internal/infrastructure/telegram"
	httpRouter "github.com/jhoicas/resto-inventario/internal/interfaces/http"
	"github.com/jhoicas/resto-inventario/pkg/config"
	"github.com/jhoicas/resto-inventario/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	// Migraciones embebidas (goose) antes de abrir el pool.
	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones de base de datos")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	trxRepo := postgres.NewTransactionRepository(pool)
	movementRepo := postgres.NewItemMovementRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	unitRepo := postgres.NewUnitRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Avisos de compra por Telegram; sin token queda en NopNotifier.
	var notifier apptrx.Notifier = apptrx.NopNotifier{}
	if cfg.Notify.TelegramBotToken != "" {
		tg, err := telegram.New(cfg.Notify.TelegramBotToken, cfg.Notify.TelegramChatID)
		if err != nil {
			log.Fatal().Err(err).Msg("inicializar notificador de Telegram")
		}
		notifier = tg
		log.Info().Int64("chat_id", cfg.Notify.TelegramChatID).Msg("notificaciones de Telegram habilitadas")
	}

	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	itemUC := appitem.NewUseCase(txRunner, itemRepo, unitRepo, categoryRepo)
	catalogUC := catalog.NewUseCase(supplierRepo, unitRepo, categoryRepo)
	ledgerUC := ledger.NewUseCase(txRunner, itemRepo, movementRepo)
	transactionUC := apptrx.NewUseCase(txRunner, itemRepo, trxRepo, supplierRepo, unitRepo, notifier, log)
	reportUC := report.NewUseCase(reportRepo, trxRepo, map[string]report.Exporter{
		report.FormatXLSX: excel.NewStockReportExporter(),
		report.FormatPDF:  infrapdf.NewStockReportExporter(),
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Resto Inventario API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	if cfg.Metrics.Enabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		ItemUC:        itemUC,
		LedgerUC:      ledgerUC,
		CatalogUC:     catalogUC,
		TransactionUC: transactionUC,
		ReportUC:      reportUC,
		JWTSecret:     cfg.JWT.Secret,
		Logger:        log,
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
