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

	"github.com/campus-it/printstock/internal/application/auth"
	"github.com/campus-it/printstock/internal/application/catalog"
	"github.com/campus-it/printstock/internal/application/ledger"
	"github.com/campus-it/printstock/internal/infrastructure/postgres"
	httpRouter "github.com/campus-it/printstock/internal/interfaces/http"
	"github.com/campus-it/printstock/pkg/config"
	"github.com/campus-it/printstock/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	buildingRepo := postgres.NewBuildingRepository(pool)
	roomRepo := postgres.NewRoomRepository(pool)
	printerModelRepo := postgres.NewPrinterModelRepository(pool)
	cartridgeModelRepo := postgres.NewCartridgeModelRepository(pool)
	printerRepo := postgres.NewPrinterRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	balanceRepo := postgres.NewBalanceRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	buildingUC := catalog.NewBuildingUseCase(buildingRepo)
	roomUC := catalog.NewRoomUseCase(roomRepo, buildingRepo)
	printerModelUC := catalog.NewPrinterModelUseCase(printerModelRepo)
	cartridgeModelUC := catalog.NewCartridgeModelUseCase(cartridgeModelRepo, printerModelRepo)
	printerUC := catalog.NewPrinterUseCase(printerRepo, roomRepo, printerModelRepo)
	recordMovementUC := ledger.NewRecordMovementUseCase(txRunner, cartridgeModelRepo, buildingRepo, printerRepo)
	journalUC := ledger.NewJournalUseCase(movementRepo)
	balanceUC := ledger.NewBalanceUseCase(balanceRepo)
	reconcileUC := ledger.NewReconcileUseCase(txRunner)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI locally: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Printstock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		BuildingUC:       buildingUC,
		RoomUC:           roomUC,
		PrinterModelUC:   printerModelUC,
		CartridgeModelUC: cartridgeModelUC,
		PrinterUC:        printerUC,
		RecordMovement:   recordMovementUC,
		Journal:          journalUC,
		Balance:          balanceUC,
		Reconcile:        reconcileUC,
		JWTSecret:        cfg.JWT.Secret,
		GatewaySecret:    cfg.SSO.GatewaySecret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
