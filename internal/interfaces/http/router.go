package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/campus-it/printstock/internal/application/auth"
	"github.com/campus-it/printstock/internal/application/catalog"
	"github.com/campus-it/printstock/internal/application/ledger"
)

// RouterDeps are the router dependencies.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	BuildingUC       *catalog.BuildingUseCase
	RoomUC           *catalog.RoomUseCase
	PrinterModelUC   *catalog.PrinterModelUseCase
	CartridgeModelUC *catalog.CartridgeModelUseCase
	PrinterUC        *catalog.PrinterUseCase
	RecordMovement   *ledger.RecordMovementUseCase
	Journal          *ledger.JournalUseCase
	Balance          *ledger.BalanceUseCase
	Reconcile        *ledger.ReconcileUseCase
	JWTSecret        string
	GatewaySecret    string
}

// Router registers the API routes. Catalog writes and reconciliation are
// admin-only; staff record movements and read everything.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth. Login is public; the SSO callback is gateway-authenticated.
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/sso", GatewayMiddleware(deps.GatewaySecret), authHandler.SSO)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	admin := RequireAdmin()

	// Buildings
	buildings := protected.Group("/buildings")
	buildingHandler := NewBuildingHandler(deps.BuildingUC)
	buildings.Get("/", buildingHandler.List)
	buildings.Get("/:id", buildingHandler.GetByID)
	buildings.Get("/:id/delete-report", buildingHandler.DeleteReport)
	buildings.Post("/", admin, buildingHandler.Create)
	buildings.Put("/:id", admin, buildingHandler.Update)
	buildings.Delete("/:id", admin, buildingHandler.Delete)

	// Rooms
	rooms := protected.Group("/rooms")
	roomHandler := NewRoomHandler(deps.RoomUC)
	rooms.Get("/", roomHandler.List)
	rooms.Get("/:id", roomHandler.GetByID)
	rooms.Get("/:id/delete-report", roomHandler.DeleteReport)
	rooms.Post("/", admin, roomHandler.Create)
	rooms.Put("/:id", admin, roomHandler.Update)
	rooms.Delete("/:id", admin, roomHandler.Delete)

	// Printer models
	printerModels := protected.Group("/printer-models")
	printerModelHandler := NewPrinterModelHandler(deps.PrinterModelUC)
	printerModels.Get("/", printerModelHandler.List)
	printerModels.Get("/:id", printerModelHandler.GetByID)
	printerModels.Get("/:id/delete-report", printerModelHandler.DeleteReport)
	printerModels.Post("/", admin, printerModelHandler.Create)
	printerModels.Put("/:id", admin, printerModelHandler.Update)
	printerModels.Delete("/:id", admin, printerModelHandler.Delete)

	// Cartridge models
	cartridgeModels := protected.Group("/cartridge-models")
	cartridgeModelHandler := NewCartridgeModelHandler(deps.CartridgeModelUC)
	cartridgeModels.Get("/", cartridgeModelHandler.List)
	cartridgeModels.Get("/:id", cartridgeModelHandler.GetByID)
	cartridgeModels.Get("/:id/delete-report", cartridgeModelHandler.DeleteReport)
	cartridgeModels.Post("/", admin, cartridgeModelHandler.Create)
	cartridgeModels.Put("/:id", admin, cartridgeModelHandler.Update)
	cartridgeModels.Delete("/:id", admin, cartridgeModelHandler.Delete)

	// Printers
	printers := protected.Group("/printers")
	printerHandler := NewPrinterHandler(deps.PrinterUC)
	printers.Get("/", printerHandler.List)
	printers.Get("/:id", printerHandler.GetByID)
	printers.Get("/:id/delete-report", printerHandler.DeleteReport)
	printers.Post("/", admin, printerHandler.Create)
	printers.Put("/:id", admin, printerHandler.Update)
	printers.Delete("/:id", admin, printerHandler.Delete)

	// Stock ledger and balances
	stock := protected.Group("/stock")
	movementHandler := NewMovementHandler(deps.RecordMovement, deps.Journal)
	stockHandler := NewStockHandler(deps.Balance)
	stock.Get("/", stockHandler.Overview)
	stock.Get("/balance", stockHandler.Balance)
	stock.Post("/movements", movementHandler.Record)
	stock.Get("/movements", movementHandler.Search)
	stock.Get("/movements/:id", movementHandler.GetByID)

	// Admin tools
	adminGroup := protected.Group("/admin", admin)
	reconcileHandler := NewReconcileHandler(deps.Reconcile)
	adminGroup.Post("/reconcile", reconcileHandler.Reconcile)
}
