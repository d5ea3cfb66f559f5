package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/inventory-lite/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC     *usecase.ItemUseCase
	ReportUC   *usecase.ReportUseCase
	ExchangeUC *usecase.ExchangeUseCase
}

// Router registra el tablero embebido y las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Tablero local
	app.Get("/", UI)

	api := app.Group("/api")

	// Items
	items := api.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Post("/:id/restock", itemHandler.Restock)
	items.Delete("/:id", itemHandler.Delete)

	// Reports
	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/summary", reportHandler.Summary)
	reports.Get("/quantity", reportHandler.Quantity)
	reports.Get("/value", reportHandler.Value)
	reports.Get("/distribution", reportHandler.Distribution)
	reports.Get("/low-stock", reportHandler.LowStock)
	reports.Get("/pdf", reportHandler.DownloadPDF)

	// Exchange (importación / exportación masiva)
	exchange := api.Group("/exchange")
	exchangeHandler := NewExchangeHandler(deps.ExchangeUC)
	exchange.Post("/import", exchangeHandler.Import)
	exchange.Get("/export", exchangeHandler.Export)

	// Themes (paletas del tablero)
	themes := api.Group("/themes")
	themeHandler := NewThemeHandler()
	themes.Get("/:name", themeHandler.Get)
}
