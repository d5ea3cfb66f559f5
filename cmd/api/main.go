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

	_ "github.com/tu-usuario/inventory-lite/docs"
	"github.com/tu-usuario/inventory-lite/internal/application/usecase"
	infrapdf "github.com/tu-usuario/inventory-lite/internal/infrastructure/pdf"
	"github.com/tu-usuario/inventory-lite/internal/infrastructure/spreadsheet"
	"github.com/tu-usuario/inventory-lite/internal/infrastructure/sqlite"
	httpRouter "github.com/tu-usuario/inventory-lite/internal/interfaces/http"
	"github.com/tu-usuario/inventory-lite/pkg/config"
	"github.com/tu-usuario/inventory-lite/pkg/logger"
)

// @title           Inventario Lite API
// @version         1.0
// @description     Inventario local mono-usuario: CRUD de artículos, reportes agregados, importación y exportación masiva. El estado vive en un archivo SQLite junto al binario.
// @BasePath        /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	db, err := sqlite.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir base de datos SQLite")
	}
	defer db.Close()

	itemRepo := sqlite.NewItemRepository(db)
	reportRepo := sqlite.NewReportRepository(db)

	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	itemUC := usecase.NewItemUseCase(itemRepo)
	reportUC := usecase.NewReportUseCase(itemRepo, reportRepo, pdfGenerator, int64(cfg.Report.StockThreshold))
	exchangeUC := usecase.NewExchangeUseCase(itemUC, itemRepo, spreadsheet.NewCodec(), log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    16 * 1024 * 1024, // archivos de importación
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario Lite API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ItemUC:     itemUC,
		ReportUC:   reportUC,
		ExchangeUC: exchangeUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()
	log.Info().Str("addr", cfg.HTTP.Addr()).Msg("tablero disponible en el navegador")

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
