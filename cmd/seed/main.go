// seed carga el inventario inicial desde un archivo CSV o XLSX usando la
// misma ruta de importación que el API (validación fila a fila incluida).
//
// Uso: go run ./cmd/seed [ruta/archivo.csv|xlsx]
// Por defecto busca inventario.csv en el directorio actual.
// La base de datos destino sale de la configuración (DB_PATH).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/tu-usuario/inventory-lite/internal/application/usecase"
	"github.com/tu-usuario/inventory-lite/internal/infrastructure/spreadsheet"
	"github.com/tu-usuario/inventory-lite/internal/infrastructure/sqlite"
	"github.com/tu-usuario/inventory-lite/pkg/config"
	"github.com/tu-usuario/inventory-lite/pkg/logger"
)

func main() {
	path := "inventario.csv"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "warn", App: cfg.App.Name})

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer archivo: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := sqlite.Open(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir base de datos: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	itemRepo := sqlite.NewItemRepository(db)
	itemUC := usecase.NewItemUseCase(itemRepo)
	exchangeUC := usecase.NewExchangeUseCase(itemUC, itemRepo, spreadsheet.NewCodec(), log)

	result, err := exchangeUC.Import(ctx, data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Importar: %v\n", err)
		os.Exit(1)
	}

	for _, f := range result.Failed {
		fmt.Fprintf(os.Stderr, "  fila %d: %s\n", f.Row, f.Reason)
	}
	fmt.Printf("Importadas %d filas en %s (%d rechazadas, lote %s)\n",
		result.Succeeded, cfg.DB.Path, len(result.Failed), result.BatchID)
	if result.Succeeded == 0 && len(result.Failed) > 0 {
		os.Exit(1)
	}
}
