package usecase

import (
	"context"
	"time"

	"github.com/tu-usuario/inventory-lite/internal/application/dto"
	"github.com/tu-usuario/inventory-lite/internal/domain/entity"
)

// StockReportData datos ya agregados que consume el generador del reporte.
type StockReportData struct {
	GeneratedAt time.Time
	Threshold   int64
	Summary     dto.SummaryDTO
	Items       []entity.Item // ordenados por id
}

// StockReportGenerator produce la representación gráfica (PDF) del inventario.
type StockReportGenerator interface {
	GenerateStockReport(ctx context.Context, data StockReportData) ([]byte, error)
}

// SpreadsheetRow una fila de datos de un archivo importado, con las celdas
// crudas mapeadas por cabecera. La conversión numérica y el rechazo de filas
// son decisión del caso de uso, no del códec. Line es el número de fila en
// el archivo original (la cabecera es la fila 1).
type SpreadsheetRow struct {
	Line     int
	Name     string
	Quantity string
	Price    string
	Category string
}

// SpreadsheetCodec lee y escribe el inventario en formato tabular.
type SpreadsheetCodec interface {
	// Decode detecta el formato por contenido (XLSX o CSV) y devuelve las
	// filas de datos en el orden del archivo.
	Decode(data []byte) ([]SpreadsheetRow, error)
	EncodeCSV(items []entity.Item) ([]byte, error)
	EncodeXLSX(items []entity.Item) ([]byte, error)
}
