package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/inventory-lite/internal/domain/entity"
)

// NameQuantity resultado crudo de la consulta de existencias por artículo.
// Lo produce la DB; el use case lo convierte en DTO.
type NameQuantity struct {
	Name     string
	Quantity int64 // suma de existencias del nombre (los duplicados se agrupan)
}

// NameValue valor total (Σ quantity × price) por nombre de artículo.
type NameValue struct {
	Name  string
	Value decimal.Decimal
}

// StockTotals totales globales del inventario para el resumen del tablero.
type StockTotals struct {
	ItemCount  int64           // filas en la tabla
	TotalUnits int64           // Σ quantity
	TotalValue decimal.Decimal // Σ quantity × price
}

// ReportRepository define las consultas de lectura para los reportes.
// Las implementaciones son read-only e idempotentes para un estado fijo del
// almacén; se pueden recomputar libremente.
type ReportRepository interface {
	// QuantityByItem devuelve las existencias agrupadas por nombre,
	// ordenadas por nombre ascendente.
	QuantityByItem(ctx context.Context) ([]NameQuantity, error)

	// ValueByItem devuelve Σ quantity × price por nombre, ordenado por
	// nombre ascendente. La aritmética es decimal exacta.
	ValueByItem(ctx context.Context) ([]NameValue, error)

	// Totals devuelve conteo de filas, unidades totales y valor total.
	// Cero en todo si el inventario está vacío.
	Totals(ctx context.Context) (StockTotals, error)

	// LowStock devuelve los artículos con quantity < threshold, ordenados
	// por quantity y luego id.
	LowStock(ctx context.Context, threshold int64) ([]entity.Item, error)
}
