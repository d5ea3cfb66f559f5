package dto

import "github.com/shopspring/decimal"

// QuantityRowDTO fila del gráfico de existencias por artículo.
type QuantityRowDTO struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

// ValueRowDTO fila del gráfico de valor por artículo (quantity × price).
type ValueRowDTO struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// ShareRowDTO fila del gráfico de distribución: fracción de las existencias
// totales que aporta cada nombre. Las fracciones suman 1 salvo redondeo.
type ShareRowDTO struct {
	Name  string          `json:"name"`
	Share decimal.Decimal `json:"share"`
}

// LowStockResponse artículos bajo el umbral, con el umbral aplicado.
type LowStockResponse struct {
	Threshold int64          `json:"threshold"`
	Items     []ItemResponse `json:"items"`
}

// SummaryDTO respuesta de GET /api/reports/summary.
// Las métricas de cabecera del tablero: conteos crudos más etiquetas ya
// formateadas con separador de miles (es-CO) listas para pintar.
type SummaryDTO struct {
	ItemCount       int64           `json:"item_count"`
	TotalUnits      int64           `json:"total_units"`
	TotalValue      decimal.Decimal `json:"total_value"`
	LowStockCount   int64           `json:"low_stock_count"`
	Threshold       int64           `json:"threshold"`
	TotalUnitsLabel string          `json:"total_units_label"` // ej: "12.480"
	TotalValueLabel string          `json:"total_value_label"` // ej: "$1.234.567,89"
}
