package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para crear un artículo.
// Quantity y Price aceptan cero (valores por defecto del modelo).
type CreateItemRequest struct {
	Name     string          `json:"name"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
}

// UpdateItemRequest entrada para actualizar un artículo. Solo los campos
// presentes se sobrescriben (punteros nil = sin cambio).
type UpdateItemRequest struct {
	Name     *string          `json:"name"`
	Quantity *int64           `json:"quantity"`
	Price    *decimal.Decimal `json:"price"`
	Category *string          `json:"category"`
}

// RestockRequest entrada para reabastecer: delta se suma a las existencias.
// Un delta negativo es válido mientras no deje las existencias bajo cero.
type RestockRequest struct {
	Delta int64 `json:"delta"`
}

// ItemResponse salida de un artículo. Value es quantity × price.
type ItemResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Category  string          `json:"category"`
	Value     decimal.Decimal `json:"value"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ItemListResponse listado de artículos para la tabla del tablero.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Total int            `json:"total"`
}
