package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un artículo (SKU) del inventario local.
// El ID lo asigna el almacén al crear y es inmutable; Quantity y Price nunca
// son negativos (las operaciones que los dejarían bajo cero se rechazan, no
// se recortan).
type Item struct {
	ID        int64
	Name      string
	Quantity  int64
	Price     decimal.Decimal // precio unitario
	Category  string          // texto libre, opcional
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Value devuelve el valor total de la posición (quantity × price).
func (i Item) Value() decimal.Decimal {
	return decimal.NewFromInt(i.Quantity).Mul(i.Price)
}
