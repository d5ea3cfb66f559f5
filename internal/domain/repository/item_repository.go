package repository

import (
	"context"

	"github.com/tu-usuario/inventory-lite/internal/domain/entity"
)

// ListFilter filtro opcional para List.
// Query es subcadena (sin distinguir mayúsculas) sobre name o category.
// SortBy admite name, quantity, price o category; el orden es ascendente con
// desempate por id. Vacío = orden por id.
type ListFilter struct {
	Query  string
	SortBy string
}

// ItemRepository define el puerto de persistencia para Item (DIP).
// GetByID devuelve (nil, nil) cuando el id no existe; Update, AdjustQuantity
// y Delete devuelven domain.ErrNotFound en ese caso.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id int64) (*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	AdjustQuantity(ctx context.Context, id int64, delta int64) (*entity.Item, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter ListFilter) ([]entity.Item, error)
}
