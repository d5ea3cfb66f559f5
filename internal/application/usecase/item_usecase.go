package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/inventory-lite/internal/application/dto"
	"github.com/tu-usuario/inventory-lite/internal/domain"
	"github.com/tu-usuario/inventory-lite/internal/domain/entity"
	"github.com/tu-usuario/inventory-lite/internal/domain/repository"
)

// sortKeys claves de ordenamiento aceptadas por List.
var sortKeys = map[string]bool{
	"":         true, // sin orden explícito: id ascendente
	"name":     true,
	"quantity": true,
	"price":    true,
	"category": true,
}

// ItemUseCase casos de uso CRUD y reabastecimiento para artículos.
// Toda la validación de valores vive aquí; el repositorio solo persiste.
type ItemUseCase struct {
	repo repository.ItemRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo}
}

// Create valida y registra un artículo nuevo; el almacén asigna el id.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	name := strings.TrimSpace(in.Name)
	if err := validateFields(name, in.Quantity, in.Price); err != nil {
		return nil, err
	}
	now := time.Now()
	item := &entity.Item{
		Name:      name,
		Quantity:  in.Quantity,
		Price:     in.Price,
		Category:  strings.TrimSpace(in.Category),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetByID obtiene un artículo por id. Devuelve (nil, nil) si no existe.
func (uc *ItemUseCase) GetByID(ctx context.Context, id int64) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	return toItemResponse(item), nil
}

// Update sobrescribe solo los campos presentes en la petición. Devuelve
// (nil, nil) si el id no existe; el resultado nunca deja valores negativos.
func (uc *ItemUseCase) Update(ctx context.Context, id int64, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	if in.Name != nil {
		item.Name = strings.TrimSpace(*in.Name)
	}
	if in.Quantity != nil {
		item.Quantity = *in.Quantity
	}
	if in.Price != nil {
		item.Price = *in.Price
	}
	if in.Category != nil {
		item.Category = strings.TrimSpace(*in.Category)
	}
	if err := validateFields(item.Name, item.Quantity, item.Price); err != nil {
		return nil, err
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Restock suma delta a las existencias. Devuelve (nil, nil) si el id no
// existe; si el ajuste cruzaría cero o desbordaría int64 falla y las
// existencias quedan intactas.
func (uc *ItemUseCase) Restock(ctx context.Context, id int64, delta int64) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	// Quantity nunca es negativa, así que con delta < 0 la suma no desborda.
	if delta < 0 && item.Quantity+delta < 0 {
		return nil, fmt.Errorf("%w: el ajuste %+d dejaría las existencias en %d",
			domain.ErrInvalidInput, delta, item.Quantity+delta)
	}
	if delta > 0 && item.Quantity > math.MaxInt64-delta {
		return nil, fmt.Errorf("%w: el ajuste %+d desborda el máximo de existencias",
			domain.ErrInvalidInput, delta)
	}
	updated, err := uc.repo.AdjustQuantity(ctx, id, delta)
	if err != nil {
		return nil, err
	}
	return toItemResponse(updated), nil
}

// Delete elimina el artículo de forma permanente. No hay dependientes, así
// que no cascada nada; un segundo Delete del mismo id falla con ErrNotFound.
func (uc *ItemUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

// List devuelve los artículos que cumplan el filtro de subcadena, ordenados
// por la clave pedida (ascendente, desempate por id).
func (uc *ItemUseCase) List(ctx context.Context, query, sortBy string) (*dto.ItemListResponse, error) {
	if !sortKeys[sortBy] {
		return nil, fmt.Errorf("%w: clave de orden desconocida %q", domain.ErrInvalidInput, sortBy)
	}
	list, err := uc.repo.List(ctx, repository.ListFilter{Query: strings.TrimSpace(query), SortBy: sortBy})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for i := range list {
		items = append(items, *toItemResponse(&list[i]))
	}
	return &dto.ItemListResponse{Items: items, Total: len(items)}, nil
}

// validateFields reglas compartidas por Create y Update: nombre no vacío,
// cantidad y precio nunca negativos (se rechaza, no se recorta).
func validateFields(name string, quantity int64, price decimal.Decimal) error {
	if name == "" {
		return fmt.Errorf("%w: el nombre no puede estar vacío", domain.ErrInvalidInput)
	}
	if quantity < 0 {
		return fmt.Errorf("%w: la cantidad no puede ser negativa (%d)", domain.ErrInvalidInput, quantity)
	}
	if price.IsNegative() {
		return fmt.Errorf("%w: el precio no puede ser negativo (%s)", domain.ErrInvalidInput, price)
	}
	return nil
}

func toItemResponse(i *entity.Item) *dto.ItemResponse {
	if i == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:        i.ID,
		Name:      i.Name,
		Quantity:  i.Quantity,
		Price:     i.Price,
		Category:  i.Category,
		Value:     i.Value(),
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}
