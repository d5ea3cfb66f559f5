package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/inventory-lite/internal/domain"
	"github.com/tu-usuario/inventory-lite/internal/domain/entity"
	"github.com/tu-usuario/inventory-lite/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// timeLayout formato de las columnas created_at/updated_at (RFC 3339, UTC).
const timeLayout = time.RFC3339Nano

// sortColumns columnas admitidas como clave de ordenamiento. El desempate por
// id lo añade List; price se castea porque la columna es TEXT.
var sortColumns = map[string]string{
	"name":     "name COLLATE NOCASE",
	"quantity": "quantity",
	"price":    "CAST(price AS REAL)",
	"category": "category COLLATE NOCASE",
}

// ItemRepo implementación del puerto ItemRepository sobre SQLite.
type ItemRepo struct {
	db *sql.DB
}

// NewItemRepository construye el adaptador de persistencia para artículos.
func NewItemRepository(db *sql.DB) *ItemRepo {
	return &ItemRepo{db: db}
}

// Create inserta el artículo y asigna el id generado por AUTOINCREMENT.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO items (name, quantity, price, category, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		item.Name, item.Quantity, item.Price.String(), item.Category,
		formatTime(item.CreatedAt), formatTime(item.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insertar artículo: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("leer id generado: %w", err)
	}
	item.ID = id
	return nil
}

// GetByID obtiene un artículo por id. Devuelve (nil, nil) si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id int64) (*entity.Item, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, quantity, price, category, created_at, updated_at
		 FROM items WHERE id = ?`, id)
	item, err := scanItem(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("consultar artículo: %w", err)
	}
	return item, nil
}

// Update sobrescribe name, quantity, price y category del artículo.
func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE items SET name = ?, quantity = ?, price = ?, category = ?, updated_at = ?
		 WHERE id = ?`,
		item.Name, item.Quantity, item.Price.String(), item.Category,
		formatTime(item.UpdatedAt), item.ID,
	)
	if err != nil {
		return fmt.Errorf("actualizar artículo: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("filas afectadas: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdjustQuantity suma delta a las existencias en una sola sentencia guardada
// por quantity + delta >= 0, y devuelve el artículo actualizado. Si no afecta
// filas distingue entre id inexistente y ajuste que cruzaría cero.
func (r *ItemRepo) AdjustQuantity(ctx context.Context, id int64, delta int64) (*entity.Item, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE items SET quantity = quantity + ?, updated_at = ?
		 WHERE id = ? AND quantity + ? >= 0`,
		delta, formatTime(time.Now()), id, delta,
	)
	if err != nil {
		return nil, fmt.Errorf("ajustar existencias: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("filas afectadas: %w", err)
	}
	if n == 0 {
		item, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: el ajuste dejaría las existencias en negativo", domain.ErrInvalidInput)
	}
	return r.GetByID(ctx, id)
}

// Delete elimina el artículo de forma permanente (sin tombstones).
func (r *ItemRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("eliminar artículo: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("filas afectadas: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve los artículos que cumplen el filtro. Sin clave de orden se
// lista por id ascendente; con clave, ascendente con desempate por id.
func (r *ItemRepo) List(ctx context.Context, filter repository.ListFilter) ([]entity.Item, error) {
	query := `SELECT id, name, quantity, price, category, created_at, updated_at FROM items`
	var args []any
	if filter.Query != "" {
		query += ` WHERE LOWER(name) LIKE ? ESCAPE '\' OR LOWER(category) LIKE ? ESCAPE '\'`
		pattern := likePattern(filter.Query)
		args = append(args, pattern, pattern)
	}
	if col, ok := sortColumns[filter.SortBy]; ok {
		query += ` ORDER BY ` + col + ` ASC, id ASC`
	} else {
		query += ` ORDER BY id ASC`
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar artículos: %w", err)
	}
	defer rows.Close()

	var list []entity.Item
	for rows.Next() {
		item, err := scanItem(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("leer artículo: %w", err)
		}
		list = append(list, *item)
	}
	return list, rows.Err()
}

// scanItem lee una fila de items desde cualquier Scan (fila única o cursor).
func scanItem(scan func(dest ...any) error) (*entity.Item, error) {
	var (
		item      entity.Item
		price     string
		createdAt string
		updatedAt string
	)
	if err := scan(&item.ID, &item.Name, &item.Quantity, &price, &item.Category, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if item.Price, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("precio almacenado inválido %q: %w", price, err)
	}
	item.CreatedAt = parseTime(createdAt)
	item.UpdatedAt = parseTime(updatedAt)
	return &item, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime tolera filas antiguas con formato distinto devolviendo cero.
func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// likePattern arma el patrón de subcadena en minúsculas escapando los
// comodines de LIKE.
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(q)) + "%"
}
