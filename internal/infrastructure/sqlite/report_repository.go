package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/inventory-lite/internal/domain/entity"
	"github.com/tu-usuario/inventory-lite/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para los reportes del tablero.
// Las sumas de cantidades se hacen en SQL; las de valor (quantity × price) se
// pliegan en Go con aritmética decimal, porque price vive como TEXT y SUM()
// sobre él pasaría por float.
type ReportRepo struct {
	db *sql.DB
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(db *sql.DB) *ReportRepo {
	return &ReportRepo{db: db}
}

// QuantityByItem agrupa existencias por nombre exacto, orden ascendente.
// Los nombres duplicados se consolidan en una sola fila: un gráfico por nombre
// no admite etiquetas repetidas.
func (r *ReportRepo) QuantityByItem(ctx context.Context) ([]repository.NameQuantity, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, SUM(quantity) FROM items GROUP BY name ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("reportes.QuantityByItem: %w", err)
	}
	defer rows.Close()

	var results []repository.NameQuantity
	for rows.Next() {
		var row repository.NameQuantity
		if err := rows.Scan(&row.Name, &row.Quantity); err != nil {
			return nil, fmt.Errorf("reportes.QuantityByItem scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// ValueByItem devuelve Σ quantity × price por nombre, orden ascendente.
// Recorre las filas ordenadas por nombre y acumula por grupo.
func (r *ReportRepo) ValueByItem(ctx context.Context) ([]repository.NameValue, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, quantity, price FROM items ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("reportes.ValueByItem: %w", err)
	}
	defer rows.Close()

	var results []repository.NameValue
	for rows.Next() {
		var (
			name     string
			quantity int64
			price    string
		)
		if err := rows.Scan(&name, &quantity, &price); err != nil {
			return nil, fmt.Errorf("reportes.ValueByItem scan: %w", err)
		}
		p, err := decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("reportes.ValueByItem precio %q: %w", price, err)
		}
		value := decimal.NewFromInt(quantity).Mul(p)
		if n := len(results); n > 0 && results[n-1].Name == name {
			results[n-1].Value = results[n-1].Value.Add(value)
			continue
		}
		results = append(results, repository.NameValue{Name: name, Value: value})
	}
	return results, rows.Err()
}

// Totals devuelve conteo, unidades y valor total del inventario completo.
func (r *ReportRepo) Totals(ctx context.Context) (repository.StockTotals, error) {
	totals := repository.StockTotals{TotalValue: decimal.Zero}
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(quantity), 0) FROM items`).
		Scan(&totals.ItemCount, &totals.TotalUnits)
	if err != nil {
		return repository.StockTotals{}, fmt.Errorf("reportes.Totals: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT quantity, price FROM items`)
	if err != nil {
		return repository.StockTotals{}, fmt.Errorf("reportes.Totals valor: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			quantity int64
			price    string
		)
		if err := rows.Scan(&quantity, &price); err != nil {
			return repository.StockTotals{}, fmt.Errorf("reportes.Totals scan: %w", err)
		}
		p, err := decimal.NewFromString(price)
		if err != nil {
			return repository.StockTotals{}, fmt.Errorf("reportes.Totals precio %q: %w", price, err)
		}
		totals.TotalValue = totals.TotalValue.Add(decimal.NewFromInt(quantity).Mul(p))
	}
	return totals, rows.Err()
}

// LowStock devuelve los artículos con quantity < threshold, los más escasos
// primero y desempate por id.
func (r *ReportRepo) LowStock(ctx context.Context, threshold int64) ([]entity.Item, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, quantity, price, category, created_at, updated_at
		 FROM items WHERE quantity < ? ORDER BY quantity ASC, id ASC`, threshold)
	if err != nil {
		return nil, fmt.Errorf("reportes.LowStock: %w", err)
	}
	defer rows.Close()

	var list []entity.Item
	for rows.Next() {
		item, err := scanItem(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("reportes.LowStock scan: %w", err)
		}
		list = append(list, *item)
	}
	return list, rows.Err()
}
