package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/inventory-lite/internal/infrastructure/sqlite"
)

// ──────────────────────────────────────────────────────────────────────────────
// Series por artículo
// ──────────────────────────────────────────────────────────────────────────────

func TestReportRepoQuantityByItem_ConsolidaDuplicadosYOrdena(t *testing.T) {
	db := openTestDB(t)
	items := sqlite.NewItemRepository(db)
	reports := sqlite.NewReportRepository(db)

	seedItem(t, items, "Tornillo", 10, "0.10", "Ferretería")
	seedItem(t, items, "Clavo", 3, "0.02", "Ferretería")
	seedItem(t, items, "Tornillo", 5, "0.12", "Ferretería")

	rows, err := reports.QuantityByItem(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2, "las dos filas Tornillo salen como una sola etiqueta")

	assert.Equal(t, "Clavo", rows[0].Name)
	assert.Equal(t, int64(3), rows[0].Quantity)
	assert.Equal(t, "Tornillo", rows[1].Name)
	assert.Equal(t, int64(15), rows[1].Quantity)
}

func TestReportRepoValueByItem_SumaDecimalExacta(t *testing.T) {
	db := openTestDB(t)
	items := sqlite.NewItemRepository(db)
	reports := sqlite.NewReportRepository(db)

	// 3 × (1 × 0.1): en float daría 0.30000000000000004.
	seedItem(t, items, "Gotero", 1, "0.1", "Laboratorio")
	seedItem(t, items, "Gotero", 1, "0.1", "Laboratorio")
	seedItem(t, items, "Gotero", 1, "0.1", "Laboratorio")
	seedItem(t, items, "Balanza", 2, "45.50", "Laboratorio")

	rows, err := reports.ValueByItem(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Balanza", rows[0].Name)
	assert.Equal(t, "91", rows[0].Value.String())
	assert.Equal(t, "Gotero", rows[1].Name)
	assert.Equal(t, "0.3", rows[1].Value.String(), "la suma debe ser decimal, no float")
}

func TestReportRepoSeries_InventarioVacio(t *testing.T) {
	db := openTestDB(t)
	reports := sqlite.NewReportRepository(db)
	ctx := context.Background()

	quantities, err := reports.QuantityByItem(ctx)
	require.NoError(t, err)
	assert.Empty(t, quantities)

	values, err := reports.ValueByItem(ctx)
	require.NoError(t, err)
	assert.Empty(t, values)
}

// ──────────────────────────────────────────────────────────────────────────────
// Totales
// ──────────────────────────────────────────────────────────────────────────────

func TestReportRepoTotals_CuentaFilasYSumaValor(t *testing.T) {
	db := openTestDB(t)
	items := sqlite.NewItemRepository(db)
	reports := sqlite.NewReportRepository(db)

	seedItem(t, items, "Tornillo", 25, "0.10", "Ferretería")
	seedItem(t, items, "Tornillo", 10, "0.10", "Ferretería")
	seedItem(t, items, "Martillo", 2, "19.90", "Herramientas")

	totals, err := reports.Totals(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), totals.ItemCount, "los duplicados por nombre siguen siendo filas")
	assert.Equal(t, int64(37), totals.TotalUnits)
	assert.Equal(t, "43.3", totals.TotalValue.String(), "2.5 + 1 + 39.8")
}

func TestReportRepoTotals_InventarioVacio_Ceros(t *testing.T) {
	db := openTestDB(t)
	reports := sqlite.NewReportRepository(db)

	totals, err := reports.Totals(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(0), totals.ItemCount)
	assert.Equal(t, int64(0), totals.TotalUnits)
	assert.True(t, totals.TotalValue.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Existencias bajas
// ──────────────────────────────────────────────────────────────────────────────

func TestReportRepoLowStock_EstrictamenteBajoElUmbral(t *testing.T) {
	db := openTestDB(t)
	items := sqlite.NewItemRepository(db)
	reports := sqlite.NewReportRepository(db)

	seedItem(t, items, "Tornillo", 25, "0.10", "Ferretería")
	seedItem(t, items, "Perno", 2, "0.30", "Ferretería")
	seedItem(t, items, "Justo", 5, "1.00", "")
	seedItem(t, items, "Agotado", 0, "4.00", "")

	low, err := reports.LowStock(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, low, 2, "quantity == umbral no se marca: la comparación es estricta")

	assert.Equal(t, "Agotado", low[0].Name, "el más escaso primero")
	assert.Equal(t, "Perno", low[1].Name)
}

func TestReportRepoLowStock_UmbralCero_NoMarcaNada(t *testing.T) {
	db := openTestDB(t)
	items := sqlite.NewItemRepository(db)
	reports := sqlite.NewReportRepository(db)

	seedItem(t, items, "Agotado", 0, "4.00", "")

	low, err := reports.LowStock(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, low, "con umbral 0 ni siquiera quantity = 0 queda por debajo")
}
