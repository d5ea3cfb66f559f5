// Package pdf implementa la generación del reporte de inventario en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Reporte de Inventario  │  Fecha de generación      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Artículos | Unidades | Valor total | Bajo umbral  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: ID | Artículo | Categoría | Cant. | Precio | Valor  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: umbral aplicado + leyenda                          │
//	└─────────────────────────────────────────────────────────────┘
//
// Las cantidades bajo el umbral se resaltan en rojo en la tabla.
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/inventory-lite/internal/application/usecase"
	"github.com/tu-usuario/inventory-lite/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa usecase.StockReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateStockReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateStockReport(
	_ context.Context,
	data usecase.StockReportData,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Inventario", true).
		WithAuthor("inventory-lite", true).
		Build()

	m := maroto.New(cfg)

	// Header principal
	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabla de artículos
	m.AddRows(tableHeaderRow())
	if len(data.Items) == 0 {
		m.AddRows(emptyRow())
	}
	for _, r := range tableItemRows(data.Items, data.Threshold) {
		m.AddRows(r)
	}

	// Footer
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(data))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha de generación (der).
func headerRow(data usecase.StockReportData) core.Row {
	fecha := data.GeneratedAt.Format("02/01/2006 15:04")

	return row.New(16).Add(
		col.New(7).Add(
			text.New("REPORTE DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Inventario local de artículos", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generado", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fecha, props.Text{
				Size: 10, Align: align.Right, Top: 7,
			}),
		),
	)
}

// summaryRow: las cuatro métricas de cabecera del tablero.
func summaryRow(data usecase.StockReportData) core.Row {
	metric := func(label, value string, valueColor *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7.5, Color: colorGray, Top: 1}),
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 6, Color: valueColor,
			}),
		)
	}

	lowColor := colorPrimary
	if data.Summary.LowStockCount > 0 {
		lowColor = colorAlert
	}
	return row.New(14).Add(
		metric("Artículos", groupThousands(strconv.FormatInt(data.Summary.ItemCount, 10)), colorPrimary),
		metric("Unidades totales", data.Summary.TotalUnitsLabel, colorPrimary),
		metric("Valor total", data.Summary.TotalValueLabel, colorPrimary),
		metric(fmt.Sprintf("Bajo umbral (<%d)", data.Threshold),
			groupThousands(strconv.FormatInt(data.Summary.LowStockCount, 10)), lowColor),
	)
}

// tableHeaderRow: cabecera de la tabla de artículos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("ID", 1, align.Center),
		h("Artículo", 4, align.Left),
		h("Categoría", 2, align.Left),
		h("Cant.", 1, align.Right),
		h("Precio", 2, align.Right),
		h("Valor", 2, align.Right),
	)
}

// tableItemRows: una fila por artículo; la cantidad va en rojo si está bajo
// el umbral.
func tableItemRows(items []entity.Item, threshold int64) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		qtyProps := props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1}
		if it.Quantity < threshold {
			qtyProps.Style = fontstyle.Bold
			qtyProps.Color = colorAlert
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				strconv.FormatInt(it.ID, 10),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(4).Add(text.New(
				it.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				nonEmpty(it.Category, "—"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1, Color: colorGray},
			)),
			col.New(1).Add(text.New(
				groupThousands(strconv.FormatInt(it.Quantity, 10)),
				qtyProps,
			)),
			col.New(2).Add(text.New(
				money(it.Price),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				money(it.Value()),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// emptyRow: marcador cuando no hay artículos que listar.
func emptyRow() core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New("Inventario vacío", props.Text{
			Size: 9, Align: align.Center, Color: colorGray, Top: 3,
		}),
	))
}

// footerRow: umbral aplicado y leyenda.
func footerRow(data usecase.StockReportData) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Umbral de existencias bajas: %d unidades.", data.Threshold),
			props.Text{Size: 7, Color: colorGray, Top: 1}),
		text.New("Reporte generado por inventory-lite a partir del estado actual del inventario local.",
			props.Text{Size: 6.5, Color: colorGray, Top: 5}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// money formatea un decimal como moneda es-CO con dos decimales.
// Ej: 1234.5 → "$1.234,50"
func money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	return "$" + groupThousands(intPart) + "," + frac
}

// groupThousands inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
