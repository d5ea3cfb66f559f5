package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/tu-usuario/inventory-lite/internal/application/dto"
	"github.com/tu-usuario/inventory-lite/internal/domain"
	"github.com/tu-usuario/inventory-lite/internal/domain/repository"
)

// ReportUseCase agregados de solo lectura sobre el inventario: series para
// gráficos, alertas de existencias bajas, resumen y reporte PDF.
type ReportUseCase struct {
	items     repository.ItemRepository
	reports   repository.ReportRepository
	generator StockReportGenerator
	threshold int64
	printer   *message.Printer
}

// NewReportUseCase construye el caso de uso. threshold es el umbral de
// existencias bajas que se usa cuando la petición no trae uno propio.
func NewReportUseCase(
	items repository.ItemRepository,
	reports repository.ReportRepository,
	generator StockReportGenerator,
	threshold int64,
) *ReportUseCase {
	return &ReportUseCase{
		items:     items,
		reports:   reports,
		generator: generator,
		threshold: threshold,
		printer:   message.NewPrinter(language.MustParse("es-CO")),
	}
}

// QuantityByItem unidades totales por nombre de artículo, orden alfabético.
func (uc *ReportUseCase) QuantityByItem(ctx context.Context) ([]dto.QuantityRowDTO, error) {
	rows, err := uc.reports.QuantityByItem(ctx)
	if err != nil {
		return nil, fmt.Errorf("reportes: cantidades: %w", err)
	}
	out := make([]dto.QuantityRowDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.QuantityRowDTO{Name: r.Name, Quantity: r.Quantity})
	}
	return out, nil
}

// ValueByItem valor monetario (cantidad × precio) por nombre de artículo.
func (uc *ReportUseCase) ValueByItem(ctx context.Context) ([]dto.ValueRowDTO, error) {
	rows, err := uc.reports.ValueByItem(ctx)
	if err != nil {
		return nil, fmt.Errorf("reportes: valores: %w", err)
	}
	out := make([]dto.ValueRowDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ValueRowDTO{Name: r.Name, Value: r.Value})
	}
	return out, nil
}

// Distribution proporción de unidades por artículo sobre el total. Con
// inventario vacío (o todo en cero) devuelve la lista vacía, nunca divide
// entre cero.
func (uc *ReportUseCase) Distribution(ctx context.Context) ([]dto.ShareRowDTO, error) {
	rows, err := uc.reports.QuantityByItem(ctx)
	if err != nil {
		return nil, fmt.Errorf("reportes: distribución: %w", err)
	}
	var total int64
	for _, r := range rows {
		total += r.Quantity
	}
	out := make([]dto.ShareRowDTO, 0, len(rows))
	if total == 0 {
		return out, nil
	}
	divisor := decimal.NewFromInt(total)
	for _, r := range rows {
		out = append(out, dto.ShareRowDTO{
			Name:  r.Name,
			Share: decimal.NewFromInt(r.Quantity).Div(divisor),
		})
	}
	return out, nil
}

// LowStock artículos con existencias estrictamente por debajo del umbral.
// threshold nil usa el umbral configurado; uno negativo es rechazado.
func (uc *ReportUseCase) LowStock(ctx context.Context, threshold *int64) (*dto.LowStockResponse, error) {
	limit := uc.threshold
	if threshold != nil {
		limit = *threshold
	}
	if limit < 0 {
		return nil, fmt.Errorf("%w: el umbral no puede ser negativo (%d)", domain.ErrInvalidInput, limit)
	}
	items, err := uc.reports.LowStock(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("reportes: existencias bajas: %w", err)
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for i := range items {
		out = append(out, *toItemResponse(&items[i]))
	}
	return &dto.LowStockResponse{Threshold: limit, Items: out}, nil
}

// Summary métricas de cabecera del tablero: conteos, valor total y sus
// etiquetas ya formateadas en es-CO (separador de miles, dos decimales).
func (uc *ReportUseCase) Summary(ctx context.Context) (*dto.SummaryDTO, error) {
	totals, err := uc.reports.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("reportes: totales: %w", err)
	}
	low, err := uc.reports.LowStock(ctx, uc.threshold)
	if err != nil {
		return nil, fmt.Errorf("reportes: existencias bajas: %w", err)
	}
	summary := &dto.SummaryDTO{
		ItemCount:     totals.ItemCount,
		TotalUnits:    totals.TotalUnits,
		TotalValue:    totals.TotalValue,
		LowStockCount: int64(len(low)),
		Threshold:     uc.threshold,
	}
	summary.TotalUnitsLabel = uc.formatUnits(totals.TotalUnits)
	summary.TotalValueLabel = uc.formatMoney(totals.TotalValue)
	return summary, nil
}

// StockReportPDF genera el reporte de inventario en PDF y el nombre de
// archivo sugerido para la descarga.
func (uc *ReportUseCase) StockReportPDF(ctx context.Context) (pdfBytes []byte, filename string, err error) {
	summary, err := uc.Summary(ctx)
	if err != nil {
		return nil, "", err
	}
	items, err := uc.items.List(ctx, repository.ListFilter{})
	if err != nil {
		return nil, "", fmt.Errorf("reportes: listar artículos: %w", err)
	}
	now := time.Now()
	pdfBytes, err = uc.generator.GenerateStockReport(ctx, StockReportData{
		GeneratedAt: now,
		Threshold:   uc.threshold,
		Summary:     *summary,
		Items:       items,
	})
	if err != nil {
		return nil, "", fmt.Errorf("reportes: generación de PDF fallida: %w", err)
	}
	filename = fmt.Sprintf("inventario_%s.pdf", now.Format("20060102"))
	return pdfBytes, filename, nil
}

func (uc *ReportUseCase) formatUnits(n int64) string {
	return uc.printer.Sprintf("%v", number.Decimal(n))
}

func (uc *ReportUseCase) formatMoney(d decimal.Decimal) string {
	f, _ := d.Float64()
	return uc.printer.Sprintf("$%v", number.Decimal(f,
		number.MaxFractionDigits(2), number.MinFractionDigits(2)))
}
