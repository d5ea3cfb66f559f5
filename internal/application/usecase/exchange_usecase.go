package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/inventory-lite/internal/application/dto"
	"github.com/tu-usuario/inventory-lite/internal/domain"
	"github.com/tu-usuario/inventory-lite/internal/domain/repository"
	"github.com/tu-usuario/inventory-lite/pkg/logger"
)

// Formatos de exportación soportados.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// ExportFile archivo listo para descarga.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExchangeUseCase importación y exportación masiva del inventario.
type ExchangeUseCase struct {
	items *ItemUseCase
	repo  repository.ItemRepository
	codec SpreadsheetCodec
	log   *logger.Logger
}

// NewExchangeUseCase construye el caso de uso. La creación de artículos pasa
// por ItemUseCase para que la importación aplique las mismas reglas que el
// alta manual.
func NewExchangeUseCase(
	items *ItemUseCase,
	repo repository.ItemRepository,
	codec SpreadsheetCodec,
	log *logger.Logger,
) *ExchangeUseCase {
	return &ExchangeUseCase{items: items, repo: repo, codec: codec, log: log}
}

// Import decodifica el archivo (XLSX o CSV, detectado por contenido), valida
// fila por fila y crea los artículos válidos. Cada fila rechazada queda en el
// resultado con su número de fila y el motivo; una fila mala nunca detiene a
// las demás. Solo un archivo ilegible o un fallo del almacén aborta todo.
func (uc *ExchangeUseCase) Import(ctx context.Context, data []byte) (*dto.ImportResult, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: el archivo está vacío", domain.ErrInvalidInput)
	}
	rows, err := uc.codec.Decode(data)
	if err != nil {
		return nil, err
	}

	result := &dto.ImportResult{
		BatchID: uuid.New().String(),
		Failed:  []dto.RowError{},
	}
	for _, row := range rows {
		in, reason := parseImportRow(row)
		if reason == "" {
			_, err := uc.items.Create(ctx, in)
			switch {
			case err == nil:
				result.Succeeded++
				continue
			case errors.Is(err, domain.ErrInvalidInput):
				reason = err.Error()
			default:
				return nil, fmt.Errorf("importar: fila %d: %w", row.Line, err)
			}
		}
		result.Failed = append(result.Failed, dto.RowError{Row: row.Line, Reason: reason})
	}

	uc.log.Info().
		Str("batch_id", result.BatchID).
		Int("succeeded", result.Succeeded).
		Int("failed", len(result.Failed)).
		Msg("Importación de inventario terminada")
	return result, nil
}

// Export serializa el inventario completo, ordenado por id, en el formato
// pedido (csv o xlsx).
func (uc *ExchangeUseCase) Export(ctx context.Context, format string) (*ExportFile, error) {
	items, err := uc.repo.List(ctx, repository.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("exportar: listar artículos: %w", err)
	}
	stamp := time.Now().Format("20060102")

	switch format {
	case FormatCSV:
		data, err := uc.codec.EncodeCSV(items)
		if err != nil {
			return nil, fmt.Errorf("exportar: %w", err)
		}
		return &ExportFile{
			Filename:    "inventario_" + stamp + ".csv",
			ContentType: "text/csv; charset=utf-8",
			Data:        data,
		}, nil
	case FormatXLSX:
		data, err := uc.codec.EncodeXLSX(items)
		if err != nil {
			return nil, fmt.Errorf("exportar: %w", err)
		}
		return &ExportFile{
			Filename:    "inventario_" + stamp + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil
	default:
		return nil, fmt.Errorf("%w: formato de exportación desconocido %q", domain.ErrInvalidInput, format)
	}
}

// parseImportRow convierte las celdas crudas en una petición de alta.
// Devuelve el motivo de rechazo (vacío si la fila es válida); se reporta
// solo el primer problema de cada fila.
func parseImportRow(row SpreadsheetRow) (dto.CreateItemRequest, string) {
	var in dto.CreateItemRequest
	if row.Name == "" {
		return in, "el nombre no puede estar vacío"
	}
	qty, err := decimal.NewFromString(row.Quantity)
	switch {
	case row.Quantity == "":
		return in, "falta la cantidad"
	case err != nil:
		return in, fmt.Sprintf("cantidad inválida: %q", row.Quantity)
	case !qty.IsInteger():
		return in, fmt.Sprintf("la cantidad debe ser un entero: %q", row.Quantity)
	case qty.IsNegative():
		return in, fmt.Sprintf("la cantidad no puede ser negativa (%s)", qty)
	case !qty.BigInt().IsInt64():
		// IntPart desbordaría en silencio por encima de int64.
		return in, fmt.Sprintf("la cantidad excede el máximo permitido: %q", row.Quantity)
	}
	price, err := decimal.NewFromString(row.Price)
	switch {
	case row.Price == "":
		return in, "falta el precio"
	case err != nil:
		return in, fmt.Sprintf("precio inválido: %q", row.Price)
	case price.IsNegative():
		return in, fmt.Sprintf("el precio no puede ser negativo (%s)", price)
	}
	in = dto.CreateItemRequest{
		Name:     row.Name,
		Quantity: qty.IntPart(),
		Price:    price,
		Category: row.Category,
	}
	return in, ""
}
