package spreadsheet

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/tu-usuario/inventory-lite/internal/application/usecase"
	"github.com/tu-usuario/inventory-lite/internal/domain"
	"github.com/tu-usuario/inventory-lite/internal/domain/entity"
)

// sheetName hoja única de los libros exportados.
const sheetName = "Inventario"

// decodeXLSX lee la primera hoja del libro; la fila 1 es la cabecera.
func (c *Codec) decodeXLSX(data []byte) ([]usecase.SpreadsheetRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: xlsx ilegible: %v", domain.ErrInvalidInput, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("%w: el libro no tiene hojas", domain.ErrInvalidInput)
	}
	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: leer hoja %q: %v", domain.ErrInvalidInput, sheet, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: el archivo está vacío", domain.ErrInvalidInput)
	}

	cols, err := mapHeader(records[0])
	if err != nil {
		return nil, err
	}
	var rows []usecase.SpreadsheetRow
	for i, record := range records[1:] {
		if isBlank(record) {
			continue
		}
		rows = append(rows, rowFromRecord(record, cols, i+2))
	}
	return rows, nil
}

// EncodeXLSX serializa los artículos en un libro de una sola hoja con la
// misma cabecera que el CSV. El precio va como texto para no perder
// precisión decimal al pasar por celdas numéricas.
func (c *Codec) EncodeXLSX(items []entity.Item) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}

	for col, h := range exportHeader {
		if err := setCell(f, col+1, 1, h); err != nil {
			return nil, err
		}
	}
	for i, it := range items {
		row := i + 2
		values := []any{it.ID, it.Name, it.Quantity, it.Price.String(), it.Category}
		for col, v := range values {
			if err := setCell(f, col+1, row, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: serializar libro: %w", err)
	}
	return buf.Bytes(), nil
}

func setCell(f *excelize.File, col, row int, value any) error {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("xlsx: celda (%d,%d): %w", col, row, err)
	}
	if err := f.SetCellValue(sheetName, name, value); err != nil {
		return fmt.Errorf("xlsx: escribir celda %s: %w", name, err)
	}
	return nil
}
