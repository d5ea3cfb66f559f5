// Package spreadsheet lee y escribe el inventario en formato tabular
// (CSV y XLSX) para la importación y exportación masiva.
package spreadsheet

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/tu-usuario/inventory-lite/internal/application/usecase"
	"github.com/tu-usuario/inventory-lite/internal/domain"
)

// xlsxMagic firma ZIP con la que empieza todo .xlsx válido.
var xlsxMagic = []byte{0x50, 0x4B, 0x03, 0x04}

// exportHeader orden fijo de columnas en los archivos exportados. La
// importación ignora id, así que un archivo exportado se puede reimportar
// tal cual.
var exportHeader = []string{"id", "name", "quantity", "price", "category"}

// Codec implementa usecase.SpreadsheetCodec con encoding/csv y Excelize.
type Codec struct{}

var _ usecase.SpreadsheetCodec = (*Codec)(nil)

// NewCodec construye el códec. No guarda estado; es seguro compartirlo.
func NewCodec() *Codec {
	return &Codec{}
}

// Decode detecta el formato por contenido: los XLSX empiezan con la firma
// ZIP, cualquier otra cosa se intenta como CSV.
func (c *Codec) Decode(data []byte) ([]usecase.SpreadsheetRow, error) {
	if bytes.HasPrefix(data, xlsxMagic) {
		return c.decodeXLSX(data)
	}
	return c.decodeCSV(data)
}

// columns posiciones de las columnas reconocidas dentro de la cabecera.
// Un índice -1 significa que la columna no viene en el archivo.
type columns struct {
	name     int
	quantity int
	price    int
	category int
}

// mapHeader localiza las columnas por nombre, sin distinguir mayúsculas ni
// orden. name, quantity y price son obligatorias; category es opcional y
// cualquier otra columna (id incluida) se ignora.
func mapHeader(header []string) (columns, error) {
	cols := columns{name: -1, quantity: -1, price: -1, category: -1}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "name":
			cols.name = i
		case "quantity":
			cols.quantity = i
		case "price":
			cols.price = i
		case "category":
			cols.category = i
		}
	}
	for _, req := range []struct {
		label string
		idx   int
	}{
		{"name", cols.name},
		{"quantity", cols.quantity},
		{"price", cols.price},
	} {
		if req.idx < 0 {
			return cols, fmt.Errorf("%w: falta la columna %q en la cabecera", domain.ErrInvalidInput, req.label)
		}
	}
	return cols, nil
}

// rowFromRecord arma la fila mapeada; line es 1-based sobre el archivo.
func rowFromRecord(record []string, cols columns, line int) usecase.SpreadsheetRow {
	return usecase.SpreadsheetRow{
		Line:     line,
		Name:     cell(record, cols.name),
		Quantity: cell(record, cols.quantity),
		Price:    cell(record, cols.price),
		Category: cell(record, cols.category),
	}
}

// cell acceso tolerante: las filas cortas (celdas finales vacías) son
// normales tanto en CSV como en XLSX.
func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// isBlank fila sin ningún dato útil; aparecen al final de hojas de cálculo
// editadas a mano y no cuentan como error.
func isBlank(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
