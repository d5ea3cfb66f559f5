package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/tu-usuario/inventory-lite/internal/application/usecase"
	"github.com/tu-usuario/inventory-lite/internal/domain"
	"github.com/tu-usuario/inventory-lite/internal/domain/entity"
)

// utf8BOM marca de orden de bytes que Excel antepone al exportar CSV UTF-8.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeCSV lee un CSV con cabecera. Acepta UTF-8 (con o sin BOM) y, si los
// bytes no son UTF-8 válido, reintenta como Windows-1252, que es lo que
// produce Excel en configuraciones regionales latinas.
func (c *Codec) decodeCSV(data []byte) ([]usecase.SpreadsheetRow, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
		if err != nil {
			return nil, fmt.Errorf("%w: el archivo no es UTF-8 ni Windows-1252", domain.ErrInvalidInput)
		}
		data = decoded
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // filas cortas toleradas; se resuelven por índice
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: el archivo está vacío", domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: csv malformado: %v", domain.ErrInvalidInput, err)
	}
	cols, err := mapHeader(header)
	if err != nil {
		return nil, err
	}

	var rows []usecase.SpreadsheetRow
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, fmt.Errorf("%w: csv malformado en la fila %d: %v", domain.ErrInvalidInput, pe.Line, pe.Err)
			}
			return nil, fmt.Errorf("%w: csv malformado: %v", domain.ErrInvalidInput, err)
		}
		if isBlank(record) {
			continue
		}
		// FieldPos da la línea física: el lector se come las líneas en
		// blanco sin devolverlas y un contador propio se desfasaría.
		line, _ := r.FieldPos(0)
		rows = append(rows, rowFromRecord(record, cols, line))
	}
	return rows, nil
}

// EncodeCSV serializa los artículos con cabecera fija
// id,name,quantity,price,category, en el orden recibido.
func (c *Codec) EncodeCSV(items []entity.Item) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, fmt.Errorf("csv: escribir cabecera: %w", err)
	}
	for _, it := range items {
		record := []string{
			strconv.FormatInt(it.ID, 10),
			it.Name,
			strconv.FormatInt(it.Quantity, 10),
			it.Price.String(),
			it.Category,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("csv: escribir fila: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv: volcar búfer: %w", err)
	}
	return buf.Bytes(), nil
}
