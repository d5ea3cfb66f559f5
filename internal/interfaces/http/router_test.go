package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/inventory-lite/internal/application/dto"
	"github.com/tu-usuario/inventory-lite/internal/application/usecase"
	"github.com/tu-usuario/inventory-lite/internal/infrastructure/pdf"
	"github.com/tu-usuario/inventory-lite/internal/infrastructure/spreadsheet"
	"github.com/tu-usuario/inventory-lite/internal/infrastructure/sqlite"
	apphttp "github.com/tu-usuario/inventory-lite/internal/interfaces/http"
	"github.com/tu-usuario/inventory-lite/pkg/config"
	"github.com/tu-usuario/inventory-lite/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testThreshold = 5

// buildTestApp levanta la aplicación completa contra una base SQLite temporal:
// mismos repositorios, casos de uso y rutas que el binario real.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := sqlite.Open(context.Background(), config.DBConfig{
		Path: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err, "debe abrirse la base de datos de prueba")
	t.Cleanup(func() { db.Close() })

	log := logger.New(logger.Config{Level: "error", App: "pruebas"})
	itemRepo := sqlite.NewItemRepository(db)
	reportRepo := sqlite.NewReportRepository(db)

	itemUC := usecase.NewItemUseCase(itemRepo)
	reportUC := usecase.NewReportUseCase(itemRepo, reportRepo, pdf.NewMarotoReportGenerator(), testThreshold)
	exchangeUC := usecase.NewExchangeUseCase(itemUC, itemRepo, spreadsheet.NewCodec(), log)

	app := fiber.New(fiber.Config{
		// Silenciar errores internos en los tests
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	apphttp.Router(app, apphttp.RouterDeps{
		ItemUC:     itemUC,
		ReportUC:   reportUC,
		ExchangeUC: exchangeUC,
	})
	return app
}

// doJSON lanza una petición con cuerpo JSON y devuelve la respuesta.
func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decodeJSON vuelca el cuerpo de la respuesta en out.
func decodeJSON(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// createItem da de alta un artículo por la API y devuelve la respuesta creada.
func createItem(t *testing.T, app *fiber.App, name string, quantity int64, price, category string) dto.ItemResponse {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/items", fiber.Map{
		"name":     name,
		"quantity": quantity,
		"price":    price,
		"category": category,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode, "el alta de %q debe responder 201", name)

	var item dto.ItemResponse
	decodeJSON(t, resp, &item)
	return item
}

// errorCode extrae el código de la respuesta de error.
func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body dto.ErrorResponse
	decodeJSON(t, resp, &body)
	return body.Code
}

// ──────────────────────────────────────────────────────────────────────────────
// Items — flujo completo de alta, ajuste y consulta
// ──────────────────────────────────────────────────────────────────────────────

func TestItems_AltaRestockYConsulta(t *testing.T) {
	app := buildTestApp(t)

	created := createItem(t, app, "Perno", 5, "0.10", "Ferretería")
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "0.5", created.Value.String(), "value = 5 × 0.10")

	// Reposición: +20 unidades.
	resp := doJSON(t, app, http.MethodPost, "/api/items/1/restock", fiber.Map{"delta": 20})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var after dto.ItemResponse
	decodeJSON(t, resp, &after)
	assert.Equal(t, int64(25), after.Quantity)

	// Con 25 unidades ya no está bajo un umbral de 10.
	resp = doJSON(t, app, http.MethodGet, "/api/reports/low-stock?threshold=10", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var low dto.LowStockResponse
	decodeJSON(t, resp, &low)
	assert.Equal(t, int64(10), low.Threshold)
	assert.Empty(t, low.Items)

	// Un retiro que cruza cero se rechaza sin tocar las existencias.
	resp = doJSON(t, app, http.MethodPost, "/api/items/1/restock", fiber.Map{"delta": -30})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))

	resp = doJSON(t, app, http.MethodGet, "/api/items/1", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var kept dto.ItemResponse
	decodeJSON(t, resp, &kept)
	assert.Equal(t, int64(25), kept.Quantity, "el rechazo no debe modificar nada")
}

func TestItems_ValidacionDeEntrada(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/items", fiber.Map{"name": "   ", "quantity": 1, "price": "1"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "nombre vacío")
	assert.Equal(t, "VALIDATION", errorCode(t, resp))

	resp = doJSON(t, app, http.MethodPost, "/api/items", fiber.Map{"name": "Clavo", "price": "-0.01"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "precio negativo")
	assert.Equal(t, "VALIDATION", errorCode(t, resp))
}

func TestItems_CuerpoIlegible(t *testing.T) {
	app := buildTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/items", strings.NewReader("{esto no es json"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body dto.ErrorResponse
	decodeJSON(t, resp, &body)
	assert.Equal(t, "INVALID_BODY", body.Code)
	assert.Equal(t, "cuerpo inválido", body.Message)
}

func TestItems_IDNoNumerico(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/items/abc", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))
}

func TestItems_NoEncontrado(t *testing.T) {
	app := buildTestApp(t)

	cases := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "/api/items/999", nil},
		{http.MethodPut, "/api/items/999", fiber.Map{"name": "Otro"}},
		{http.MethodDelete, "/api/items/999", nil},
		{http.MethodPost, "/api/items/999/restock", fiber.Map{"delta": 1}},
	}
	for _, tc := range cases {
		resp := doJSON(t, app, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, "%s %s", tc.method, tc.path)
		assert.Equal(t, "NOT_FOUND", errorCode(t, resp), "%s %s", tc.method, tc.path)
		resp.Body.Close()
	}
}

func TestItems_ActualizacionParcial(t *testing.T) {
	app := buildTestApp(t)
	created := createItem(t, app, "Martillo", 3, "19.90", "Herramientas")

	resp := doJSON(t, app, http.MethodPut, "/api/items/1", fiber.Map{"price": "24.75"})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated dto.ItemResponse
	decodeJSON(t, resp, &updated)
	assert.Equal(t, "Martillo", updated.Name, "los campos ausentes no se tocan")
	assert.Equal(t, int64(3), updated.Quantity)
	assert.Equal(t, "24.75", updated.Price.String())
	assert.Equal(t, "74.25", updated.Value.String(), "el valor se recalcula con el precio nuevo")
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
}

func TestItems_ListadoConFiltroYOrden(t *testing.T) {
	app := buildTestApp(t)
	createItem(t, app, "Pintura Azul", 3, "15", "Pinturas")
	createItem(t, app, "Brocha", 10, "2.50", "Pinturas")
	createItem(t, app, "Tornillo", 25, "0.10", "Ferretería")

	resp := doJSON(t, app, http.MethodGet, "/api/items?q=pintu", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var filtered dto.ItemListResponse
	decodeJSON(t, resp, &filtered)
	assert.Equal(t, 2, filtered.Total, "q busca en nombre y en categoría")

	resp = doJSON(t, app, http.MethodGet, "/api/items?sort=price", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sorted dto.ItemListResponse
	decodeJSON(t, resp, &sorted)
	require.Equal(t, 3, sorted.Total)
	assert.Equal(t, "Tornillo", sorted.Items[0].Name, "orden numérico por precio: 0.10, 2.50, 15")
	assert.Equal(t, "Brocha", sorted.Items[1].Name)
	assert.Equal(t, "Pintura Azul", sorted.Items[2].Name)

	resp = doJSON(t, app, http.MethodGet, "/api/items?sort=peso", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))
}

func TestItems_Eliminar(t *testing.T) {
	app := buildTestApp(t)
	createItem(t, app, "Cinta", 1, "0.99", "")

	resp := doJSON(t, app, http.MethodDelete, "/api/items/1", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var status dto.StatusResponse
	decodeJSON(t, resp, &status)
	assert.Equal(t, "eliminado", status.Status)

	resp = doJSON(t, app, http.MethodGet, "/api/items/1", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "el borrado es permanente")
}

// ──────────────────────────────────────────────────────────────────────────────
// Reports — resumen, series y PDF
// ──────────────────────────────────────────────────────────────────────────────

func TestReports_ResumenYSeries(t *testing.T) {
	app := buildTestApp(t)
	createItem(t, app, "Tornillo", 10, "0.10", "Ferretería")
	createItem(t, app, "Martillo", 6, "19.90", "Herramientas")
	createItem(t, app, "Perno", 4, "0.30", "Ferretería")

	// Resumen: 20 unidades, 1 + 119.4 + 1.2 = 121.6; Perno (4 < 5) bajo.
	resp := doJSON(t, app, http.MethodGet, "/api/reports/summary", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var summary dto.SummaryDTO
	decodeJSON(t, resp, &summary)
	assert.Equal(t, int64(3), summary.ItemCount)
	assert.Equal(t, int64(20), summary.TotalUnits)
	assert.Equal(t, "121.6", summary.TotalValue.String())
	assert.Equal(t, int64(1), summary.LowStockCount)
	assert.Equal(t, int64(testThreshold), summary.Threshold)
	assert.Equal(t, "20", summary.TotalUnitsLabel)
	assert.Equal(t, "$121,60", summary.TotalValueLabel,
		"la etiqueta va en formato es-CO: coma decimal y dos dígitos")

	// Serie de cantidades, alfabética y con nombres agrupados.
	resp = doJSON(t, app, http.MethodGet, "/api/reports/quantity", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var quantities []dto.QuantityRowDTO
	decodeJSON(t, resp, &quantities)
	require.Len(t, quantities, 3)
	assert.Equal(t, "Martillo", quantities[0].Name)
	assert.Equal(t, int64(6), quantities[0].Quantity)
	assert.Equal(t, "Tornillo", quantities[2].Name)

	// Serie de valores.
	resp = doJSON(t, app, http.MethodGet, "/api/reports/value", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var values []dto.ValueRowDTO
	decodeJSON(t, resp, &values)
	require.Len(t, values, 3)
	assert.Equal(t, "119.4", values[0].Value.String(), "Martillo: 6 × 19.90")

	// Distribución: 6/20, 4/20 y 10/20.
	resp = doJSON(t, app, http.MethodGet, "/api/reports/distribution", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var shares []dto.ShareRowDTO
	decodeJSON(t, resp, &shares)
	require.Len(t, shares, 3)
	assert.Equal(t, "0.3", shares[0].Share.String())
	assert.Equal(t, "0.2", shares[1].Share.String())
	assert.Equal(t, "0.5", shares[2].Share.String())

	// Existencias bajas con el umbral configurado.
	resp = doJSON(t, app, http.MethodGet, "/api/reports/low-stock", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var low dto.LowStockResponse
	decodeJSON(t, resp, &low)
	assert.Equal(t, int64(testThreshold), low.Threshold)
	require.Len(t, low.Items, 1)
	assert.Equal(t, "Perno", low.Items[0].Name)
}

func TestReports_UmbralInvalido(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/reports/low-stock?threshold=abc", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))

	resp = doJSON(t, app, http.MethodGet, "/api/reports/low-stock?threshold=-1", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))
}

func TestReports_DescargaPDF(t *testing.T) {
	app := buildTestApp(t)
	createItem(t, app, "Tornillo", 25, "0.10", "Ferretería")
	createItem(t, app, "Perno", 2, "0.30", "Ferretería")

	resp := doJSON(t, app, http.MethodGet, "/api/reports/pdf", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Regexp(t, `inventario_\d{8}\.pdf`, resp.Header.Get(fiber.HeaderContentDisposition))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.True(t, len(body) > 4, "el PDF no puede venir vacío")
	assert.Equal(t, "%PDF", string(body[:4]), "la descarga debe ser un PDF de verdad")
}

// ──────────────────────────────────────────────────────────────────────────────
// Exchange — exportar, reimportar y formatos
// ──────────────────────────────────────────────────────────────────────────────

func TestExchange_ExportarYReimportar(t *testing.T) {
	app := buildTestApp(t)
	createItem(t, app, "Tornillo", 25, "0.10", "Ferretería")
	createItem(t, app, "Pintura Látex", 3, "19.99", "Pinturas")

	// Exportación CSV.
	resp := doJSON(t, app, http.MethodGet, "/api/exchange/export?format=csv", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get(fiber.HeaderContentType))
	assert.Regexp(t, `inventario_\d{8}\.csv`, resp.Header.Get(fiber.HeaderContentDisposition))

	exported, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(exported), "id,name,quantity,price,category\n"))

	// El archivo exportado se reimporta tal cual; el id se ignora.
	result := importFile(t, app, "inventario.csv", exported)
	assert.Equal(t, 2, result.Succeeded)
	assert.Empty(t, result.Failed)
	assert.NotEmpty(t, result.BatchID)

	resp = doJSON(t, app, http.MethodGet, "/api/items", nil)
	defer resp.Body.Close()
	var list dto.ItemListResponse
	decodeJSON(t, resp, &list)
	assert.Equal(t, 4, list.Total, "la importación crea filas nuevas, no fusiona")

	// Exportación XLSX.
	resp = doJSON(t, app, http.MethodGet, "/api/exchange/export?format=xlsx", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	xlsxBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.True(t, len(xlsxBody) > 4)
	assert.Equal(t, []byte{0x50, 0x4B, 0x03, 0x04}, xlsxBody[:4])
}

func TestExchange_ImportacionConFilasMalas(t *testing.T) {
	app := buildTestApp(t)

	csvData := []byte("name,quantity,price,category\n" +
		"Tornillo,25,0.10,Ferretería\n" +
		"SinPrecio,3,,\n")
	result := importFile(t, app, "lote.csv", csvData)

	assert.Equal(t, 1, result.Succeeded)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, 3, result.Failed[0].Row, "el número de fila es el del archivo")
	assert.Equal(t, "falta el precio", result.Failed[0].Reason)
}

func TestExchange_FormatoYCampoInvalidos(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/exchange/export?format=pdf", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "UNSUPPORTED_FORMAT", errorCode(t, resp))

	// Importación sin el campo file.
	resp = doJSON(t, app, http.MethodPost, "/api/exchange/import", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))
}

// importFile sube el archivo como multipart y devuelve el resultado decodificado.
func importFile(t *testing.T, app *fiber.App, filename string, data []byte) dto.ImportResult {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/exchange/import", &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "la importación debe responder 200")

	var result dto.ImportResult
	decodeJSON(t, resp, &result)
	return result
}

// ──────────────────────────────────────────────────────────────────────────────
// Themes y tablero embebido
// ──────────────────────────────────────────────────────────────────────────────

func TestThemes_PaletasConocidas(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/themes/dark", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var theme dto.ThemeResponse
	decodeJSON(t, resp, &theme)
	assert.Equal(t, "dark", theme.Name)
	assert.Equal(t, "#0e1117", theme.Background)

	resp = doJSON(t, app, http.MethodGet, "/api/themes/neon", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(t, resp))
}

func TestUI_TableroEmbebido(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/html")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Inventario", "el tablero embebido debe servirse en la raíz")
}
