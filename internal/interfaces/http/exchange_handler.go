package http

import (
	"errors"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/inventory-lite/internal/application/dto"
	"github.com/tu-usuario/inventory-lite/internal/application/usecase"
	"github.com/tu-usuario/inventory-lite/internal/domain"
)

// ExchangeHandler maneja la importación y exportación masiva del inventario.
type ExchangeHandler struct {
	uc *usecase.ExchangeUseCase
}

// NewExchangeHandler construye el handler.
func NewExchangeHandler(uc *usecase.ExchangeUseCase) *ExchangeHandler {
	return &ExchangeHandler{uc: uc}
}

// Import godoc
// @Summary      Importar inventario desde archivo
// @Description  Acepta CSV o XLSX (el formato se detecta por contenido, no por
//
//	extensión). Las filas válidas se crean como artículos nuevos; las
//	inválidas se devuelven con su número de fila y motivo.
//
// @Tags         exchange
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Archivo CSV o XLSX con columnas name, quantity, price y opcionalmente category"
// @Success      200   {object}  dto.ImportResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/exchange/import [post]
func (h *ExchangeHandler) Import(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "archivo requerido en el campo file"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "no se pudo abrir el archivo"})
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	out, err := h.uc.Import(c.Context(), data)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar inventario a archivo
// @Description  Descarga el inventario completo, ordenado por id, como CSV o XLSX.
// @Tags         exchange
// @Produce      application/octet-stream
// @Param        format  query  string  false  "csv o xlsx"  default(csv)
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/exchange/export [get]
func (h *ExchangeHandler) Export(c *fiber.Ctx) error {
	format := c.Query("format", usecase.FormatCSV)
	out, err := h.uc.Export(c.Context(), format)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UNSUPPORTED_FORMAT", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, out.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", out.Filename))
	return c.Send(out.Data)
}
