package http

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/inventory-lite/internal/application/dto"
	"github.com/tu-usuario/inventory-lite/internal/application/usecase"
	"github.com/tu-usuario/inventory-lite/internal/domain"
)

// ReportHandler maneja las peticiones HTTP de reportes y agregados.
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen del inventario
// @Description  Métricas de cabecera del tablero: conteo de artículos, unidades,
//
//	valor total y artículos bajo el umbral, con etiquetas formateadas.
//
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.SummaryDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Quantity godoc
// @Summary      Existencias por artículo
// @Description  Serie para el gráfico de barras: unidades totales por nombre,
//
//	en orden alfabético. Los nombres repetidos se agrupan.
//
// @Tags         reports
// @Produce      json
// @Success      200  {array}   dto.QuantityRowDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/quantity [get]
func (h *ReportHandler) Quantity(c *fiber.Ctx) error {
	out, err := h.uc.QuantityByItem(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Value godoc
// @Summary      Valor por artículo
// @Description  Serie para el gráfico de valor: cantidad × precio por nombre.
// @Tags         reports
// @Produce      json
// @Success      200  {array}   dto.ValueRowDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/value [get]
func (h *ReportHandler) Value(c *fiber.Ctx) error {
	out, err := h.uc.ValueByItem(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Distribution godoc
// @Summary      Distribución de existencias
// @Description  Fracción de las unidades totales que aporta cada artículo. Con el
//
//	inventario vacío devuelve la lista vacía.
//
// @Tags         reports
// @Produce      json
// @Success      200  {array}   dto.ShareRowDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/distribution [get]
func (h *ReportHandler) Distribution(c *fiber.Ctx) error {
	out, err := h.uc.Distribution(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Artículos con existencias bajas
// @Description  Artículos con cantidad estrictamente menor al umbral. Sin el
//
//	parámetro threshold se usa el umbral configurado.
//
// @Tags         reports
// @Produce      json
// @Param        threshold  query  int  false  "Umbral de existencias (>= 0)"
// @Success      200  {object}  dto.LowStockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	var threshold *int64
	if raw := c.Query("threshold"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: fmt.Sprintf("umbral inválido: %q", raw)})
		}
		threshold = &v
	}
	out, err := h.uc.LowStock(c.Context(), threshold)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// DownloadPDF godoc
// @Summary      Reporte de inventario en PDF
// @Description  Genera el reporte completo (resumen + tabla de artículos con los
//
//	bajos en rojo) y lo devuelve como descarga.
//
// @Tags         reports
// @Produce      application/pdf
// @Success      200  {file}    file
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/pdf [get]
func (h *ReportHandler) DownloadPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.uc.StockReportPDF(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdfBytes)
}
