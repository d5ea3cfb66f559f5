package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/inventory-lite/internal/application/dto"
)

// themes paletas disponibles. El acento coincide con el azul del reporte PDF.
var themes = map[string]dto.ThemeResponse{
	"light": {
		Name:       "light",
		Background: "#f6f7f9",
		Surface:    "#ffffff",
		Text:       "#1f2430",
		Muted:      "#6b7280",
		Accent:     "#00467f",
		Alert:      "#b41e1e",
	},
	"dark": {
		Name:       "dark",
		Background: "#0e1117",
		Surface:    "#1a1f2b",
		Text:       "#e6e8ee",
		Muted:      "#9aa3b2",
		Accent:     "#4ea3e0",
		Alert:      "#e06c6c",
	},
}

// ThemeHandler entrega las paletas del tablero.
type ThemeHandler struct{}

// NewThemeHandler construye el handler.
func NewThemeHandler() *ThemeHandler { return &ThemeHandler{} }

// Get godoc
// @Summary      Obtener paleta de un tema
// @Tags         themes
// @Produce      json
// @Param        name  path  string  true  "Nombre del tema: light o dark"
// @Success      200   {object}  dto.ThemeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/themes/{name} [get]
func (h *ThemeHandler) Get(c *fiber.Ctx) error {
	theme, ok := themes[c.Params("name")]
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tema no encontrado"})
	}
	return c.JSON(theme)
}
