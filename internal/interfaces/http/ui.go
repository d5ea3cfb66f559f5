package http

import (
	_ "embed"

	"github.com/gofiber/fiber/v2"
)

//go:embed ui/index.html
var uiHTML []byte

// UI sirve el tablero embebido en el binario. La página no guarda estado
// propio: tras cada acción vuelve a pedir los datos al API.
func UI(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(uiHTML)
}
