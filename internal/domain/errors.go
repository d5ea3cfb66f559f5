package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Se clasifican en la frontera HTTP con errors.Is; los fallos de
// infraestructura (archivo, base de datos) van envueltos con %w y terminan
// como INTERNAL.
var (
	ErrNotFound     = errors.New("artículo no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
)
