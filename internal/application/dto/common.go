package dto

// ErrorResponse cuerpo de error HTTP.
// Codes: VALIDATION, NOT_FOUND, INVALID_BODY, UNSUPPORTED_FORMAT, INTERNAL.
// Message es apto para mostrarse tal cual en la interfaz.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StatusResponse confirmación de operaciones sin cuerpo propio (delete).
type StatusResponse struct {
	Status string `json:"status"`
}
