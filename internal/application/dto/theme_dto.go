package dto

// ThemeResponse paleta de un tema del tablero. El tablero la pide al alternar
// claro/oscuro y la aplica como variables CSS; la elección no se persiste.
type ThemeResponse struct {
	Name       string `json:"name"`
	Background string `json:"background"`
	Surface    string `json:"surface"`
	Text       string `json:"text"`
	Muted      string `json:"muted"`
	Accent     string `json:"accent"`
	Alert      string `json:"alert"`
}
