package dto

// RowError fallo de una fila durante la importación. Row es el número de fila
// del archivo (la cabecera es la fila 1; la primera fila de datos, la 2).
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportResult resumen de una importación. Las filas inválidas se recogen en
// Failed y no abortan el resto; una fila fallida no escribe nada.
type ImportResult struct {
	BatchID   string     `json:"batch_id"` // uuid del lote, aparece en los logs
	Succeeded int        `json:"succeeded"`
	Failed    []RowError `json:"failed"`
}
