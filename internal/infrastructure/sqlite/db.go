// Package sqlite implementa los puertos de persistencia sobre un archivo
// SQLite local (driver puro Go, sin cgo). Un solo proceso escribe a la vez,
// así que el pool se limita a una conexión.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/tu-usuario/inventory-lite/pkg/config"
)

// schema se aplica en cada arranque; CREATE IF NOT EXISTS lo hace idempotente.
// price se guarda como TEXT para conservar el decimal exacto (la afinidad
// NUMERIC de SQLite lo degradaría a float); las fechas van en RFC 3339 UTC.
const schema = `
CREATE TABLE IF NOT EXISTS items (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL,
	quantity   INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
	price      TEXT NOT NULL DEFAULT '0',
	category   TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_items_name ON items(name);
CREATE INDEX IF NOT EXISTS idx_items_category ON items(category);
`

// Open abre (o crea) el archivo de base de datos y garantiza el esquema.
// El directorio padre se crea si hace falta.
func Open(ctx context.Context, cfg config.DBConfig) (*sql.DB, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("crear directorio de datos: %w", err)
		}
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("abrir base de datos: %w", err)
	}

	// Un único escritor/lector: evita SQLITE_BUSY sin disciplina extra de locks.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping base de datos: %w", err)
	}
	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout = 5000`); err != nil {
		db.Close()
		return nil, fmt.Errorf("configurar busy_timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("crear esquema: %w", err)
	}
	return db, nil
}
