package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"wavify/internal/app/repository"
)

const createTableSQL = `CREATE TABLE IF NOT EXISTS %[1]s (
	id            TEXT PRIMARY KEY,
	filename      TEXT NOT NULL,
	converted_at  TIMESTAMP NOT NULL,
	mode          TEXT NOT NULL,
	status        TEXT NOT NULL,
	failed_stage  TEXT NOT NULL DEFAULT '',
	error_message TEXT NOT NULL DEFAULT '',
	duration_ms   INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_%[1]s_converted_at ON %[1]s (converted_at);`

// Open opens (creating if needed) the sqlite database at dbFilePath and
// ensures the records table exists.
func Open(ctx context.Context, dbFilePath, table string) (*repository.CommonDB, error) {
	if dir := filepath.Dir(dbFilePath); !isMemory(dbFilePath) && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, repository.Unavailable("create sqlite directory", err)
		}
	}

	db, err := sql.Open("sqlite3", dsn(dbFilePath))
	if err != nil {
		return nil, repository.Unavailable("open sqlite", err)
	}
	// sqlite serializes writers; one connection avoids SQLITE_BUSY under load
	db.SetMaxOpenConns(1)

	if err := InitSchema(ctx, db, table); err != nil {
		db.Close()
		return nil, err
	}
	return repository.NewCommonDB(db, "sqlite3", table), nil
}

// InitSchema creates the records table and its index.
func InitSchema(ctx context.Context, db *sql.DB, table string) error {
	if _, err := db.ExecContext(ctx, fmt.Sprintf(createTableSQL, table)); err != nil {
		return repository.Unavailable("create sqlite schema", err)
	}
	return nil
}

func dsn(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	return fmt.Sprintf("file:%s?cache=shared&mode=rwc&_busy_timeout=5000", path)
}

func isMemory(path string) bool {
	return path == ":memory:" || strings.HasPrefix(path, "file:")
}
