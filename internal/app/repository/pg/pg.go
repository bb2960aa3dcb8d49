package pg

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"wavify/internal/app/repository"
)

const createTableSQL = `CREATE TABLE IF NOT EXISTS %[1]s (
	id            TEXT PRIMARY KEY,
	filename      TEXT NOT NULL,
	converted_at  TIMESTAMPTZ NOT NULL,
	mode          TEXT NOT NULL,
	status        TEXT NOT NULL,
	failed_stage  TEXT NOT NULL DEFAULT '',
	error_message TEXT NOT NULL DEFAULT '',
	duration_ms   BIGINT NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_%[1]s_converted_at ON %[1]s (converted_at DESC);`

// Open connects to postgres and ensures the records table exists. database,
// when set, overrides the database named in connectionString.
func Open(ctx context.Context, connectionString, database, table string) (*repository.CommonDB, error) {
	conn, err := ConnectionString(connectionString, database)
	if err != nil {
		return nil, repository.Unavailable("parse postgres dsn", err)
	}

	db, err := sql.Open("postgres", conn)
	if err != nil {
		return nil, repository.Unavailable("open postgres", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, repository.Unavailable("connect postgres", err)
	}

	if err := InitSchema(ctx, db, table); err != nil {
		db.Close()
		return nil, err
	}
	return repository.NewCommonDB(db, "postgres", table), nil
}

// InitSchema creates the records table and its index.
func InitSchema(ctx context.Context, db *sql.DB, table string) error {
	if _, err := db.ExecContext(ctx, fmt.Sprintf(createTableSQL, table)); err != nil {
		return repository.Unavailable("create postgres schema", err)
	}
	return nil
}

// ConnectionString normalizes a URL or key/value DSN to key/value form and
// applies the database override.
func ConnectionString(dsn, database string) (string, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		kv, err := pq.ParseURL(dsn)
		if err != nil {
			return "", err
		}
		dsn = kv
	}
	if database != "" {
		// later keys win in lib/pq's key/value parser
		dsn = strings.TrimSpace(dsn + " dbname=" + quote(database))
	}
	return dsn, nil
}

func quote(v string) string {
	if !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}
