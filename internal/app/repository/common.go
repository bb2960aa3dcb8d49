package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"wavify/internal/app/model"
)

// CommonDB implements ConversionRecorder on top of database/sql. The sqlite
// and pg packages open the connection and create the schema; the queries
// themselves live here.
type CommonDB struct {
	db           *sql.DB
	driverName   string
	table        string
	placeholders PlaceholderFunc
}

// PlaceholderFunc generates parameter placeholders for different SQL dialects
type PlaceholderFunc func(n int) string

// NewCommonDB creates a new CommonDB instance. table must be a plain
// identifier; it is interpolated into the queries.
func NewCommonDB(db *sql.DB, driverName, table string) *CommonDB {
	var placeholders PlaceholderFunc

	switch driverName {
	case "postgres":
		placeholders = func(n int) string { return fmt.Sprintf("$%d", n) }
	default:
		placeholders = func(n int) string { return "?" }
	}

	return &CommonDB{
		db:           db,
		driverName:   driverName,
		table:        table,
		placeholders: placeholders,
	}
}

// Record inserts rec as a new row.
func (c *CommonDB) Record(ctx context.Context, rec *model.ConversionRecord) (string, error) {
	EnsureID(rec)

	params := make([]string, 8)
	for i := range params {
		params[i] = c.placeholders(i + 1)
	}
	query := fmt.Sprintf(
		`INSERT INTO %s (id, filename, converted_at, mode, status, failed_stage, error_message, duration_ms) VALUES (%s)`,
		c.table, strings.Join(params, ", "),
	)

	_, err := c.db.ExecContext(ctx, query,
		rec.ID, rec.Filename, rec.ConvertedAt.UTC(), rec.Mode, rec.Status,
		rec.FailedStage, rec.ErrorMessage, rec.DurationMs,
	)
	if err != nil {
		return "", Unavailable("insert conversion record", err)
	}
	return rec.ID, nil
}

// List returns records ordered by conversion time, newest first.
func (c *CommonDB) List(ctx context.Context, limit, offset int) ([]model.ConversionRecord, error) {
	query := fmt.Sprintf(
		`SELECT id, filename, converted_at, mode, status, failed_stage, error_message, duration_ms
		 FROM %s
		 ORDER BY converted_at DESC
		 LIMIT %s OFFSET %s`,
		c.table, c.placeholders(1), c.placeholders(2),
	)

	rows, err := c.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, Unavailable("query conversion records", err)
	}
	defer rows.Close()

	records := make([]model.ConversionRecord, 0, limit)
	for rows.Next() {
		var r model.ConversionRecord
		if err := rows.Scan(
			&r.ID,
			&r.Filename,
			&r.ConvertedAt,
			&r.Mode,
			&r.Status,
			&r.FailedStage,
			&r.ErrorMessage,
			&r.DurationMs,
		); err != nil {
			return nil, Unavailable("scan conversion record", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, Unavailable("iterate conversion records", err)
	}
	return records, nil
}

// Ping checks the connection.
func (c *CommonDB) Ping(ctx context.Context) error {
	return Unavailable("ping "+c.driverName, c.db.PingContext(ctx))
}

// Close closes the connection pool.
func (c *CommonDB) Close() error {
	return c.db.Close()
}

// EnsureID assigns a fresh uuid to rec when it has none.
func EnsureID(rec *model.ConversionRecord) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
}

var _ ConversionRecorder = (*CommonDB)(nil)
