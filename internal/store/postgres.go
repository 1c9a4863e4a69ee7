package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/PratikDhanave/car-inventory-bot/internal/models"
)

// schemaSQL bootstraps the inventory table for local development.
//
//go:embed schema.sql
var schemaSQL string

// PostgresStore queries the inventory table over a pooled connection.
type PostgresStore struct {
	db      *sql.DB
	table   string // sanitized identifier
	maxRows int
}

// NewPostgresStore opens a pool through the pgx driver and fails fast if the
// database is unreachable.
func NewPostgresStore(ctx context.Context, dbURL string, opts Options) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return NewPostgresStoreFromDB(db, opts), nil
}

// NewPostgresStoreFromDB wraps an existing handle.
func NewPostgresStoreFromDB(db *sql.DB, opts Options) *PostgresStore {
	opts = opts.withDefaults()
	return &PostgresStore{
		db:      db,
		table:   pgx.Identifier(strings.Split(opts.Table, ".")).Sanitize(),
		maxRows: opts.MaxRows,
	}
}

// EnsureSchema creates the inventory table if it does not exist.
func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, strings.ReplaceAll(schemaSQL, "{{table}}", p.table))
	return err
}

// Ping is used by the readiness endpoint.
func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// Close shuts down the pool.
func (p *PostgresStore) Close() error {
	return p.db.Close()
}

func (p *PostgresStore) selectQuery() string {
	return fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE %s ILIKE $1 AND %s ILIKE $2 AND %s >= $3 LIMIT $4`,
		quote(ColBrand), quote(ColModel), quote(ColYear), quote(ColPrice),
		p.table,
		quote(ColBrand), quote(ColModel), quote(ColYear),
	)
}

// FindCars runs the single filtered read. An empty result is not an error.
func (p *PostgresStore) FindCars(ctx context.Context, f Filter) ([]models.Car, error) {
	brand, model := f.Patterns()

	rows, err := p.db.QueryContext(ctx, p.selectQuery(), brand, model, f.MinYear, p.maxRows)
	if err != nil {
		return nil, fmt.Errorf("query inventory: %w", err)
	}
	defer rows.Close()

	var cars []models.Car
	for rows.Next() {
		var c models.Car
		if err := rows.Scan(&c.Brand, &c.Model, &c.Year, &c.Price); err != nil {
			return nil, fmt.Errorf("scan inventory row: %w", err)
		}
		cars = append(cars, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inventory rows: %w", err)
	}
	return cars, nil
}

func quote(col string) string {
	return pgx.Identifier{col}.Sanitize()
}
