package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dd0wney/convograph/pkg/graph"
)

// RowQuerier is satisfied by *pgxpool.Pool and pgx.Tx
type RowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Postgres reads the graph document from a json/jsonb column. The table
// holds one row per named graph: (name text primary key, document jsonb).
type Postgres struct {
	DB       RowQuerier
	Table    string
	Name     string
	Envelope string

	pool *pgxpool.Pool
}

// NewPostgres connects a small pool and verifies it
func NewPostgres(ctx context.Context, dsn, table, name string) (*Postgres, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	config.MaxConns = 2
	config.MinConns = 0
	config.MaxConnLifetime = 5 * time.Minute
	config.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	return &Postgres{DB: pool, Table: table, Name: name, Envelope: DefaultEnvelope, pool: pool}, nil
}

// Query returns the statement Fetch runs
func (p *Postgres) Query() string {
	return fmt.Sprintf("SELECT document FROM %s WHERE name = $1", pgx.Identifier{p.Table}.Sanitize())
}

// Fetch selects and decodes the named document
func (p *Postgres) Fetch(ctx context.Context) (*graph.Data, error) {
	var document []byte
	err := p.DB.QueryRow(ctx, p.Query(), p.Name).Scan(&document)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s.%s", ErrNotFound, p.Table, p.Name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query graph %q: %w", p.Name, err)
	}
	return Decode(document, p.Envelope)
}

// Close releases the pool opened by NewPostgres
func (p *Postgres) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}
