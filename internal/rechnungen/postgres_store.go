package rechnungen

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	createTableSQL = `CREATE TABLE IF NOT EXISTS rechnungen (
	id          BIGSERIAL PRIMARY KEY,
	erste_zahl  DOUBLE PRECISION NOT NULL,
	zweite_zahl DOUBLE PRECISION NOT NULL,
	operator    TEXT NOT NULL,
	ergebnis    DOUBLE PRECISION NOT NULL
)`

	insertSQL = `INSERT INTO rechnungen (erste_zahl, zweite_zahl, operator, ergebnis)
VALUES ($1, $2, $3, $4)
RETURNING id`

	selectAllSQL = `SELECT id, erste_zahl, zweite_zahl, operator, ergebnis
FROM rechnungen
ORDER BY id`

	selectOneSQL = `SELECT id, erste_zahl, zweite_zahl, operator, ergebnis
FROM rechnungen
WHERE id = $1`

	updateSQL = `UPDATE rechnungen
SET erste_zahl = $2, zweite_zahl = $3, operator = $4, ergebnis = $5
WHERE id = $1
RETURNING id`

	deleteSQL = `DELETE FROM rechnungen WHERE id = $1`
)

// PostgresStore is a Store backed by a pgx connection pool using
// parameterized SQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ Store = (*PostgresStore)(nil)

// OpenPostgres connects to databaseURL, verifies the connection and creates
// the rechnungen table if it is missing.
func OpenPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := NewPostgresStore(pool)
	if err := s.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// NewPostgresStore wraps an existing pool. The schema is not touched.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the rechnungen table if it does not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *PostgresStore) Create(ctx context.Context, rec *Record) error {
	err := s.pool.QueryRow(ctx, insertSQL,
		rec.FirstNumber, rec.SecondNumber, rec.Operator, rec.Result,
	).Scan(&rec.ID)
	if err != nil {
		return persistenceError("create", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Record, error) {
	rows, err := s.pool.Query(ctx, selectAllSQL)
	if err != nil {
		return nil, persistenceError("list", err)
	}

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[Record])
	if err != nil {
		return nil, persistenceError("list", err)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

func (s *PostgresStore) Get(ctx context.Context, id int64) (*Record, error) {
	rows, err := s.pool.Query(ctx, selectOneSQL, id)
	if err != nil {
		return nil, persistenceError("get", err)
	}

	rec, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Record])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, persistenceError("get", err)
	}
	return &rec, nil
}

// Update rewrites the row in a single statement, so concurrent updates of
// the same id serialize on the row lock.
func (s *PostgresStore) Update(ctx context.Context, rec *Record) error {
	var id int64
	err := s.pool.QueryRow(ctx, updateSQL,
		rec.ID, rec.FirstNumber, rec.SecondNumber, rec.Operator, rec.Result,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return persistenceError("update", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, deleteSQL, id)
	if err != nil {
		return persistenceError("delete", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return persistenceError("ping", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
