package rechnungen

import "context"

// Store persists Records. Implementations return ErrNotFound for unknown ids
// and *PersistenceError for storage failures.
type Store interface {
	// Create assigns rec.ID and stores all fields.
	Create(ctx context.Context, rec *Record) error
	// List returns all records in id order, or an empty slice.
	List(ctx context.Context) ([]Record, error)
	Get(ctx context.Context, id int64) (*Record, error)
	// Update overwrites operands, operator and result of rec.ID.
	Update(ctx context.Context, rec *Record) error
	Delete(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
	Close() error
}
