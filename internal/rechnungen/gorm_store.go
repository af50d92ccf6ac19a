package rechnungen

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormStore is a Store backed by gorm on SQLite.
type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

// OpenSQLite opens (or creates) the SQLite database at path and migrates the
// schema. Use ":memory:" for a throwaway database.
func OpenSQLite(path string, debug bool) (*GormStore, error) {
	logLevel := logger.Silent
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	// SQLite serialises writers anyway, and every connection to ":memory:"
	// would otherwise see its own empty database.
	sqlDB.SetMaxOpenConns(1)

	return NewGormStore(db)
}

// NewGormStore wraps an open gorm connection and runs auto-migrations.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Create(ctx context.Context, rec *Record) error {
	rec.ID = 0
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return persistenceError("create", err)
	}
	return nil
}

func (s *GormStore) List(ctx context.Context) ([]Record, error) {
	records := []Record{}
	if err := s.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, persistenceError("list", err)
	}
	return records, nil
}

func (s *GormStore) Get(ctx context.Context, id int64) (*Record, error) {
	var rec Record
	if err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, persistenceError("get", err)
	}
	return &rec, nil
}

func (s *GormStore) Update(ctx context.Context, rec *Record) error {
	// A map, unlike a struct, makes gorm write zero operands too.
	result := s.db.WithContext(ctx).
		Model(&Record{}).
		Where("id = ?", rec.ID).
		Updates(map[string]any{
			"erste_zahl":  rec.FirstNumber,
			"zweite_zahl": rec.SecondNumber,
			"operator":    rec.Operator,
			"ergebnis":    rec.Result,
		})
	if err := result.Error; err != nil {
		return persistenceError("update", err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, id int64) error {
	result := s.db.WithContext(ctx).Delete(&Record{}, "id = ?", id)
	if err := result.Error; err != nil {
		return persistenceError("delete", err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return persistenceError("ping", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return persistenceError("ping", err)
	}
	return nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.Close()
}
