package rechnungen

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no Rechnung has the requested id.
var ErrNotFound = errors.New("Rechnung not found")

// PersistenceError wraps a storage failure with the operation that hit it.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("rechnungen: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func persistenceError(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}

// Record is one stored calculation. Result always matches the operands and
// operator as evaluated at the time of the last write.
type Record struct {
	ID           int64   `gorm:"column:id;primaryKey;autoIncrement" db:"id" json:"id"`
	FirstNumber  float64 `gorm:"column:erste_zahl;not null" db:"erste_zahl" json:"erste_zahl"`
	SecondNumber float64 `gorm:"column:zweite_zahl;not null" db:"zweite_zahl" json:"zweite_zahl"`
	Operator     string  `gorm:"column:operator;size:1;not null" db:"operator" json:"operator"`
	Result       float64 `gorm:"column:ergebnis;not null" db:"ergebnis" json:"ergebnis"`
}

// TableName returns the table name for Record.
func (Record) TableName() string {
	return "rechnungen"
}
