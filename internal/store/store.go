// Package store is the persistence gateway. Every write runs inside a single
// gorm transaction; reads preload the directly related rows needed to build
// one-level views.
package store

import (
	"context" // Request-scoped queries
	"errors"  // Sentinel errors
	"fmt"     // Error messages
	"time"    // Clock

	"gorm.io/gorm"        // GORM ORM library
	"gorm.io/gorm/clause" // Date range conditions
)

var (
	// ErrNotFound is returned when a lookup by identifier matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrServiceInUse is returned when deleting a service still referenced by appointments.
	ErrServiceInUse = errors.New("service is referenced by existing appointments")
)

// ConflictError reports a unique constraint violation on Field.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return e.Field + " already exists"
}

// ReferenceError reports a foreign key that points to a missing or
// mismatched row.
type ReferenceError struct {
	Field  string
	ID     uint
	Reason string
}

func (e *ReferenceError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "does not exist"
	}
	return fmt.Sprintf("%s %d %s", e.Field, e.ID, reason)
}

// Store wraps the database handle used by every operation.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// New returns a Store backed by db.
func New(db *gorm.DB) *Store {
	return &Store{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Ping checks that the database answers.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Range bounds a timestamp column. From is inclusive. To is inclusive unless
// ToExclusive is set, which is how whole calendar days are expressed.
type Range struct {
	From        *time.Time
	To          *time.Time
	ToExclusive bool
}

func (r Range) apply(q *gorm.DB, column string) *gorm.DB {
	if r.From != nil {
		q = q.Where(clause.Gte{Column: column, Value: r.From.UTC()})
	}
	if r.To != nil {
		if r.ToExclusive {
			q = q.Where(clause.Lt{Column: column, Value: r.To.UTC()})
		} else {
			q = q.Where(clause.Lte{Column: column, Value: r.To.UTC()})
		}
	}
	return q
}

func (s *Store) tx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return translate(s.db.WithContext(ctx).Transaction(fn))
}

// translate maps driver and gorm errors onto the store's error set.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &ConflictError{Field: "record"}
	}
	return err
}

// ensureUnique fails with a ConflictError when column already holds value.
func ensureUnique(tx *gorm.DB, model any, column string, value any) error {
	var n int64
	if err := tx.Model(model).Where(column+" = ?", value).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return &ConflictError{Field: column}
	}
	return nil
}

// ensureExists fails with a ReferenceError when no row of model has id.
func ensureExists(tx *gorm.DB, model any, field string, id uint) error {
	var n int64
	if err := tx.Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return &ReferenceError{Field: field, ID: id}
	}
	return nil
}
