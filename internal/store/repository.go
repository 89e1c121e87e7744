// Package store is the gorm-backed persistence layer shared by all
// resource services.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdg-garage/tourism-api/internal/apperr"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CascadeFunc removes the dependents of the given rows inside tx.
type CascadeFunc func(tx *gorm.DB, ids []uint) error

type Repository[T any] struct {
	db       *gorm.DB
	name     string
	notFound *apperr.Error
	cascade  CascadeFunc
}

func NewRepository[T any](db *gorm.DB, name string) *Repository[T] {
	return &Repository[T]{
		db:       db,
		name:     name,
		notFound: apperr.New(apperr.NotFound, name+" not found"),
	}
}

// ErrNotFound is returned whenever a row of this repository is missing.
func (r *Repository[T]) ErrNotFound() *apperr.Error {
	return r.notFound
}

// WithCascade sets the dependents removal run before every Delete.
func (r *Repository[T]) WithCascade(fn CascadeFunc) *Repository[T] {
	r.cascade = fn
	return r
}

// In returns a copy of the repository bound to tx.
func (r *Repository[T]) In(tx *gorm.DB) *Repository[T] {
	cp := *r
	cp.db = tx
	return &cp
}

func (r *Repository[T]) Get(ctx context.Context, id uint) (*T, error) {
	var rec T
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		return nil, r.translate(err)
	}
	return &rec, nil
}

func (r *Repository[T]) Exists(ctx context.Context, conds ...any) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(new(T))
	if len(conds) > 0 {
		q = q.Where(conds[0], conds[1:]...)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, r.translate(err)
	}
	return count > 0, nil
}

// Create runs prepare and the insert in one transaction. prepare may be nil.
func (r *Repository[T]) Create(ctx context.Context, rec *T, prepare func(tx *gorm.DB, rec *T) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if prepare != nil {
			if err := prepare(tx, rec); err != nil {
				return err
			}
		}
		if err := tx.Create(rec).Error; err != nil {
			return r.translate(err)
		}
		return nil
	})
}

// Mutate loads the row under lock, lets fn check and modify it, and saves
// it, all in one transaction. An error from fn rolls everything back.
func (r *Repository[T]) Mutate(ctx context.Context, id uint, fn func(tx *gorm.DB, rec *T) error) (*T, error) {
	var rec T
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&rec, id).Error; err != nil {
			return r.translate(err)
		}
		if err := fn(tx, &rec); err != nil {
			return err
		}
		if err := tx.Save(&rec).Error; err != nil {
			return r.translate(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Delete loads the row under lock, runs check against it, removes its
// dependents and then the row itself. check may be nil.
func (r *Repository[T]) Delete(ctx context.Context, id uint, check func(rec *T) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec T
		if err := lockForUpdate(tx).First(&rec, id).Error; err != nil {
			return r.translate(err)
		}
		if check != nil {
			if err := check(&rec); err != nil {
				return err
			}
		}
		if r.cascade != nil {
			if err := r.cascade(tx, []uint{id}); err != nil {
				return fmt.Errorf("delete %s dependents: %w", r.name, err)
			}
		}
		if err := tx.Delete(&rec).Error; err != nil {
			return r.translate(err)
		}
		return nil
	})
}

func (r *Repository[T]) translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return r.notFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.Wrap(apperr.Validation, err, r.name+" already exists")
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	return apperr.Wrap(apperr.Internal, err, r.name+" storage error")
}

// sqlite serializes writers and has no row locks.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
