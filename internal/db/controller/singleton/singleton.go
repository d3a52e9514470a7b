// Package singleton provides read and upsert operations for settings tables holding at most one row.
package singleton

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fortuna-social/settings-service/internal/db/models"
)

const (
	scopeQueryPattern = "scope = ?"
)

var (
	// ErrNotFound is returned when the singleton row does not exist yet.
	ErrNotFound = errors.New("singleton settings not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Row is implemented by pointers to singleton models.
type Row[T any] interface {
	*T
	SetIdentity(id, scope string)
}

// Patch is a partial update of a singleton row. Only supplied fields are written.
type Patch[T any] interface {
	// Columns returns the supplied fields keyed by column name.
	Columns() map[string]interface{}
	// ApplyTo copies the supplied fields onto a record.
	ApplyTo(record *T)
}

// Get retrieves the singleton row.
func Get[T any, PT Row[T]](db *gorm.DB) (PT, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	record := PT(new(T))

	result := db.Where(scopeQueryPattern, models.SingletonScope).First(record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, result.Error
	}

	return record, nil
}

// Load returns the stored singleton row or a copy of defaults when none exists.
func Load[T any, PT Row[T]](db *gorm.DB, defaults T) (T, error) {
	record, err := Get[T, PT](db)
	if errors.Is(err, ErrNotFound) {
		return defaults, nil
	}

	if err != nil {
		var zero T
		return zero, err
	}

	return *record, nil
}

// Upsert patches the singleton row, inserting it first when absent.
// On insert every field the patch does not supply takes its value from defaults.
// The read-modify-write runs in one transaction; a concurrent first insert loses on the
// unique scope index and is retried once as a patch of the winner's row.
func Upsert[T any, PT Row[T]](db *gorm.DB, defaults T, patch Patch[T]) (PT, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var out PT

	upsert := func(tx *gorm.DB) error {
		record, err := Get[T, PT](tx)
		if errors.Is(err, ErrNotFound) {
			inserted := defaults
			patch.ApplyTo(&inserted)
			PT(&inserted).SetIdentity(uuid.NewString(), models.SingletonScope)

			if err = tx.Create(PT(&inserted)).Error; err != nil {
				return err
			}

			out = PT(&inserted)

			return nil
		}

		if err != nil {
			return err
		}

		if columns := patch.Columns(); len(columns) > 0 {
			if err = tx.Model(record).Updates(columns).Error; err != nil {
				return err
			}
		}

		patch.ApplyTo((*T)(record))
		out = record

		return nil
	}

	err := db.Transaction(upsert)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = db.Transaction(upsert)
	}

	if err != nil {
		return nil, err
	}

	return out, nil
}
