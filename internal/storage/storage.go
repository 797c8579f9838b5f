package storage

import (
	"errors"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not found")

// notFound converts gorm's missing-row error into ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
