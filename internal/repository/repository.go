// Package repository contains the gorm-backed data access layer.
package repository

import (
	"errors"

	"gorm.io/gorm"

	customerrors "github.com/axellelanca/catalog/internal/errors"
)

// translate maps gorm errors onto the application's sentinel errors.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return customerrors.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return customerrors.ErrDuplicate
	default:
		return err
	}
}
