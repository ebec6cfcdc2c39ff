package repository

import (
	"errors"
	"fmt"

	"synergysphere/internal/domain"

	"gorm.io/gorm"
)

// storeErr maps gorm errors onto the domain taxonomy.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: duplicate record", domain.ErrConflict)
	}
	for _, known := range []error{domain.ErrStoreFailure, domain.ErrNotFound, domain.ErrValidation, domain.ErrConflict} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", domain.ErrStoreFailure, err)
}
