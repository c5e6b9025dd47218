package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"tasknotes/internal/core/domain"
)

// TranslateError maps driver errors onto the domain sentinels.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return fmt.Errorf("%w: %v", domain.ErrConflict, err)
	}

	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}
