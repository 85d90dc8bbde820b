package usecase

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/iho/gobooks/internal/domain"
)

// storageError passes caller errors through and turns anything else into a
// logged domain.IOFailure for op.
func storageError(logger zerolog.Logger, op string, err error, fields map[string]any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrAccountNotFound) ||
		errors.Is(err, domain.ErrEntryNotFound) ||
		errors.Is(err, domain.ErrSaleNotFound) ||
		errors.Is(err, domain.ErrDuplicateReference) {
		return err
	}

	wrapped := domain.IOFailure(op, err)
	logger.Error().
		Err(err).
		Str("op", op).
		Fields(fields).
		Msg("storage operation failed")
	return wrapped
}
