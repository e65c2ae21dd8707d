package service

import (
	"database/sql"
	stdErrors "errors"

	"github.com/knah1d/shopease/internal/errors"
	"github.com/knah1d/shopease/internal/models"
	repository "github.com/knah1d/shopease/internal/repositories"
)

// appError maps domain and repository failures onto AppErrors. notFound names the missing
// resource; fallback is the message for unexpected storage errors.
func appError(err error, notFound, fallback string) error {
	if err == nil {
		return nil
	}

	if appErr, ok := errors.IsAppError(err); ok {
		return appErr
	}

	var (
		transition *models.InvalidStateTransitionError
		stock      *models.InsufficientStockError
	)

	switch {
	case stdErrors.Is(err, sql.ErrNoRows):
		return errors.NotFoundError(notFound).WithError(err)
	case stdErrors.Is(err, models.ErrItemNotFound):
		return errors.NotFoundError("Item not found in cart").WithError(err)
	case stdErrors.Is(err, repository.ErrDuplicateEntry):
		return errors.DuplicateEntryError(fallback).WithError(err)
	case stdErrors.As(err, &transition):
		return errors.StateConflictError(transition.Error()).WithError(err)
	case stdErrors.As(err, &stock):
		return errors.StateConflictError(stock.Error()).WithError(err)
	case stdErrors.Is(err, models.ErrInsufficientStock),
		stdErrors.Is(err, models.ErrProductInactive),
		stdErrors.Is(err, models.ErrCurrencyMismatch),
		stdErrors.Is(err, models.ErrOrderNotModifiable):
		return errors.StateConflictError(err.Error()).WithError(err)
	case stdErrors.Is(err, models.ErrValidation):
		return errors.ValidationError(err.Error()).WithError(err)
	default:
		return errors.DatabaseError(fallback).WithError(err)
	}
}
