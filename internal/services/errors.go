package services

import (
	"errors"

	"github.com/baharkarakas/studygo-backend/internal/api/validate"
	"github.com/baharkarakas/studygo-backend/internal/models"
	"github.com/baharkarakas/studygo-backend/internal/repository"
)

func invalid(errs validate.Errs) error {
	return models.NewValidationError("validation failed", errs)
}

// notFoundOr maps ErrNotFound to a NOT_FOUND error with msg; anything else is internal.
func notFoundOr(err error, msg string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return models.NewNotFoundError(msg)
	}
	return models.NewInternalError(err)
}
