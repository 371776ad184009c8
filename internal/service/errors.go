package service

import (
	"errors"

	"github.com/dukerupert/verdant/internal/domain"
	"github.com/dukerupert/verdant/internal/repository"
)

// notFoundOr maps pgx.ErrNoRows to the sentinel and anything else to an
// internal error.
func notFoundOr(err error, sentinel *domain.Error, op string) error {
	if repository.IsNoRows(err) {
		return domain.WithOp(sentinel, op)
	}
	return domain.Internal(err, op, "database query failed")
}

// asDomainError leaves domain and validation errors untouched and wraps
// everything else (driver, commit, context) as internal.
func asDomainError(err error, op string) error {
	if err == nil {
		return nil
	}
	var de *domain.Error
	if errors.As(err, &de) || domain.IsValidationError(err) {
		return err
	}
	return domain.Internal(err, op, "database operation failed")
}
