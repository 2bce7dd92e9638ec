package apperrors

import (
	"net/http"
)

// Factories for the review-lifecycle error taxonomy. Access denial is reported
// as NOT_FOUND on purpose: the caller must not be able to confirm that another
// tenant's resource exists.

// ErrNotFound converts a repository miss (or a cross-tenant access attempt)
// into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrDuplicateToken rejects a second redemption of a single-use review token.
func ErrDuplicateToken(err error) *AppError {
	return Wrap(err, CodeDuplicateToken, "review", "Token already used", http.StatusConflict)
}

// ErrAlreadySubmitted rejects a customer rating submitted after the merchant
// has replied.
func ErrAlreadySubmitted(err error) *AppError {
	return Wrap(err, CodeAlreadySubmitted, "review", "Review already submitted", http.StatusConflict)
}

// ErrStorageUnavailable surfaces an infrastructure fault from the relational
// store. Retry policy belongs to the caller.
func ErrStorageUnavailable(err error) *AppError {
	return Wrap(err, CodeStorageUnavailable, "storage", "Storage unavailable", http.StatusServiceUnavailable)
}
