package apperrors

type ErrorCode string

const (
	// System faults
	CodeInternalError      ErrorCode = "INTERNAL_ERROR"
	CodeStorageUnavailable ErrorCode = "STORAGE_UNAVAILABLE"

	// Business logic
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeDuplicateToken   ErrorCode = "DUPLICATE_TOKEN"
	CodeAlreadySubmitted ErrorCode = "ALREADY_SUBMITTED"

	// Cross-cutting auth
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
)
