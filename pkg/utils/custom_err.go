package utils

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidPage     = errors.New("invalid page parameter")
	ErrInvalidPageSize = errors.New("invalid page size parameter")
	ErrDatabaseError   = errors.New("database error")

	ErrTripNotFound    = errors.New("trip not found")
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidRole     = errors.New("profile has an unknown role")

	ErrUnexpectedBehaviorOfAI = errors.New("unexpected behavior of AI")
	ErrImageSearchFailed      = errors.New("image search failed")
	ErrCountriesUnavailable   = errors.New("country reference unavailable")

	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidSession    = errors.New("invalid or expired session")
	ErrInvalidOAuthFlow  = errors.New("invalid oauth state or code")
	ErrSignInUnavailable = errors.New("sign-in temporarily unavailable")
)

// ValidationError carries a message meant to be shown to the user as-is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
