package domain

import "errors"

var (
	ErrAdminNotFound       = errors.New("admin not found")
	ErrClientNotFound      = errors.New("client not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrHistoryNotFound     = errors.New("transaction history not found")
)

var (
	ErrUsernameTaken = errors.New("username already exists")
	ErrClientExists  = errors.New("client with the same name or email already exists")
	// ErrClientInUse is returned when a client still owns transactions.
	ErrClientInUse = errors.New("client still has transactions")
)

// ErrTrackingIDTaken is reported by the store when an insert hits the
// tracking_id uniqueness constraint. It never leaves the service layer.
var ErrTrackingIDTaken = errors.New("tracking id already exists")

// ErrTrackingIDExhausted means every generated candidate collided.
var ErrTrackingIDExhausted = errors.New("could not allocate a unique tracking identifier")

// ErrInvalidReference is returned when a write points at a client or status
// that does not exist.
var ErrInvalidReference = errors.New("referenced client or status does not exist")

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("exactly one of isAdmin, isSuperAdmin, isDemo must be true")
	ErrForbidden          = errors.New("access forbidden")
)

// ValidationError carries a client-facing message for malformed input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NewValidationError builds a ValidationError.
func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
