package reservation

import "fmt"

// ValidationError reports malformed or out-of-range input. Terminal; the
// caller must fix the request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func newValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// BookingNotFoundError reports an operation against an unknown booking id.
type BookingNotFoundError struct {
	BookingID string
}

func (e *BookingNotFoundError) Error() string {
	return fmt.Sprintf("booking %s not found", e.BookingID)
}

// AuthorizationError reports a caller whose role does not permit the
// operation.
type AuthorizationError struct {
	Role string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("role %q is not permitted to perform this operation", e.Role)
}

// AmountMismatchError reports a settlement whose amount differs from what
// was authorized with the gateway for the same booking.
type AmountMismatchError struct {
	BookingID  string
	Authorized int64
	Recorded   int64
}

func (e *AmountMismatchError) Error() string {
	return fmt.Sprintf("payment amount %d for booking %s does not match authorized amount %d",
		e.Recorded, e.BookingID, e.Authorized)
}
