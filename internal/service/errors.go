package service

import "errors"

// User service errors.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailExists        = errors.New("user with this email already exists")
	ErrEmailTaken         = errors.New("email already taken by another user")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUpdateFailed       = errors.New("failed to update user")
	ErrDeleteFailed       = errors.New("failed to delete user")
)

// Shortener service errors.
var (
	ErrInvalidURL         = errors.New("invalid URL")
	ErrShortCodeNotFound  = errors.New("short code not found")
	ErrCodeSpaceExhausted = errors.New("failed to generate unique short code after retries")
)

// Validation messages produced by the service layer itself.
const (
	MsgLoginFieldsRequired = "Email and password are required"
	MsgSearchNameRequired  = "Please provide a name to search"
)

// ValidationError is a client input error. Its message is returned to the
// caller verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(msg string) error {
	return &ValidationError{Message: msg}
}
