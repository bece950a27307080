package utils

// AppError carries a machine-checkable code alongside the user-facing
// message. Origin keeps the underlying error for operator logs.
type AppError struct {
	Code    string
	Message string
	Origin  error
}

func (appErr *AppError) Error() string {
	if appErr.Origin != nil {
		return appErr.Message + ": " + appErr.Origin.Error()
	}
	return appErr.Message
}

func (appErr *AppError) Unwrap() error {
	return appErr.Origin
}

// Error codes. Every failure a handler sees resolves to one of these four.
const (
	ErrValidation = "VALIDATION" // malformed or policy-violating input
	ErrNotFound   = "NOT_FOUND"  // referenced commentary/post/category absent
	ErrForbidden  = "FORBIDDEN"  // authenticated identity does not own the target
	ErrStorage    = "STORAGE"    // persistence layer failure
)

func NewAppError(code string, message string, origin error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Origin:  origin,
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{Code: ErrValidation, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Code: ErrNotFound, Message: message}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Code: ErrForbidden, Message: message}
}

func NewStorageError(origin error) *AppError {
	return &AppError{Code: ErrStorage, Message: "storage failure", Origin: origin}
}

// IsErrorCode reports whether err is an AppError with the given code.
func IsErrorCode(err error, code string) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}
