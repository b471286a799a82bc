package models

import (
	"fmt"
	"log/slog"

	"devconnect/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Error codes used by AppError. Handlers map these to HTTP statuses; the
// reference API reuses 401 for both UNAUTHORIZED and FORBIDDEN and 400 for
// CONFLICT, so the code, not the status, is the authoritative kind.
const (
	CodeNotFound     = "NOT_FOUND"
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL_ERROR"
)

// ErrNoProfile is returned when a user has no profile. Profile routes
// render it as a 400, matching the reference API; other NOT_FOUND errors
// keep their 404s.
var ErrNoProfile = NewNotFoundError("There is no profile for this user")

// FieldError is a single field-level validation message.
type FieldError struct {
	Msg string `json:"msg"`
}

// ErrorResponse is the standard single-message error body.
type ErrorResponse struct {
	Msg string `json:"msg"`
}

// ValidationResponse is the body for field-level validation failures,
// a list of individual messages the client surfaces one by one.
type ValidationResponse struct {
	Errors []FieldError `json:"errors"`
}

// AppError is the application error type. Err holds the underlying cause
// for server-side logging and is never serialized to clients.
type AppError struct {
	Code    string
	Message string
	Fields  []FieldError
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError returns a NOT_FOUND error with the given client message.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message}
}

// NewValidationError returns a VALIDATION_ERROR with a single message.
func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message, Fields: []FieldError{{Msg: message}}}
}

// NewValidationErrors returns a VALIDATION_ERROR carrying multiple field messages.
func NewValidationErrors(fields []FieldError) *AppError {
	msg := "Validation failed"
	if len(fields) > 0 {
		msg = fields[0].Msg
	}
	return &AppError{Code: CodeValidation, Message: msg, Fields: fields}
}

// NewUnauthorizedError returns an UNAUTHORIZED error (missing or bad credentials).
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message}
}

// NewForbiddenError returns a FORBIDDEN error (authenticated but not permitted).
func NewForbiddenError(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message}
}

// NewConflictError returns a CONFLICT error (e.g. duplicate like).
func NewConflictError(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message}
}

// NewInternalError wraps an unexpected failure. The cause is logged
// server-side; clients only ever see the generic message.
func NewInternalError(err error) *AppError {
	return &AppError{Code: CodeInternal, Message: "Server Error", Err: err}
}

// RespondWithError writes a standardized JSON error response. Validation
// errors are rendered as a field message list; internal errors are logged
// with their cause and reported to the client as a bare "Server Error".
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	if appErr, ok := err.(*AppError); ok {
		if appErr.Code == CodeInternal {
			middleware.Logger.ErrorContext(c.UserContext(), "internal error",
				slog.String("error", appErr.Error()),
			)
			return c.Status(status).JSON(ErrorResponse{Msg: appErr.Message})
		}
		if appErr.Code == CodeValidation && len(appErr.Fields) > 0 {
			return c.Status(status).JSON(ValidationResponse{Errors: appErr.Fields})
		}
		return c.Status(status).JSON(ErrorResponse{Msg: appErr.Message})
	}

	middleware.Logger.ErrorContext(c.UserContext(), "internal error",
		slog.String("error", err.Error()),
	)
	return c.Status(status).JSON(ErrorResponse{Msg: "Server Error"})
}

// StatusForError maps an application error to its HTTP status. Unknown
// errors are treated as internal. The FORBIDDEN kind intentionally maps to
// 401 to match the reference API; CONFLICT maps to 400 for the same reason.
func StatusForError(err error) int {
	appErr, ok := err.(*AppError)
	if !ok {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case CodeValidation, CodeConflict:
		return fiber.StatusBadRequest
	case CodeUnauthorized, CodeForbidden:
		return fiber.StatusUnauthorized
	case CodeNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
