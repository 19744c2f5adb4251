package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error.
type Kind int

const (
	// KindStorage is any unexpected failure from a dependency.
	KindStorage Kind = iota
	// KindValidation is a missing or malformed request field.
	KindValidation
	// KindConflict is a duplicate resource.
	KindConflict
	// KindNotFound is a reference to a resource that does not exist.
	KindNotFound
	// KindAuth is a failed credential check.
	KindAuth
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindConflict:
		return "CONFLICT"
	case KindNotFound:
		return "NOT_FOUND"
	case KindAuth:
		return "INVALID_CREDENTIALS"
	default:
		return "INTERNAL_ERROR"
	}
}

var (
	// ErrMissingCredentials is returned when username or password is absent.
	ErrMissingCredentials = Validation("Both username and password are required.")
	// ErrMissingUsername is returned when an update names no user.
	ErrMissingUsername = Validation("Username is required.")
	// ErrPasswordTooLong is returned when a password exceeds the 72-byte hashing limit.
	ErrPasswordTooLong = Validation("Password must be at most 72 bytes.")
	// ErrMissingPostFields is returned when a post lacks a required field.
	ErrMissingPostFields = Validation("Username, postImage and caption are required.")
	// ErrUserExists is returned on registration of a taken username.
	ErrUserExists = &AppError{Kind: KindConflict, Message: "User already exists."}
	// ErrUserNotFound is returned when a referenced username is unknown.
	ErrUserNotFound = &AppError{Kind: KindNotFound, Message: "User not found."}
	// ErrInvalidCredentials is shared by unknown-user and wrong-password logins.
	ErrInvalidCredentials = &AppError{Kind: KindAuth, Message: "Invalid username or password."}
)

// genericMessage is the only text a client sees for storage failures unless
// the caller supplies its own.
const genericMessage = "internal server error"

// AppError is an error with a client-facing Message. Op and Err describe the
// failed operation and its cause; they are logged, never sent to clients.
type AppError struct {
	Kind    Kind
	Message string
	Op      string
	Err     error
}

func (e *AppError) Error() string {
	label := e.Message
	if e.Op != "" {
		label = e.Op
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", label, e.Err)
	}
	return label
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches AppErrors of the same kind and message, so wrapped sentinels compare equal.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// Validation builds a validation error with msg.
func Validation(msg string) *AppError {
	return &AppError{Kind: KindValidation, Message: msg}
}

// Storage wraps err as a storage failure. op names the failed operation.
func Storage(op string, err error) *AppError {
	return &AppError{Kind: KindStorage, Message: genericMessage, Op: op, Err: err}
}

// StorageWithMessage is Storage with a specific client-facing message.
func StorageWithMessage(msg, op string, err error) *AppError {
	return &AppError{Kind: KindStorage, Message: msg, Op: op, Err: err}
}

// Response is the JSON envelope every endpoint returns.
type Response struct {
	Message string      `json:"message"`
	Code    string      `json:"code,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToResponse converts an HTTPError to the response envelope.
func (e *HTTPError) ToResponse() Response {
	return Response{
		Message: e.Message,
		Code:    e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Every client error is a
// 400; anything unclassified becomes a generic 500.
func MapErrorToHTTP(err error) *HTTPError {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return NewHTTPError(http.StatusInternalServerError, genericMessage, KindStorage.String())
	}
	switch appErr.Kind {
	case KindValidation, KindConflict, KindNotFound, KindAuth:
		return NewHTTPError(http.StatusBadRequest, appErr.Message, appErr.Kind.String())
	default:
		msg := appErr.Message
		if msg == "" {
			msg = genericMessage
		}
		return NewHTTPError(http.StatusInternalServerError, msg, KindStorage.String())
	}
}
