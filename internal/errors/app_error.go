package errors

import (
	stderrors "errors"
	"net/http"
)

// Kind classifies an AppError and decides its HTTP status
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindConflict
	KindPermission
	KindAuthentication
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindPermission:
		return "permission"
	case KindAuthentication:
		return "authentication"
	default:
		return "unknown"
	}
}

// HTTPStatus maps the kind to a response status code
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindPermission:
		return http.StatusForbidden
	case KindAuthentication:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// AppError is a domain error returned by services.
// Two AppErrors match with errors.Is when kind and code are equal.
type AppError struct {
	Kind    Kind
	Code    string
	Message string
	Field   string
}

func (e *AppError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}

func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Code == e.Code
}

func Validation(code, message string) *AppError {
	return &AppError{Kind: KindValidation, Code: code, Message: message}
}

// ValidationField is a validation error bound to a single request field
func ValidationField(code, field, message string) *AppError {
	return &AppError{Kind: KindValidation, Code: code, Message: message, Field: field}
}

func NotFoundErr(code, message string) *AppError {
	return &AppError{Kind: KindNotFound, Code: code, Message: message}
}

func ConflictErr(code, message string) *AppError {
	return &AppError{Kind: KindConflict, Code: code, Message: message}
}

func Permission(code, message string) *AppError {
	return &AppError{Kind: KindPermission, Code: code, Message: message}
}

func Authentication(code, message string) *AppError {
	return &AppError{Kind: KindAuthentication, Code: code, Message: message}
}

// KindOf returns the kind of the first AppError in err's chain, or 0
func KindOf(err error) Kind {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return 0
}
