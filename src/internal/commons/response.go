package commons

import (
	"errors"

	"github.com/api-sage/banco-digital/src/internal/domain"
)

type Response[T any] struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    *T       `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    &data,
	}
}

func ErrorResponse[T any](message string, errors ...string) Response[T] {
	return Response[T]{
		Success: false,
		Message: message,
		Errors:  errors,
	}
}

// FailureResponse uses the user-facing notice of a *domain.TransferError as
// the message when err carries one.
func FailureResponse[T any](fallback string, err error, details ...string) Response[T] {
	var transferErr *domain.TransferError
	if errors.As(err, &transferErr) {
		return ErrorResponse[T](transferErr.Message, details...)
	}
	return ErrorResponse[T](fallback, details...)
}
