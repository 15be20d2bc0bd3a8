package domain

import "errors"

var ErrRecordNotFound = errors.New("record not found")
var ErrSessionNotFound = errors.New("session not found")

var ErrValidation = errors.New("validation failed")
var ErrInvalidFormat = errors.New("invalid format")
var ErrUnauthorized = errors.New("unauthorized")
var ErrInvalidAmount = errors.New("invalid amount")
var ErrInsufficientFunds = errors.New("insufficient funds")
var ErrGatewayRejected = errors.New("transfer rejected by gateway")
var ErrTransportFailure = errors.New("gateway transport failure")
var ErrTransferInFlight = errors.New("a transfer is already being processed")

// TransferError pairs a taxonomy error with the notice shown to the user.
type TransferError struct {
	Cause   error
	Message string
}

func NewTransferError(cause error, message string) *TransferError {
	return &TransferError{Cause: cause, Message: message}
}

func (e *TransferError) Error() string {
	return e.Cause.Error() + ": " + e.Message
}

func (e *TransferError) Unwrap() error {
	return e.Cause
}
