// Package businessflow contains the core business logic and use cases for QR issuance, redirects and analytics
package businessflow

import (
	"errors"
	"fmt"
)

// Business error codes surfaced to API clients
const (
	CodeValidation              = "VALIDATION_ERROR"
	CodeQRCodeNotFound          = "QR_CODE_NOT_FOUND"
	CodeShortCodeRetryExhausted = "SHORT_CODE_RETRY_EXHAUSTED"
	CodePersistence             = "PERSISTENCE_ERROR"
	CodeShortCodeGeneration     = "SHORT_CODE_GENERATION_FAILED"
	CodeQRRenderFailed          = "QR_RENDER_FAILED"
	CodeExportFailed            = "ANALYTICS_EXPORT_FAILED"
)

// Business flow error constants
var (
	ErrValidation = errors.New("validation failed")

	// QR code errors
	ErrQRCodeNotFound          = errors.New("qr code not found")
	ErrShortCodeRetryExhausted = errors.New("short code retry attempts exhausted")

	// Input errors
	ErrTargetURLRequired = errors.New("target URL is required")
	ErrTargetURLInvalid  = errors.New("target URL must be an absolute http or https URL")
	ErrColorInvalid      = errors.New("color must be in #RRGGBB form")
	ErrQRCodeIDInvalid   = errors.New("qr code id must be a positive integer")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewBusinessErrorf(code, message string, err error, args ...any) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: fmt.Sprintf(message, args...),
		Err:     err,
	}
}

// NewValidationError wraps cause so that both IsValidationError and errors.Is(err, cause) hold
func NewValidationError(cause error) *BusinessError {
	return NewBusinessError(CodeValidation, cause.Error(), errors.Join(ErrValidation, cause))
}

func newPersistenceError(message string, err error) *BusinessError {
	return NewBusinessError(CodePersistence, message, err)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsQRCodeNotFound(err error) bool {
	return errors.Is(err, ErrQRCodeNotFound)
}

func IsShortCodeRetryExhausted(err error) bool {
	return errors.Is(err, ErrShortCodeRetryExhausted)
}

func IsPersistenceError(err error) bool {
	var be *BusinessError
	return errors.As(err, &be) && be.Code == CodePersistence
}
