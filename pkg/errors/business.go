// Package errors defines the typed rejections surfaced by the seating
// core: NotFound for absent sessions, seats, tiers or discounts,
// BadRequest for malformed input or seats in the wrong state, and
// ValidationFailure for business-rule violations reported by the
// pre-order gate.
package errors

import "errors"

type Kind string

const (
	KindNotFound   Kind = "NOT_FOUND"
	KindBadRequest Kind = "BAD_REQUEST"
	KindValidation Kind = "VALIDATION_FAILURE"
)

type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *BusinessError) Error() string {
	return e.Message
}

func NewNotFound(code, message string) *BusinessError {
	return &BusinessError{Kind: KindNotFound, Code: code, Message: message}
}

func NewBadRequest(code, message string) *BusinessError {
	return &BusinessError{Kind: KindBadRequest, Code: code, Message: message}
}

func NewValidationFailure(code, message string) *BusinessError {
	return &BusinessError{Kind: KindValidation, Code: code, Message: message}
}

func kindOf(err error, kind Kind) bool {
	var be *BusinessError
	return errors.As(err, &be) && be.Kind == kind
}

func IsNotFound(err error) bool {
	return kindOf(err, KindNotFound)
}

func IsBadRequest(err error) bool {
	return kindOf(err, KindBadRequest)
}

func IsValidationFailure(err error) bool {
	return kindOf(err, KindValidation)
}
