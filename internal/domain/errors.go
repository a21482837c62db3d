package domain

import (
	"errors"
	"fmt"
)

type ErrCode string

const (
	CodeValidation   ErrCode = "validation_error"
	CodeBadRequest   ErrCode = "bad_request"
	CodeUnauthorized ErrCode = "unauthorized"
	CodeNotFound     ErrCode = "not_found"
	CodeForbidden    ErrCode = "forbidden"
)

type AppError struct {
	Code    ErrCode
	Message string
	Meta    map[string]string
}

func (e *AppError) Error() string {
	if len(e.Meta) == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Meta)
}

func ErrValidation(msg string) error { return &AppError{Code: CodeValidation, Message: msg} }
func ErrValidationMeta(msg string, meta map[string]string) error {
	return &AppError{Code: CodeValidation, Message: msg, Meta: meta}
}
func ErrBadRequest(msg string) error { return &AppError{Code: CodeBadRequest, Message: msg} }
func ErrBadRequestMeta(msg string, meta map[string]string) error {
	return &AppError{Code: CodeBadRequest, Message: msg, Meta: meta}
}
func ErrUnauthorized(msg string) error { return &AppError{Code: CodeUnauthorized, Message: msg} }
func ErrNotFound(msg string) error     { return &AppError{Code: CodeNotFound, Message: msg} }
func ErrForbidden(msg string) error    { return &AppError{Code: CodeForbidden, Message: msg} }

// Is reports whether err (or anything it wraps) is an AppError with the given code.
func Is(err error, code ErrCode) bool {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}
