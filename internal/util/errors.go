package util

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind is the machine-readable error category. Services raise it,
// controllers alone translate it to a transport response.
type ErrorKind string

const (
	KindValidation   ErrorKind = "VALIDATION_ERROR"
	KindInvalidID    ErrorKind = "INVALID_ID"
	KindNotFound     ErrorKind = "NOT_FOUND"
	KindAccessDenied ErrorKind = "ACCESS_DENIED"
	KindInternal     ErrorKind = "INTERNAL_ERROR"
)

// AppError carries the error kind plus an HTTP status hint.
type AppError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func ValidationError(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindValidation, Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

func InvalidIDError(id string) *AppError {
	return &AppError{Kind: KindInvalidID, Status: http.StatusBadRequest, Message: "invalid id: " + id}
}

func NotFoundError(what string) *AppError {
	return &AppError{Kind: KindNotFound, Status: http.StatusNotFound, Message: what + " not found"}
}

func AccessDeniedError(message string) *AppError {
	return &AppError{Kind: KindAccessDenied, Status: http.StatusForbidden, Message: message}
}

func InternalError(err error) *AppError {
	return &AppError{Kind: KindInternal, Status: http.StatusInternalServerError, Message: "internal error", Err: err}
}

// KindOf 提取错误类别，非 AppError 一律视为 INTERNAL_ERROR
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailRegistered = errors.New("email already registered")
)
