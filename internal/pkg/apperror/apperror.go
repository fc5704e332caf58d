package apperror

import (
	"errors"
	"fmt"
)

// Code identifies a failure class of the report workflow.
type Code string

const (
	CodeSessionRead      Code = "SESSION_READ"
	CodeSessionWrite     Code = "SESSION_WRITE"
	CodeSessionConflict  Code = "SESSION_CONFLICT"
	CodeDataUnavailable  Code = "DATA_UNAVAILABLE"
	CodeNotFound         Code = "NOT_FOUND"
	CodeFetchFailed      Code = "FETCH_FAILED"
	CodeUploadConflict   Code = "UPLOAD_CONFLICT"
	CodeUploadFailed     Code = "UPLOAD_FAILED"
	CodeIncompleteReport Code = "INCOMPLETE_REPORT"
	CodeFinalizeWrite    Code = "FINALIZE_WRITE"
)

// AppError carries a Code next to the underlying cause.
type AppError struct {
	Code    Code
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches any *AppError with the same Code, so sentinel values below work with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Sentinels for errors.Is checks.
var (
	ErrSessionRead      = &AppError{Code: CodeSessionRead}
	ErrSessionWrite     = &AppError{Code: CodeSessionWrite}
	ErrSessionConflict  = &AppError{Code: CodeSessionConflict}
	ErrDataUnavailable  = &AppError{Code: CodeDataUnavailable}
	ErrNotFound         = &AppError{Code: CodeNotFound}
	ErrFetchFailed      = &AppError{Code: CodeFetchFailed}
	ErrUploadConflict   = &AppError{Code: CodeUploadConflict}
	ErrUploadFailed     = &AppError{Code: CodeUploadFailed}
	ErrIncompleteReport = &AppError{Code: CodeIncompleteReport}
	ErrFinalizeWrite    = &AppError{Code: CodeFinalizeWrite}
)

func New(code Code, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func NewSessionRead(userId int64, err error) *AppError {
	return New(CodeSessionRead, fmt.Sprintf("failed to read session for user %d", userId), err)
}

func NewSessionWrite(userId int64, err error) *AppError {
	return New(CodeSessionWrite, fmt.Sprintf("failed to write session for user %d", userId), err)
}

func NewSessionConflict(userId int64, version int64) *AppError {
	return New(CodeSessionConflict, fmt.Sprintf("session for user %d changed since version %d", userId, version), nil)
}

func NewDataUnavailable(catalog string, err error) *AppError {
	return New(CodeDataUnavailable, fmt.Sprintf("%s catalog is empty or unreachable", catalog), err)
}

func NewNotFound(what string, id interface{}) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s %v not found", what, id), nil)
}

func NewFetchFailed(err error) *AppError {
	return New(CodeFetchFailed, "failed to fetch attachment from chat transport", err)
}

func NewUploadConflict(path string) *AppError {
	return New(CodeUploadConflict, fmt.Sprintf("object already exists at %q", path), nil)
}

func NewUploadFailed(path string, err error) *AppError {
	return New(CodeUploadFailed, fmt.Sprintf("failed to store object at %q", path), err)
}

func NewIncompleteReport(err error) *AppError {
	return New(CodeIncompleteReport, "report is missing required fields", err)
}

func NewFinalizeWrite(err error) *AppError {
	return New(CodeFinalizeWrite, "failed to save report", err)
}

// CodeOf returns the Code of the first *AppError in err's chain, or "" when there is none.
func CodeOf(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
