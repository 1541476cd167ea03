// Package errors provides unified error handling for the prompt-vault core.
//
// Every store-level failure is reported as an *AppError carrying a stable
// ErrorCode, so callers (CLI, tests, embedding applications) can branch on
// the code instead of matching message strings. Operations that fail must
// leave the record collection, category tree, and favorites set untouched.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode identifies a class of failure.
type ErrorCode string

const (
	// ErrCodeNotFound reports an absent record or category.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeInvalidInput reports rejected user input: empty title or
	// content, an out-of-range rating, or malformed attachments.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// ErrCodeDuplicateCategory reports a category path collision.
	ErrCodeDuplicateCategory ErrorCode = "DUPLICATE_CATEGORY"

	// ErrCodeProtectedCategory reports an attempt to rename or delete a
	// reserved category node.
	ErrCodeProtectedCategory ErrorCode = "PROTECTED_CATEGORY"

	// ErrCodeInvalidParent reports a category parent path that does not exist.
	ErrCodeInvalidParent ErrorCode = "INVALID_PARENT"

	// ErrCodeImportFormat reports a malformed import payload.
	ErrCodeImportFormat ErrorCode = "IMPORT_FORMAT_ERROR"

	// ErrCodeDecode reports a malformed share token.
	ErrCodeDecode ErrorCode = "DECODE_ERROR"

	// ErrCodeStorage reports a failure in the durable store collaborator.
	ErrCodeStorage ErrorCode = "STORAGE_FAILURE"

	// ErrCodeInternal reports a failure that is not the caller's fault.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// AppError is a typed application error with a stable code.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error, if any.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates an AppError with the given code and message.
func New(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an existing error.
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Cause: err}
}

// HasCode reports whether err is an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// GetAppError extracts an AppError from err, converting foreign errors to
// internal ones so callers always see a code.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, ErrCodeInternal, "internal error")
}

// Constructors for the common failure classes.

func NotFoundError(resource, id string) *AppError {
	return New(ErrCodeNotFound, "%s not found: %s", resource, id)
}

func InvalidInputError(format string, args ...interface{}) *AppError {
	return New(ErrCodeInvalidInput, format, args...)
}

func DuplicateCategoryError(path string) *AppError {
	return New(ErrCodeDuplicateCategory, "category already exists: %s", path)
}

func ProtectedCategoryError(path string) *AppError {
	return New(ErrCodeProtectedCategory, "category is protected: %s", path)
}

func InvalidParentError(path string) *AppError {
	return New(ErrCodeInvalidParent, "parent category does not exist: %s", path)
}

func ImportFormatError(err error) *AppError {
	return Wrap(err, ErrCodeImportFormat, "malformed import payload")
}

func DecodeError(err error) *AppError {
	return Wrap(err, ErrCodeDecode, "malformed share token")
}

func StorageError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeStorage, fmt.Sprintf("storage operation failed: %s", operation))
}
