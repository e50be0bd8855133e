package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// ===== Error model =====
type Code string

const (
	CodeInvalidArgument     Code = "INVALID_ARGUMENT"
	CodeInvalidDateRange    Code = "INVALID_DATE_RANGE"
	CodeNotAvailable        Code = "NOT_AVAILABLE"
	CodeNoOpenTransaction   Code = "NO_OPEN_TRANSACTION"
	CodeNotPrivileged       Code = "NOT_PRIVILEGED"
	CodeUnauthorized        Code = "UNAUTHORIZED"
	CodeDuplicateTitle      Code = "DUPLICATE_TITLE"
	CodeDuplicateISBN       Code = "DUPLICATE_ISBN"
	CodeDuplicateName       Code = "DUPLICATE_NAME"
	CodeConflict            Code = "CONFLICT"
	CodeNotFound            Code = "NOT_FOUND"
	CodeBookNotFound        Code = "BOOK_NOT_FOUND"
	CodeCustomerNotFound    Code = "CUSTOMER_NOT_FOUND"
	CodeAuthorNotFound      Code = "AUTHOR_NOT_FOUND"
	CodeTransactionNotFound Code = "TRANSACTION_NOT_FOUND"
	CodeInternal            Code = "INTERNAL"
)

type APIError struct {
	Code    Code
	Message string
}

func (e *APIError) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Message) }

func New(code Code, msg string) *APIError { return &APIError{Code: code, Message: msg} }

func ErrInvalid(msg string) *APIError  { return New(CodeInvalidArgument, msg) }
func ErrNotFound(msg string) *APIError { return New(CodeNotFound, msg) }
func ErrConflict(msg string) *APIError { return New(CodeConflict, msg) }
func ErrInternal(msg string) *APIError { return New(CodeInternal, msg) }

// Is は err の連鎖に code を持つ APIError があるかを返す。
func Is(err error, code Code) bool {
	var api *APIError
	return errors.As(err, &api) && api.Code == code
}

func CodeOf(err error) Code {
	var api *APIError
	if errors.As(err, &api) {
		return api.Code
	}
	return CodeInternal
}

func ToHTTPStatus(err error) int {
	var api *APIError
	if !errors.As(err, &api) {
		return http.StatusInternalServerError
	}
	switch api.Code {
	case CodeInvalidArgument, CodeInvalidDateRange, CodeNotAvailable, CodeNoOpenTransaction:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotPrivileged:
		return http.StatusForbidden
	case CodeNotFound, CodeBookNotFound, CodeCustomerNotFound, CodeAuthorNotFound, CodeTransactionNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeDuplicateTitle, CodeDuplicateISBN, CodeDuplicateName:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
