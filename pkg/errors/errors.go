package errors

import (
	"errors"
	"fmt"
)

// Symbolic error codes surfaced to callers. This is a closed enum: services
// return these codes and nothing else for expected business-rule violations.
const (
	CodeProjectNotFound     = "PROJECT_NOT_FOUND"
	CodeClientNotFound      = "CLIENT_NOT_FOUND"
	CodeScopeItemNotFound   = "SCOPE_ITEM_NOT_FOUND"
	CodeRequestNotFound     = "REQUEST_NOT_FOUND"
	CodeRequestNotEligible  = "REQUEST_NOT_ELIGIBLE"
	CodeChangeOrderNotFound = "CHANGE_ORDER_NOT_FOUND"
	CodeInvalidStatusUpdate = "INVALID_STATUS_UPDATE"
	CodeShareLinkNotFound   = "SHARE_LINK_NOT_FOUND"
	CodeShareLinkNotActive  = "SHARE_LINK_NOT_ACTIVE"
	CodeShareLinkExpired    = "SHARE_LINK_EXPIRED"
	CodeWalletNotFound      = "WALLET_NOT_FOUND"
	CodeWalletExists        = "WALLET_EXISTS"
	CodeAlreadyPrimary      = "ALREADY_PRIMARY"
	CodeCannotDeletePrimary = "CANNOT_DELETE_PRIMARY"
	CodePaymentLinkNotFound = "PAYMENTLINK_NOT_FOUND"
	CodeChainMismatch       = "CHAIN_MISMATCH"
	CodeUnsupportedAsset    = "UNSUPPORTED_ASSET"
	CodeUserNotFound        = "USER_NOT_FOUND"
	CodeValidation          = "VALIDATION_ERROR"
)

// ServiceError is a typed business-rule violation. The message is safe to
// render directly to an end user; no internal detail is ever attached.
type ServiceError struct {
	Code    string
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// Sentinel service errors for use with errors.Is().
var (
	ErrProjectNotFound     = &ServiceError{Code: CodeProjectNotFound, Message: "project not found"}
	ErrClientNotFound      = &ServiceError{Code: CodeClientNotFound, Message: "client not found"}
	ErrScopeItemNotFound   = &ServiceError{Code: CodeScopeItemNotFound, Message: "scope item not found"}
	ErrRequestNotFound     = &ServiceError{Code: CodeRequestNotFound, Message: "request not found"}
	ErrRequestNotEligible  = &ServiceError{Code: CodeRequestNotEligible, Message: "request is not eligible for a change order"}
	ErrChangeOrderNotFound = &ServiceError{Code: CodeChangeOrderNotFound, Message: "change order not found"}
	ErrInvalidStatusUpdate = &ServiceError{Code: CodeInvalidStatusUpdate, Message: "invalid status update"}
	ErrShareLinkNotFound   = &ServiceError{Code: CodeShareLinkNotFound, Message: "share link not found"}
	ErrShareLinkNotActive  = &ServiceError{Code: CodeShareLinkNotActive, Message: "share link is not active"}
	ErrShareLinkExpired    = &ServiceError{Code: CodeShareLinkExpired, Message: "share link has expired"}
	ErrWalletNotFound      = &ServiceError{Code: CodeWalletNotFound, Message: "wallet not found"}
	ErrWalletExists        = &ServiceError{Code: CodeWalletExists, Message: "wallet already exists"}
	ErrAlreadyPrimary      = &ServiceError{Code: CodeAlreadyPrimary, Message: "wallet is already primary"}
	ErrCannotDeletePrimary = &ServiceError{Code: CodeCannotDeletePrimary, Message: "cannot delete primary wallet"}
	ErrPaymentLinkNotFound = &ServiceError{Code: CodePaymentLinkNotFound, Message: "payment link not found"}
	ErrChainMismatch       = &ServiceError{Code: CodeChainMismatch, Message: "wallet chain does not match link chain"}
	ErrUnsupportedAsset    = &ServiceError{Code: CodeUnsupportedAsset, Message: "unsupported asset for this chain"}
	ErrUserNotFound        = &ServiceError{Code: CodeUserNotFound, Message: "user not found"}
)

// Validation constructs a VALIDATION_ERROR for core-owned boundary checks
// (price precision, day bounds, field lengths).
func Validation(format string, args ...any) *ServiceError {
	return &ServiceError{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// IsCode reports whether err carries the given service error code.
func IsCode(err error, code string) bool {
	var se *ServiceError
	return errors.As(err, &se) && se.Code == code
}

// CodeOf returns the service error code carried by err, or "" if err is not
// a ServiceError. Infrastructure failures deliberately map to "".
func CodeOf(err error) string {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}
