package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "scope-service/pkg/errors"
)

// statusForCode maps the closed service error taxonomy to HTTP statuses.
// Eligibility and status-gate violations are client errors; anything
// outside the taxonomy is an internal failure.
func statusForCode(code string) int {
	switch code {
	case apperrors.CodeProjectNotFound,
		apperrors.CodeClientNotFound,
		apperrors.CodeScopeItemNotFound,
		apperrors.CodeRequestNotFound,
		apperrors.CodeChangeOrderNotFound,
		apperrors.CodeShareLinkNotFound,
		apperrors.CodeWalletNotFound,
		apperrors.CodePaymentLinkNotFound,
		apperrors.CodeUserNotFound:
		return http.StatusNotFound
	case apperrors.CodeRequestNotEligible,
		apperrors.CodeInvalidStatusUpdate,
		apperrors.CodeWalletExists,
		apperrors.CodeAlreadyPrimary,
		apperrors.CodeCannotDeletePrimary,
		apperrors.CodeChainMismatch,
		apperrors.CodeUnsupportedAsset,
		apperrors.CodeValidation:
		return http.StatusBadRequest
	case apperrors.CodeShareLinkNotActive:
		return http.StatusForbidden
	case apperrors.CodeShareLinkExpired:
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}

// CustomHTTPErrorHandler is the single place service errors become HTTP
// responses. Typed ServiceErrors surface their code and message; everything
// else is sanitized to a generic 500.
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal server error"
	errorCode := ""

	var httpErr *echo.HTTPError
	var svcErr *apperrors.ServiceError

	switch {
	case errors.As(err, &svcErr):
		code = statusForCode(svcErr.Code)
		if code < http.StatusInternalServerError {
			message = svcErr.Message
			errorCode = svcErr.Code
		}
	case errors.As(err, &httpErr):
		code = httpErr.Code
		message = fmt.Sprintf("%v", httpErr.Message)
	}

	requestID := c.Response().Header().Get("X-Request-ID")
	if requestID == "" {
		requestID = "unknown"
	}

	if code >= http.StatusInternalServerError {
		c.Logger().Errorf("internal error request_id=%s status=%d error=%v", requestID, code, err)
		message = "Internal server error"
	} else {
		c.Logger().Warnf("client error request_id=%s status=%d error=%v", requestID, code, err)
	}

	body := map[string]string{
		"error":      message,
		"request_id": requestID,
	}
	if errorCode != "" {
		body["code"] = errorCode
	}

	if err := c.JSON(code, body); err != nil {
		c.Logger().Error(err)
	}
}
