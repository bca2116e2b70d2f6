package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"scope-service/internal/auth"
	"scope-service/internal/domain/user"
	"scope-service/internal/service"
)

const (
	eventUserCreated = "user.created"
	eventUserUpdated = "user.updated"
	eventUserDeleted = "user.deleted"
)

// WebhookHandler receives identity-provider lifecycle events. The body is
// read raw so the HMAC covers exactly the bytes that were signed.
type WebhookHandler struct {
	verifier *auth.WebhookVerifier
	users    *service.UserService
}

func NewWebhookHandler(verifier *auth.WebhookVerifier, users *service.UserService) *WebhookHandler {
	return &WebhookHandler{verifier: verifier, users: users}
}

type identityEvent struct {
	Type string            `json:"type"`
	Data identityEventData `json:"data"`
}

type identityEventData struct {
	ID        string  `json:"id"`
	Email     *string `json:"email"`
	Username  *string `json:"username"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	ImageURL  *string `json:"imageUrl"`
}

func (h *WebhookHandler) HandleIdentityEvent(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxStrictBodyBytes))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "failed to read request body")
	}

	signature := auth.SignatureFromRequest(c)
	if signature == "" || !h.verifier.Verify(body, signature) {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid webhook signature")
	}

	var event identityEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid webhook payload")
	}
	if event.Data.ID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing user id in webhook payload")
	}

	ctx := c.Request().Context()

	switch event.Type {
	case eventUserCreated, eventUserUpdated:
		if _, err := h.users.Sync(ctx, user.UpsertUserInput{
			ExternalID: event.Data.ID,
			Email:      event.Data.Email,
			Username:   event.Data.Username,
			FirstName:  event.Data.FirstName,
			LastName:   event.Data.LastName,
			ImageURL:   event.Data.ImageURL,
		}); err != nil {
			return err
		}
	case eventUserDeleted:
		if _, err := h.users.Deactivate(ctx, event.Data.ID); err != nil {
			return err
		}
	default:
		// Unknown event types are acknowledged so the provider does not
		// retry them forever.
	}

	return respondMessage(c, http.StatusOK, "webhook processed")
}
