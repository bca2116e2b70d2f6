package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"scope-service/internal/auth"
	"scope-service/internal/service"
)

type ShareLinkHandler struct {
	shareLinks *service.ShareLinkService
}

func NewShareLinkHandler(shareLinks *service.ShareLinkService) *ShareLinkHandler {
	return &ShareLinkHandler{shareLinks: shareLinks}
}

type CreateShareLinkRequest struct {
	ExpiresAt        *time.Time `json:"expiresAt"`
	ShowScopeItems   bool       `json:"showScopeItems"`
	ShowRequests     bool       `json:"showRequests"`
	ShowChangeOrders bool       `json:"showChangeOrders"`
}

func (h *ShareLinkHandler) Create(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	projectID, err := parseUUIDParam(c, "project_id")
	if err != nil {
		return err
	}

	var req CreateShareLinkRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}

	created, err := h.shareLinks.Create(c.Request().Context(), projectID, userID, service.CreateShareLinkParams{
		ExpiresAt:        req.ExpiresAt,
		ShowScopeItems:   req.ShowScopeItems,
		ShowRequests:     req.ShowRequests,
		ShowChangeOrders: req.ShowChangeOrders,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, created)
}

func (h *ShareLinkHandler) List(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	projectID, err := parseUUIDParam(c, "project_id")
	if err != nil {
		return err
	}

	links, err := h.shareLinks.List(c.Request().Context(), projectID, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, links)
}

func (h *ShareLinkHandler) Revoke(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	linkID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	revoked, err := h.shareLinks.Revoke(c.Request().Context(), linkID, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, revoked)
}

// Resolve is public: no authentication, the token itself is the
// capability.
func (h *ShareLinkHandler) Resolve(c echo.Context) error {
	token := c.Param("token")
	if token == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing token")
	}

	view, err := h.shareLinks.Resolve(c.Request().Context(), token)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, view)
}
