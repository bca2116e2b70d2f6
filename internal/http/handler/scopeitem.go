package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"scope-service/internal/auth"
	"scope-service/internal/domain/scopeitem"
	"scope-service/internal/service"
)

type ScopeItemHandler struct {
	scopeItems *service.ScopeItemService
}

func NewScopeItemHandler(scopeItems *service.ScopeItemService) *ScopeItemHandler {
	return &ScopeItemHandler{scopeItems: scopeItems}
}

type CreateScopeItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateScopeItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

func (h *ScopeItemHandler) Create(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	projectID, err := parseUUIDParam(c, "project_id")
	if err != nil {
		return err
	}

	var req CreateScopeItemRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}

	item, err := h.scopeItems.Create(c.Request().Context(), projectID, userID, req.Name, req.Description)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, item)
}

func (h *ScopeItemHandler) List(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	projectID, err := parseUUIDParam(c, "project_id")
	if err != nil {
		return err
	}

	items, err := h.scopeItems.List(c.Request().Context(), projectID, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, items)
}

func (h *ScopeItemHandler) Update(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	projectID, err := parseUUIDParam(c, "project_id")
	if err != nil {
		return err
	}

	itemID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateScopeItemRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}

	input := scopeitem.UpdateScopeItemInput{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.Status != nil {
		status := scopeitem.Status(*req.Status)
		input.Status = &status
	}

	item, err := h.scopeItems.Update(c.Request().Context(), itemID, projectID, userID, input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, item)
}

func (h *ScopeItemHandler) Delete(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	projectID, err := parseUUIDParam(c, "project_id")
	if err != nil {
		return err
	}

	itemID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.scopeItems.Delete(c.Request().Context(), itemID, projectID, userID); err != nil {
		return err
	}

	return respondMessage(c, http.StatusOK, "scope item deleted")
}

// Export hands the resolved project/client/items read model to the caller;
// the PDF itself is rendered outside this service.
func (h *ScopeItemHandler) Export(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	projectID, err := parseUUIDParam(c, "project_id")
	if err != nil {
		return err
	}

	export, err := h.scopeItems.Export(c.Request().Context(), projectID, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, export)
}
