package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"scope-service/internal/auth"
	"scope-service/internal/domain/request"
	"scope-service/internal/service"
)

type RequestHandler struct {
	requests *service.RequestService
}

func NewRequestHandler(requests *service.RequestService) *RequestHandler {
	return &RequestHandler{requests: requests}
}

type CreateRequestRequest struct {
	Description string `json:"description"`
}

type UpdateRequestRequest struct {
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

func (h *RequestHandler) Create(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	projectID, err := parseUUIDParam(c, "project_id")
	if err != nil {
		return err
	}

	var req CreateRequestRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}

	created, err := h.requests.Create(c.Request().Context(), projectID, userID, req.Description)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, created)
}

func (h *RequestHandler) List(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	projectID, err := parseUUIDParam(c, "project_id")
	if err != nil {
		return err
	}

	requests, err := h.requests.List(c.Request().Context(), projectID, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, requests)
}

func (h *RequestHandler) Update(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	requestID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateRequestRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}

	input := request.UpdateRequestInput{Description: req.Description}
	if req.Status != nil {
		status := request.Status(*req.Status)
		input.Status = &status
	}

	updated, err := h.requests.Update(c.Request().Context(), requestID, userID, input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updated)
}

func (h *RequestHandler) Delete(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	requestID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.requests.Delete(c.Request().Context(), requestID, userID); err != nil {
		return err
	}

	return respondMessage(c, http.StatusOK, "request deleted")
}
