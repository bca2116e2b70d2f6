package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"scope-service/internal/auth"
	"scope-service/internal/domain/changeorder"
	"scope-service/internal/service"
)

type ChangeOrderHandler struct {
	changeOrders *service.ChangeOrderService
}

func NewChangeOrderHandler(changeOrders *service.ChangeOrderService) *ChangeOrderHandler {
	return &ChangeOrderHandler{changeOrders: changeOrders}
}

type CreateChangeOrderRequest struct {
	RequestID string  `json:"requestId"`
	PriceUSD  float64 `json:"priceUsd"`
	ExtraDays *int    `json:"extraDays"`
}

type UpdateChangeOrderRequest struct {
	PriceUSD  *float64 `json:"priceUsd"`
	ExtraDays *int     `json:"extraDays"`
	Status    *string  `json:"status"`
}

func (h *ChangeOrderHandler) Create(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	projectID, err := parseUUIDParam(c, "project_id")
	if err != nil {
		return err
	}

	var req CreateChangeOrderRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}

	requestID, err := uuid.Parse(req.RequestID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid requestId")
	}

	created, err := h.changeOrders.Create(c.Request().Context(), projectID, requestID, userID, req.PriceUSD, req.ExtraDays)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, created)
}

func (h *ChangeOrderHandler) List(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	projectID, err := parseUUIDParam(c, "project_id")
	if err != nil {
		return err
	}

	orders, err := h.changeOrders.List(c.Request().Context(), projectID, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *ChangeOrderHandler) Get(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	projectID, err := parseUUIDParam(c, "project_id")
	if err != nil {
		return err
	}

	orderID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	order, err := h.changeOrders.Get(c.Request().Context(), projectID, orderID, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, order)
}

func (h *ChangeOrderHandler) Update(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	projectID, err := parseUUIDParam(c, "project_id")
	if err != nil {
		return err
	}

	orderID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateChangeOrderRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}

	input := changeorder.UpdateChangeOrderInput{
		PriceUSD:  req.PriceUSD,
		ExtraDays: req.ExtraDays,
	}
	if req.Status != nil {
		status := changeorder.Status(*req.Status)
		input.Status = &status
	}

	updated, err := h.changeOrders.Update(c.Request().Context(), projectID, orderID, userID, input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updated)
}

func (h *ChangeOrderHandler) Delete(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	projectID, err := parseUUIDParam(c, "project_id")
	if err != nil {
		return err
	}

	orderID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.changeOrders.Delete(c.Request().Context(), projectID, orderID, userID); err != nil {
		return err
	}

	return respondMessage(c, http.StatusOK, "change order deleted")
}

// Export returns the fully-resolved document read model for the external
// PDF renderer.
func (h *ChangeOrderHandler) Export(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	projectID, err := parseUUIDParam(c, "project_id")
	if err != nil {
		return err
	}

	orderID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	export, err := h.changeOrders.Export(c.Request().Context(), projectID, orderID, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, export)
}
