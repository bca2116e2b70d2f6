package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"scope-service/internal/auth"
	"scope-service/internal/domain/wallet"
	"scope-service/internal/service"
)

type PaymentLinkHandler struct {
	paymentLinks *service.PaymentLinkService
}

func NewPaymentLinkHandler(paymentLinks *service.PaymentLinkService) *PaymentLinkHandler {
	return &PaymentLinkHandler{paymentLinks: paymentLinks}
}

type CreatePaymentLinkRequest struct {
	WalletID  string   `json:"walletId"`
	Chain     string   `json:"chain"`
	Asset     string   `json:"asset"`
	AmountUSD *float64 `json:"amountUsd"`
	Memo      *string  `json:"memo"`
}

func (h *PaymentLinkHandler) Create(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	var req CreatePaymentLinkRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}

	walletID, err := uuid.Parse(req.WalletID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid walletId")
	}

	created, err := h.paymentLinks.Create(c.Request().Context(), userID, service.CreatePaymentLinkParams{
		WalletID:  walletID,
		Chain:     wallet.Chain(req.Chain),
		Asset:     wallet.Asset(req.Asset),
		AmountUSD: req.AmountUSD,
		Memo:      req.Memo,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, created)
}

func (h *PaymentLinkHandler) List(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	links, err := h.paymentLinks.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, links)
}

// GetBySlug is the public payment page read.
func (h *PaymentLinkHandler) GetBySlug(c echo.Context) error {
	slug := c.Param("slug")
	if slug == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing slug")
	}

	link, err := h.paymentLinks.GetBySlug(c.Request().Context(), slug)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, link)
}

func (h *PaymentLinkHandler) Delete(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	linkID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.paymentLinks.Delete(c.Request().Context(), linkID, userID); err != nil {
		return err
	}

	return respondMessage(c, http.StatusOK, "payment link deactivated")
}
