package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"scope-service/internal/auth"
	"scope-service/internal/domain/wallet"
	"scope-service/internal/service"
)

type WalletHandler struct {
	wallets *service.WalletService
}

func NewWalletHandler(wallets *service.WalletService) *WalletHandler {
	return &WalletHandler{wallets: wallets}
}

type CreateWalletRequest struct {
	Address     string `json:"address"`
	Chain       string `json:"chain"`
	MakePrimary bool   `json:"makePrimary"`
}

func (h *WalletHandler) List(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	wallets, err := h.wallets.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, wallets)
}

func (h *WalletHandler) Create(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	var req CreateWalletRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return err
	}

	created, err := h.wallets.Create(c.Request().Context(), userID, service.CreateWalletParams{
		Address:     req.Address,
		Chain:       wallet.Chain(req.Chain),
		MakePrimary: req.MakePrimary,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, created)
}

func (h *WalletHandler) SetPrimary(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	walletID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	promoted, err := h.wallets.SetPrimary(c.Request().Context(), walletID, userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, promoted)
}

func (h *WalletHandler) Delete(c echo.Context) error {
	userID, err := auth.GetUserID(c)
	if err != nil {
		return err
	}

	walletID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.wallets.Delete(c.Request().Context(), walletID, userID); err != nil {
		return err
	}

	return respondMessage(c, http.StatusOK, "wallet deleted")
}
