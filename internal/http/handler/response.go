package handler

import (
	"github.com/labstack/echo/v4"
)

const (
	jsonKeyError   = "error"
	jsonKeyMessage = "message"
)

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{jsonKeyError: message})
}

func respondMessage(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{jsonKeyMessage: message})
}
