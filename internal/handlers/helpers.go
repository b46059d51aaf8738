package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/subscription-tracker/backend/internal/repository"
)

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": message})
}

func badGateway(c echo.Context, message string) error {
	return c.JSON(http.StatusBadGateway, map[string]string{"error": message})
}

func serverError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

// replyError переводит сигнальные ошибки репозиториев в HTTP-статусы.
func replyError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrInvalid):
		return badRequest(c, "invalid user id")
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	default:
		return serverError(c)
	}
}

func parseUserID(c echo.Context) (uuid.UUID, error) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("user id %q: %w", c.Param("userId"), repository.ErrInvalid)
	}
	return userID, nil
}
