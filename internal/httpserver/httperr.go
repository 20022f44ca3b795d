package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"storefront/internal/service"
)

// httpError converts a service error into an echo HTTP error, surfacing the
// message text after the taxonomy prefix. Anything outside the taxonomy is
// a 500 with the fallback message only.
func httpError(err error, fallback string) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, message(err, service.ErrValidation))
	case errors.Is(err, service.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return echo.NewHTTPError(http.StatusNotFound, message(err, service.ErrNotFound))
	case errors.Is(err, service.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, message(err, service.ErrUnauthorized))
	case errors.Is(err, service.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, message(err, service.ErrForbidden))
	case errors.Is(err, service.ErrConflict):
		return echo.NewHTTPError(http.StatusBadRequest, message(err, service.ErrConflict))
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, fallback)
	}
}

func message(err, sentinel error) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
	if msg == "" {
		return sentinel.Error()
	}
	return msg
}
