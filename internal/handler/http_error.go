package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/fleetrent/scheduling-service/internal/apperr"
	"github.com/labstack/echo/v4"
)

// httpError maps a service error onto an HTTP status. Storage causes are
// logged here and never rendered to the caller.
func httpError(err error) *echo.HTTPError {
	switch apperr.ClassOf(err) {
	case apperr.ClassValidation:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case apperr.ClassConflict:
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case apperr.ClassNotFound:
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		var e *apperr.Error
		if errors.As(err, &e) && e.Err != nil {
			log.Printf("[HTTP] storage error: %v", e.Err)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
