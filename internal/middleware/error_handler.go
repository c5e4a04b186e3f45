package middleware

import (
	"errors"
	"net/http"

	"github.com/catarena-s/explore-with-me/internal/apperr"
	"github.com/labstack/echo/v4"
)

// ErrorHandler renders every error as {"message": ...} and maps domain
// error kinds that reached echo unwrapped.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := err.Error()

	switch {
	case errors.Is(err, apperr.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		code = http.StatusConflict
	case errors.Is(err, apperr.ErrValidation):
		code = http.StatusBadRequest
	}

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		}
	}

	_ = c.JSON(code, map[string]string{"message": msg})
}
