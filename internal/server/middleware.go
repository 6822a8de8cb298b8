package server

import (
	"errors"
	"net/http"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/labstack/echo/v4"

	"github.com/wanderhub/marketplace-chat/internal/models"
)

// errorHandler renders every error as the {success:false, message} envelope.
// Domain sentinels map to their status codes; anything unrecognized is a 500
// whose detail is logged but never sent to the client.
func errorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		code, message := classifyError(err)

		if code == http.StatusInternalServerError {
			log.Errorw(c.Request().Context(), "request failed", "error", err)
		}

		if c.Response().Committed {
			return
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(code)
		} else {
			writeErr = c.JSON(code, ErrorResponse{Success: false, Message: message})
		}
		if writeErr != nil {
			log.Errorw(c.Request().Context(), "write error response", "error", writeErr)
		}
	}
}

var sentinelStatus = map[error]int{
	models.ErrNotFound:        http.StatusNotFound,
	models.ErrVendorRequired:  http.StatusForbidden,
	models.ErrBlankMessage:    http.StatusBadRequest,
	models.ErrSelfMessage:     http.StatusBadRequest,
	models.ErrInvalidCategory: http.StatusBadRequest,
}

func classifyError(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if msg, ok := he.Message.(string); ok {
			return he.Code, msg
		}
		return he.Code, http.StatusText(he.Code)
	}

	// report the sentinel's own text, not the repo wrapper chain
	for sentinel, code := range sentinelStatus {
		if errors.Is(err, sentinel) {
			return code, sentinel.Error()
		}
	}

	return http.StatusInternalServerError, "Server error"
}
