package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/clubhousefc/backend/internal/apperr"
	"github.com/labstack/echo/v4"
)

type errorBody struct {
	Code    apperr.Kind       `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

var statusByKind = map[apperr.Kind]int{
	apperr.KindNotFound:     http.StatusNotFound,
	apperr.KindUnauthorized: http.StatusUnauthorized,
	apperr.KindForbidden:    http.StatusForbidden,
	apperr.KindValidation:   http.StatusBadRequest,
	apperr.KindConflict:     http.StatusConflict,
	apperr.KindInternal:     http.StatusInternalServerError,
}

// ErrorHandler renders errors in the API envelope. Internal errors are
// logged with the request id and answered with a generic message.
func ErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := render(err)
		if status >= http.StatusInternalServerError {
			e.Logger.Errorj(map[string]interface{}{
				"msg":        "request failed",
				"error":      err.Error(),
				"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
				"method":     c.Request().Method,
				"uri":        c.Request().RequestURI,
			})
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, echo.Map{"success": false, "error": body})
		}
		if werr != nil {
			e.Logger.Error(werr)
		}
	}
}

func render(err error) (int, errorBody) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		status := statusByKind[ae.Kind]
		if status == 0 || ae.Kind == apperr.KindInternal {
			return http.StatusInternalServerError, errorBody{Code: apperr.KindInternal, Message: "something went wrong"}
		}
		return status, errorBody{Code: ae.Kind, Message: ae.Message, Fields: ae.Fields}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if s, ok := he.Message.(string); ok {
			msg = s
		}
		return he.Code, errorBody{Code: kindForStatus(he.Code), Message: msg}
	}
	return http.StatusInternalServerError, errorBody{Code: apperr.KindInternal, Message: "something went wrong"}
}

func kindForStatus(status int) apperr.Kind {
	for k, s := range statusByKind {
		if s == status {
			return k
		}
	}
	if status >= 500 {
		return apperr.KindInternal
	}
	return apperr.Kind(strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_")))
}
