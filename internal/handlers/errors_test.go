package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clubhousefc/backend/internal/apperr"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveError(t *testing.T, err error) (int, map[string]interface{}) {
	t.Helper()
	e := echo.New()
	e.Logger.SetOutput(io.Discard)
	handler := ErrorHandler(e)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	handler(err, c)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	return rec.Code, body["error"].(map[string]interface{})
}

func TestErrorHandler_StatusByKind(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{apperr.NotFound("post not found"), http.StatusNotFound, "NOT_FOUND"},
		{apperr.Unauthorized("no token"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{apperr.Forbidden("not yours"), http.StatusForbidden, "FORBIDDEN"},
		{apperr.Validation("content", "is required"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{apperr.Conflict("taken"), http.StatusConflict, "CONFLICT"},
		{echo.NewHTTPError(http.StatusTooManyRequests, "slow down"), http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
		{echo.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tc := range cases {
		status, body := serveError(t, tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.code, body["code"], tc.err.Error())
	}
}

func TestErrorHandler_HidesInternalDetails(t *testing.T) {
	status, body := serveError(t, apperr.Internal("post.create", errors.New("pq: connection refused")))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL", body["code"])
	assert.Equal(t, "something went wrong", body["message"])

	status, _ = serveError(t, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, status)
}

func TestErrorHandler_ValidationFields(t *testing.T) {
	_, body := serveError(t, apperr.ValidationFields(map[string]string{"content": "is required"}))
	fields := body["fields"].(map[string]interface{})
	assert.Equal(t, "is required", fields["content"])
}
