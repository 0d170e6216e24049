package httputil

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	dErrors "crewly/pkg/domain-errors"
	"crewly/pkg/testutil"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	tests := []struct {
		code   dErrors.Code
		status int
	}{
		{dErrors.CodeBadRequest, http.StatusBadRequest},
		{dErrors.CodeValidation, http.StatusBadRequest},
		{dErrors.CodeNotFound, http.StatusNotFound},
		{dErrors.CodeConflict, http.StatusConflict},
		{dErrors.CodeInvariantViolation, http.StatusConflict},
		{dErrors.CodeUnavailable, http.StatusServiceUnavailable},
		{dErrors.CodeTimeout, http.StatusGatewayTimeout},
		{dErrors.CodeInternal, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		rr := httptest.NewRecorder()
		WriteError(rr, dErrors.New(tc.code, "boom"))
		assert.Equal(t, tc.status, rr.Code, "code %s", tc.code)
	}
}

func TestWriteErrorHidesInternalDetails(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, dErrors.Wrap(errors.New("pq: connection refused"), dErrors.CodeInternal, "insert failed"))

	body := testutil.ReadBody(t, rr)
	assert.NotContains(t, string(body), "connection refused")
	assert.NotContains(t, string(body), "insert failed")
	assert.Contains(t, string(body), "internal_error")
}

func TestWriteErrorExposesClientFacingMessage(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, dErrors.New(dErrors.CodeValidation, "category set-schedule requires a boolean value"))

	body := string(testutil.ReadBody(t, rr))
	assert.Contains(t, body, "validation")
	assert.Contains(t, body, "requires a boolean value")
}

func TestWriteErrorNonDomainError(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, errors.New("something unexpected"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "something unexpected")
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSON(rr, http.StatusCreated, map[string]string{"status": "ok"})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}
