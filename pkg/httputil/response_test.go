package httputil_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/medagenda/agenda-api/pkg/errors"
	"github.com/medagenda/agenda-api/pkg/httputil"
	"github.com/medagenda/agenda-api/pkg/locker"
)

func respond(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	httputil.RespondWithError(c, err)
	return w
}

func TestRespondWithErrorMapsAppErrorKinds(t *testing.T) {
	w := respond(t, apperrors.NewConflict("interval already booked"))

	assert.Equal(t, http.StatusConflict, w.Code)

	var body httputil.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, "conflict", body.Error.Kind)
	assert.Equal(t, "interval already booked", body.Error.Message)
}

func TestRespondWithErrorUnwrapsWrappedAppErrors(t *testing.T) {
	wrapped := fmt.Errorf("creating booking: %w", apperrors.NewInvalidRange("start after end"))
	w := respond(t, wrapped)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body httputil.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, "invalid_range", body.Error.Kind)
}

func TestRespondWithErrorLockContentionIsRetryable(t *testing.T) {
	w := respond(t, fmt.Errorf("creating booking: %w", locker.ErrLockNotAcquired))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))

	var body httputil.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, "busy", body.Error.Kind)
}

func TestRespondWithErrorDefaultsToInternal(t *testing.T) {
	w := respond(t, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body httputil.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, "Internal server error", body.Error.Message)
}
