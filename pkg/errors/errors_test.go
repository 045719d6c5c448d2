package errors_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/medagenda/agenda-api/pkg/errors"
)

func TestStatusCodes(t *testing.T) {
	cases := []struct {
		err  *apperrors.AppError
		want int
	}{
		{apperrors.NewNotFound("booking", nil), http.StatusNotFound},
		{apperrors.NewBadRequest("bad payload", nil), http.StatusBadRequest},
		{apperrors.NewInvalidRange("start after end"), http.StatusBadRequest},
		{apperrors.NewInvalidInterval("start equals end"), http.StatusBadRequest},
		{apperrors.NewConflict("overlap"), http.StatusConflict},
		{apperrors.NewInvalidTransition("completed to pending"), http.StatusUnprocessableEntity},
		{apperrors.NewInternal(fmt.Errorf("boom")), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.err.StatusCode(), tc.err.Error())
	}
}

func TestKindsSurviveWrapping(t *testing.T) {
	err := fmt.Errorf("creating booking: %w", apperrors.NewConflict("overlap"))

	assert.True(t, apperrors.IsConflict(err))
	assert.False(t, apperrors.IsNotFound(err))
	assert.Equal(t, apperrors.ErrConflict, apperrors.CodeOf(err))
}

func TestCodeOfPlainError(t *testing.T) {
	assert.Equal(t, apperrors.ErrInternal, apperrors.CodeOf(fmt.Errorf("boom")))
}

func TestKindsAreDistinguishable(t *testing.T) {
	assert.True(t, apperrors.IsInvalidRange(apperrors.NewInvalidRange("x")))
	assert.False(t, apperrors.IsInvalidInterval(apperrors.NewInvalidRange("x")))
	assert.True(t, apperrors.IsInvalidTransition(apperrors.NewInvalidTransition("x")))
	assert.False(t, apperrors.IsConflict(apperrors.NewInvalidTransition("x")))
}
