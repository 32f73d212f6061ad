package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomErrorMatching(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := fmt.Errorf("lookup pizza: %w", ErrRecipeServiceError.Wrap(cause))

	assert.True(t, errors.Is(err, ErrRecipeServiceError))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrSessionNotFound))
	assert.Equal(t, http.StatusBadGateway, StatusOf(err))
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusOf(ErrSessionNotFound))
	assert.Equal(t, http.StatusConflict, StatusOf(ErrSessionConflict))
	assert.Equal(t, http.StatusBadRequest, StatusOf(NewValidationError("text is required")))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("boom")))
}

func TestToErrorResponse(t *testing.T) {
	t.Run("custom error hides details outside debug", func(t *testing.T) {
		resp := ToErrorResponse(ErrSessionNotFound, false)
		assert.Equal(t, ErrCodeSessionNotFound, resp.Code)
		assert.Empty(t, resp.Details)
	})

	t.Run("validation error keeps its message", func(t *testing.T) {
		resp := ToErrorResponse(NewValidationError("text is required"), true)
		assert.Equal(t, ErrCodeInvalidRequest, resp.Code)
		assert.Equal(t, "text is required", resp.Message)
		assert.Equal(t, "text is required", resp.Details)
	})

	t.Run("unknown error becomes internal", func(t *testing.T) {
		resp := ToErrorResponse(errors.New("boom"), false)
		assert.Equal(t, ErrCodeInternalError, resp.Code)
	})
}
