package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{"not found", NotFound("patient", nil), http.StatusNotFound},
		{"validation", Validation("bad input"), http.StatusBadRequest},
		{"invalid transition", InvalidTransition("cannot cancel"), http.StatusConflict},
		{"system", System("system error occurred", nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.StatusCode())
		})
	}
}

func TestErrorMessageAndUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := System("system error occurred", cause)

	assert.Equal(t, "system error occurred: connection refused", err.Error())
	assert.Equal(t, cause, errors.Unwrap(err))
	assert.True(t, errors.Is(err, cause))

	assert.Equal(t, "patient not found", NotFound("patient", nil).Error())
}

func TestIsCode(t *testing.T) {
	err := InvalidTransition("cannot cancel")
	assert.True(t, IsCode(err, ErrInvalidTransition))
	assert.False(t, IsCode(err, ErrNotFound))

	wrapped := fmt.Errorf("cancel appointment: %w", err)
	assert.True(t, IsCode(wrapped, ErrInvalidTransition))

	assert.False(t, IsCode(errors.New("plain"), ErrSystem))
	assert.False(t, IsCode(nil, ErrSystem))
}
