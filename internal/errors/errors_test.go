package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want int
	}{
		{"with status code", &ErrorWithStatusCode{Message: "x", StatusCode: http.StatusTeapot}, http.StatusTeapot},
		{"wrapped status code", fmt.Errorf("ctx: %w", NotFound("Image")), http.StatusNotFound},
		{"validation", &ValidationError{Message: "bad"}, http.StatusBadRequest},
		{"not found sentinel", fmt.Errorf("image 3: %w", ErrNotFound), http.StatusNotFound},
		{"duplicate sentinel", fmt.Errorf("category: %w", ErrDuplicate), http.StatusConflict},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StatusCode(tc.err))
		})
	}
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("wrap: %w", &ValidationError{Message: "x"})
	assert.True(t, Is[*ValidationError](err))
	assert.False(t, Is[*ErrorWithStatusCode](err))
}
