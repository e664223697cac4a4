package v1

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vietanh2810/eventpal-api/internal/service"
)

func TestStoreErr(t *testing.T) {
	tests := []struct {
		err      error
		wantCode int
	}{
		{err: service.ErrNotAuthenticated, wantCode: http.StatusUnauthorized},
		{err: service.ErrInvalidCredentials, wantCode: http.StatusUnauthorized},
		{err: fmt.Errorf("store.Register -> %w", service.ErrDuplicateAccount), wantCode: http.StatusConflict},
		{err: service.ErrPermissionDenied, wantCode: http.StatusForbidden},
		{err: fmt.Errorf("%w: 7", service.ErrEventNotFound), wantCode: http.StatusNotFound},
		{err: service.ErrInvalidEvent, wantCode: http.StatusBadRequest},
		{err: service.ErrInvalidTheme, wantCode: http.StatusBadRequest},
		{err: service.ErrInvalidPassword, wantCode: http.StatusBadRequest},
		{err: errors.New("disk full"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			got := storeErr("op", tt.err)
			assert.Equal(t, tt.wantCode, got.Code)
		})
	}

	internal := storeErr("v1.op", errors.New("disk full"))
	assert.NotContains(t, internal.Message, "disk full")
	assert.ErrorContains(t, internal.Unwrap(), "v1.op -> disk full")
}
