package v1

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/eventpal-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/eventpal-api/internal/api/middleware"
	"github.com/vietanh2810/eventpal-api/internal/domain"
	"github.com/vietanh2810/eventpal-api/internal/service"
)

var errStaleSession = errors.New("session has ended, please sign in again")

// Stores hands out the state store of a profile.
type Stores interface {
	Store(ctx context.Context, profileID string) (*service.Store, error)
}

func getStoreFromContext(ctx *gin.Context, stores Stores) (*service.Store, *response.Err) {
	profileID := ctx.GetString(middleware.ContextKeyProfileID)

	store, err := stores.Store(ctx.Request.Context(), profileID)
	if err != nil {
		err = fmt.Errorf("getStoreFromContext -> stores.Store -> %w", err)
		return nil, response.ErrInternalServerError(err)
	}

	return store, nil
}

// getUserFromContext returns the profile store and its session user, which
// must be the user the bearer token was issued to.
func getUserFromContext(ctx *gin.Context, stores Stores) (*service.Store, domain.SessionUser, *response.Err) {
	store, respErr := getStoreFromContext(ctx, stores)
	if respErr != nil {
		return nil, domain.SessionUser{}, respErr
	}

	user, ok := store.CurrentUser()
	if !ok || user.ID != ctx.GetInt64(middleware.ContextKeyUserID) {
		return nil, domain.SessionUser{}, response.ErrUnauthorized(errStaleSession)
	}

	return store, user, nil
}

func parseEventID(ctx *gin.Context) (int64, *response.Err) {
	id, err := strconv.ParseInt(ctx.Param("eventID"), 10, 64)
	if err != nil {
		return 0, response.ErrBadRequest(fmt.Errorf("invalid event ID: %w", err))
	}

	return id, nil
}

// storeErr maps store errors onto HTTP errors.
func storeErr(op string, err error) *response.Err {
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		return response.ErrUnauthorized(service.ErrNotAuthenticated)
	case errors.Is(err, service.ErrInvalidCredentials):
		return response.ErrWrongCredentials(err)
	case errors.Is(err, service.ErrDuplicateAccount):
		return response.ErrConflict(service.ErrDuplicateAccount)
	case errors.Is(err, service.ErrPermissionDenied):
		return response.ErrPermissionDenied(service.ErrPermissionDenied)
	case errors.Is(err, service.ErrEventNotFound):
		return response.ErrNotFoundWith(err)
	case errors.Is(err, service.ErrInvalidEvent), errors.Is(err, service.ErrInvalidTheme), errors.Is(err, service.ErrInvalidPassword):
		return response.ErrBadRequest(err)
	}

	return response.ErrInternalServerError(fmt.Errorf("%s -> %w", op, err))
}
