package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/eventpal-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/eventpal-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/eventpal-api/internal/repository"
)

const (
	ProfileHeader       = "X-Profile-ID"
	ContextKeyProfileID = "profileID"
)

// Profile resolves the browser profile a request acts on.
func Profile() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		profileID := ctx.GetHeader(ProfileHeader)
		if profileID == "" {
			profileID = ctx.Query("profile")
		}
		if profileID == "" {
			profileID = repository.DefaultProfile
		}

		if err := request.ValidateProfileID(profileID); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		ctx.Set(ContextKeyProfileID, profileID)
		ctx.Next()
	}
}
