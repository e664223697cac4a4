package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/eventpal-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/eventpal-api/internal/pkg/jwthelper"
)

const (
	ContextKeyUserID = "userID"
	ContextKeyClaims = "claims"
)

var (
	errMissingToken    = errors.New("missing bearer token")
	errProfileMismatch = errors.New("token was issued for another profile")
	errAgentMismatch   = errors.New("token was issued to another client")
)

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// VerifyJWT checks the bearer token, which must come from the profile and
// user agent it was issued to, and stores its user id in the context.
// It must run after Profile.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))
			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, tokenString)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}

		if claims.Profile != ctx.GetString(ContextKeyProfileID) {
			response.RenderErr(ctx, response.ErrUnauthorized(errProfileMismatch))
			return
		}

		if claims.UserAgent != ctx.Request.UserAgent() {
			response.RenderErr(ctx, response.ErrUnauthorized(errAgentMismatch))
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}

		ctx.Set(ContextKeyClaims, claims)
		ctx.Set(ContextKeyUserID, userID)
		ctx.Next()
	}
}
