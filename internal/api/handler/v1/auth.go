package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/eventpal-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/eventpal-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/eventpal-api/internal/api/middleware"
	"github.com/vietanh2810/eventpal-api/internal/config"
	"github.com/vietanh2810/eventpal-api/internal/domain"
	"github.com/vietanh2810/eventpal-api/internal/pkg/jwthelper"
	"github.com/vietanh2810/eventpal-api/internal/service"
)

type AuthHandler struct {
	conf   *config.APIConfig
	stores Stores
}

func NewAuthHandler(conf *config.APIConfig, stores Stores) *AuthHandler {
	return &AuthHandler{
		conf:   conf,
		stores: stores,
	}
}

// HandleSignup godoc
// @Summary      Register a new account and sign it in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        X-Profile-ID  header    string                 false  "Browser profile"
// @Param        request       body      request.SignupRequest  true   "request body"
// @Success      201           {object}  response.LoginResponse
// @Failure      400           {object}  response.Err
// @Failure      409           {object}  response.Err
// @Failure      500           {object}  response.Err
// @Router       /auth/signup [post]
func (h *AuthHandler) HandleSignup(ctx *gin.Context) {
	var req request.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	store, respErr := getStoreFromContext(ctx, h.stores)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	user, err := store.Register(ctx.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.RenderErr(ctx, storeErr("v1.HandleSignup -> store.Register", err))
		return
	}

	h.renderSession(ctx, http.StatusCreated, user)
}

// HandleLogin godoc
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        X-Profile-ID  header    string                false  "Browser profile"
// @Param        request       body      request.LoginRequest  true   "request body"
// @Success      200           {object}  response.LoginResponse
// @Failure      400           {object}  response.Err
// @Failure      401           {object}  response.Err
// @Failure      500           {object}  response.Err
// @Router       /auth/login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	req := request.LoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	store, respErr := getStoreFromContext(ctx, h.stores)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	user, err := store.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.RenderErr(ctx, storeErr("v1.HandleLogin -> store.Login", err))

		return
	}

	h.renderSession(ctx, http.StatusOK, user)
}

// HandleLogout godoc
// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Param        X-Profile-ID  header  string  false  "Browser profile"
// @Success      204
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /auth/logout [post]
// @Security     BearerAuth
func (h *AuthHandler) HandleLogout(ctx *gin.Context) {
	store, _, respErr := getUserFromContext(ctx, h.stores)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := store.Logout(ctx.Request.Context()); err != nil {
		response.RenderErr(ctx, storeErr("v1.HandleLogout -> store.Logout", err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleUpdateProfile godoc
// @Summary      Update the signed in user's name and email
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        X-Profile-ID  header    string                  false  "Browser profile"
// @Param        request       body      request.ProfileRequest  true   "request body"
// @Success      200           {object}  domain.SessionUser
// @Failure      400           {object}  response.Err
// @Failure      401           {object}  response.Err
// @Failure      409           {object}  response.Err
// @Router       /profile [put]
// @Security     BearerAuth
func (h *AuthHandler) HandleUpdateProfile(ctx *gin.Context) {
	store, _, respErr := getUserFromContext(ctx, h.stores)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.ProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, err := store.UpdateProfile(ctx.Request.Context(), service.ProfileInput{Name: req.Name, Email: req.Email})
	if err != nil {
		response.RenderErr(ctx, storeErr("v1.HandleUpdateProfile -> store.UpdateProfile", err))
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandleProfileEvents godoc
// @Summary      Events the signed in user attends or organizes
// @Tags         profile
// @Produce      json
// @Param        X-Profile-ID  header    string  false  "Browser profile"
// @Success      200           {object}  response.ProfileEventsResponse
// @Failure      401           {object}  response.Err
// @Router       /profile/events [get]
// @Security     BearerAuth
func (h *AuthHandler) HandleProfileEvents(ctx *gin.Context) {
	store, _, respErr := getUserFromContext(ctx, h.stores)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	attending, err := store.AttendingEvents()
	if err != nil {
		response.RenderErr(ctx, storeErr("v1.HandleProfileEvents -> store.AttendingEvents", err))
		return
	}

	created, err := store.CreatedEvents()
	if err != nil {
		response.RenderErr(ctx, storeErr("v1.HandleProfileEvents -> store.CreatedEvents", err))
		return
	}

	ctx.JSON(http.StatusOK, response.ProfileEventsResponse{
		Attending: attending,
		Created:   created,
	})
}

func (h *AuthHandler) renderSession(ctx *gin.Context, status int, user domain.SessionUser) {
	profileID := ctx.GetString(middleware.ContextKeyProfileID)

	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), user.ID, profileID, ctx.Request.UserAgent(), h.conf.JWTTTL)
	if err != nil {
		err = fmt.Errorf("v1.renderSession -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(status, response.LoginResponse{
		Token: token,
		User:  user,
	})
}
