package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/eventpal-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/eventpal-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/eventpal-api/internal/domain"
)

type PreferenceHandler struct {
	stores Stores
}

func NewPreferenceHandler(stores Stores) *PreferenceHandler {
	return &PreferenceHandler{
		stores: stores,
	}
}

// HandleGetTheme godoc
// @Summary      Current theme
// @Tags         preferences
// @Produce      json
// @Param        X-Profile-ID  header    string  false  "Browser profile"
// @Success      200           {object}  response.ThemeResponse
// @Router       /theme [get]
func (h *PreferenceHandler) HandleGetTheme(ctx *gin.Context) {
	store, respErr := getStoreFromContext(ctx, h.stores)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ctx.JSON(http.StatusOK, response.ThemeResponse{Theme: store.Theme()})
}

// HandleSetTheme godoc
// @Summary      Set the theme
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Param        X-Profile-ID  header    string                false  "Browser profile"
// @Param        request       body      request.ThemeRequest  true   "request body"
// @Success      200           {object}  response.ThemeResponse
// @Failure      400           {object}  response.Err
// @Failure      500           {object}  response.Err
// @Router       /theme [put]
func (h *PreferenceHandler) HandleSetTheme(ctx *gin.Context) {
	var req request.ThemeRequest
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

	theme := domain.Theme(req.Theme)
	if err := store.SetTheme(ctx.Request.Context(), theme); err != nil {
		response.RenderErr(ctx, storeErr("v1.HandleSetTheme -> store.SetTheme", err))
		return
	}

	ctx.JSON(http.StatusOK, response.ThemeResponse{Theme: theme})
}

// HandleToggleTheme godoc
// @Summary      Switch between light and dark
// @Tags         preferences
// @Produce      json
// @Param        X-Profile-ID  header    string  false  "Browser profile"
// @Success      200           {object}  response.ThemeResponse
// @Failure      500           {object}  response.Err
// @Router       /theme/toggle [post]
func (h *PreferenceHandler) HandleToggleTheme(ctx *gin.Context) {
	store, respErr := getStoreFromContext(ctx, h.stores)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	theme, err := store.ToggleTheme(ctx.Request.Context())
	if err != nil {
		response.RenderErr(ctx, storeErr("v1.HandleToggleTheme -> store.ToggleTheme", err))
		return
	}

	ctx.JSON(http.StatusOK, response.ThemeResponse{Theme: theme})
}

// HandleGetFilters godoc
// @Summary      Current search filters
// @Tags         preferences
// @Produce      json
// @Param        X-Profile-ID  header    string  false  "Browser profile"
// @Success      200           {object}  domain.SearchFilters
// @Router       /filters [get]
func (h *PreferenceHandler) HandleGetFilters(ctx *gin.Context) {
	store, respErr := getStoreFromContext(ctx, h.stores)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ctx.JSON(http.StatusOK, store.SearchFilters())
}

// HandleSetFilters godoc
// @Summary      Merge fields into the search filters
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Param        X-Profile-ID  header    string                  false  "Browser profile"
// @Param        request       body      request.FiltersRequest  true   "request body"
// @Success      200           {object}  domain.SearchFilters
// @Failure      400           {object}  response.Err
// @Router       /filters [put]
func (h *PreferenceHandler) HandleSetFilters(ctx *gin.Context) {
	var req request.FiltersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	store, respErr := getStoreFromContext(ctx, h.stores)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ctx.JSON(http.StatusOK, store.SetSearchFilters(req.Patch()))
}
