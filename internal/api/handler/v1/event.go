package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/eventpal-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/eventpal-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/eventpal-api/internal/domain"
	"github.com/vietanh2810/eventpal-api/internal/service"
)

const defaultRelatedLimit = 3

type EventHandler struct {
	stores Stores
}

func NewEventHandler(stores Stores) *EventHandler {
	return &EventHandler{
		stores: stores,
	}
}

// HandleGetEvents godoc
// @Summary      List events matching the search filters
// @Description  Query parameters that are present replace the stored search filters before listing.
// @Tags         events
// @Produce      json
// @Param        X-Profile-ID  header    string  false  "Browser profile"
// @Param        searchTerm    query     string  false  "Matches title, description or tags"
// @Param        category      query     string  false  "Exact category"
// @Param        location      query     string  false  "Location substring"
// @Param        sort          query     string  false  "date, price, popularity or title"
// @Success      200           {array}   domain.Event
// @Failure      400           {object}  response.Err
// @Failure      500           {object}  response.Err
// @Router       /events [get]
func (h *EventHandler) HandleGetEvents(ctx *gin.Context) {
	sortKey := service.SortKey(ctx.Query("sort"))
	if sortKey != "" && !sortKey.Valid() {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("unknown sort key %q", sortKey)))
		return
	}

	store, respErr := getStoreFromContext(ctx, h.stores)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var patch domain.FiltersPatch
	if v, ok := ctx.GetQuery("searchTerm"); ok {
		patch.SearchTerm = &v
	}
	if v, ok := ctx.GetQuery("category"); ok {
		patch.Category = &v
	}
	if v, ok := ctx.GetQuery("location"); ok {
		patch.Location = &v
	}
	store.SetSearchFilters(patch)

	events := store.FilteredEvents()
	if sortKey != "" {
		events = service.SortEvents(events, sortKey)
	}

	ctx.JSON(http.StatusOK, events)
}

// HandleGetCategories godoc
// @Summary      Categories in use and the known category list
// @Tags         events
// @Produce      json
// @Param        X-Profile-ID  header    string  false  "Browser profile"
// @Success      200           {object}  response.CategoriesResponse
// @Failure      500           {object}  response.Err
// @Router       /events/categories [get]
func (h *EventHandler) HandleGetCategories(ctx *gin.Context) {
	store, respErr := getStoreFromContext(ctx, h.stores)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ctx.JSON(http.StatusOK, response.CategoriesResponse{
		InUse: store.Categories(),
		Known: domain.KnownCategories,
	})
}

// HandleGetEvent godoc
// @Summary      Get an event
// @Tags         events
// @Produce      json
// @Param        X-Profile-ID  header    string  false  "Browser profile"
// @Param        eventID       path      int     true   "Event ID"
// @Success      200           {object}  domain.Event
// @Failure      400           {object}  response.Err
// @Failure      404           {object}  response.Err
// @Router       /events/{eventID} [get]
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	id, respErr := parseEventID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	store, respErr := getStoreFromContext(ctx, h.stores)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	event, err := store.Event(id)
	if err != nil {
		response.RenderErr(ctx, storeErr("v1.HandleGetEvent -> store.Event", err))
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleGetRelated godoc
// @Summary      Events sharing the category of an event
// @Tags         events
// @Produce      json
// @Param        X-Profile-ID  header    string  false  "Browser profile"
// @Param        eventID       path      int     true   "Event ID"
// @Param        limit         query     int     false  "Maximum number of events (default 3)"
// @Success      200           {array}   domain.Event
// @Failure      400           {object}  response.Err
// @Failure      404           {object}  response.Err
// @Router       /events/{eventID}/related [get]
func (h *EventHandler) HandleGetRelated(ctx *gin.Context) {
	id, respErr := parseEventID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", strconv.Itoa(defaultRelatedLimit)))
	if err != nil || limit < 0 {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("limit must be a non-negative integer")))
		return
	}

	store, respErr := getStoreFromContext(ctx, h.stores)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	related, err := store.RelatedEvents(id, limit)
	if err != nil {
		response.RenderErr(ctx, storeErr("v1.HandleGetRelated -> store.RelatedEvents", err))
		return
	}

	ctx.JSON(http.StatusOK, related)
}

// HandleCreateEvent godoc
// @Summary      Create an event organized by the signed in user
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        X-Profile-ID  header    string                false  "Browser profile"
// @Param        request       body      request.EventRequest  true   "request body"
// @Success      201           {object}  domain.Event
// @Failure      400           {object}  response.Err
// @Failure      401           {object}  response.Err
// @Failure      500           {object}  response.Err
// @Router       /events [post]
// @Security     BearerAuth
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	store, _, respErr := getUserFromContext(ctx, h.stores)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.EventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := store.AddEvent(ctx.Request.Context(), req.Input())
	if err != nil {
		response.RenderErr(ctx, storeErr("v1.HandleCreateEvent -> store.AddEvent", err))
		return
	}

	ctx.JSON(http.StatusCreated, event)
}

// HandleUpdateEvent godoc
// @Summary      Replace the editable fields of an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        X-Profile-ID  header    string                false  "Browser profile"
// @Param        eventID       path      int                   true   "Event ID"
// @Param        request       body      request.EventRequest  true   "request body"
// @Success      200           {object}  domain.Event
// @Failure      400           {object}  response.Err
// @Failure      401           {object}  response.Err
// @Failure      403           {object}  response.Err
// @Failure      404           {object}  response.Err
// @Router       /events/{eventID} [put]
// @Security     BearerAuth
func (h *EventHandler) HandleUpdateEvent(ctx *gin.Context) {
	id, respErr := parseEventID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	store, user, respErr := getUserFromContext(ctx, h.stores)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.EventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	existing, err := store.Event(id)
	if err != nil {
		response.RenderErr(ctx, storeErr("v1.HandleUpdateEvent -> store.Event", err))
		return
	}

	if !existing.OwnedBy(user) {
		response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrPermissionDenied))
		return
	}

	event := req.Apply(existing)
	updated, err := store.UpdateEvent(ctx.Request.Context(), event)
	if err != nil {
		response.RenderErr(ctx, storeErr("v1.HandleUpdateEvent -> store.UpdateEvent", err))
		return
	}
	if !updated {
		// Deleted between the read and the write.
		response.RenderErr(ctx, response.ErrNotFound("event", "id", id))
		return
	}

	event, err = store.Event(id)
	if err != nil {
		response.RenderErr(ctx, storeErr("v1.HandleUpdateEvent -> store.Event", err))
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleDeleteEvent godoc
// @Summary      Delete an event organized by the signed in user
// @Tags         events
// @Param        X-Profile-ID  header  string  false  "Browser profile"
// @Param        eventID       path    int     true   "Event ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /events/{eventID} [delete]
// @Security     BearerAuth
func (h *EventHandler) HandleDeleteEvent(ctx *gin.Context) {
	id, respErr := parseEventID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	store, _, respErr := getUserFromContext(ctx, h.stores)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := store.DeleteEvent(ctx.Request.Context(), id); err != nil {
		response.RenderErr(ctx, storeErr("v1.HandleDeleteEvent -> store.DeleteEvent", err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleToggleAttendance godoc
// @Summary      Join or leave an event
// @Tags         events
// @Produce      json
// @Param        X-Profile-ID  header    string  false  "Browser profile"
// @Param        eventID       path      int     true   "Event ID"
// @Success      200           {object}  response.AttendanceResponse
// @Failure      400           {object}  response.Err
// @Failure      401           {object}  response.Err
// @Failure      404           {object}  response.Err
// @Router       /events/{eventID}/attendance [post]
// @Security     BearerAuth
func (h *EventHandler) HandleToggleAttendance(ctx *gin.Context) {
	id, respErr := parseEventID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	store, _, respErr := getUserFromContext(ctx, h.stores)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	event, attending, err := store.ToggleEventAttendance(ctx.Request.Context(), id)
	if err != nil {
		response.RenderErr(ctx, storeErr("v1.HandleToggleAttendance -> store.ToggleEventAttendance", err))
		return
	}

	ctx.JSON(http.StatusOK, response.AttendanceResponse{
		Event:     event,
		Attending: attending,
	})
}
