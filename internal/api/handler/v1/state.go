package v1

import (
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/vietanh2810/eventpal-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/eventpal-api/internal/domain"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	snapshotBuffer = 16
)

type StateHandler struct {
	stores   Stores
	upgrader websocket.Upgrader
}

func NewStateHandler(stores Stores, allowedOrigins []string) *StateHandler {
	return &StateHandler{
		stores: stores,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(allowedOrigins, "*") || slices.Contains(allowedOrigins, origin)
			},
		},
	}
}

// HandleGetSession godoc
// @Summary      Snapshot of the application state
// @Tags         state
// @Produce      json
// @Param        X-Profile-ID  header    string  false  "Browser profile"
// @Success      200           {object}  domain.State
// @Failure      500           {object}  response.Err
// @Router       /session [get]
func (h *StateHandler) HandleGetSession(ctx *gin.Context) {
	store, respErr := getStoreFromContext(ctx, h.stores)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ctx.JSON(http.StatusOK, store.State())
}

// HandleStateStream godoc
// @Summary      Stream state snapshots
// @Description  Sends the current state, then a new snapshot after every change of the profile's state.
// @Tags         state
// @Produce      json
// @Param        X-Profile-ID  header  string  false  "Browser profile"
// @Success      101  {string}  string  "Switching Protocols to WebSocket"
// @Failure      500  {object}  response.Err
// @Router       /state/ws [get]
func (h *StateHandler) HandleStateStream(ctx *gin.Context) {
	store, respErr := getStoreFromContext(ctx, h.stores)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		zap.L().Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &stateClient{
		conn: conn,
		send: make(chan domain.State, snapshotBuffer),
		done: make(chan struct{}),
	}
	unsubscribe := store.Subscribe(client.push)
	client.push(store.State())

	go client.writePump(unsubscribe)
	go client.readPump()
}

type stateClient struct {
	conn *websocket.Conn
	send chan domain.State
	done chan struct{}
	once sync.Once
}

// push never blocks the store; a client that falls behind is disconnected.
func (c *stateClient) push(state domain.State) {
	select {
	case <-c.done:
	case c.send <- state:
	default:
		zap.L().Warn("state stream client too slow, closing")
		c.stop()
	}
}

func (c *stateClient) stop() {
	c.once.Do(func() { close(c.done) })
}

func (c *stateClient) writePump(unsubscribe func()) {
	var sent uint64
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		unsubscribe()
		c.conn.Close()
	}()

	for {
		select {
		case state := <-c.send:
			// The initial snapshot and a concurrent change can arrive out of order.
			if state.Version <= sent {
				continue
			}
			sent = state.Version

			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(state); err != nil {
				c.stop()
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.stop()
				return
			}
		case <-c.done:
			_ = c.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return
		}
	}
}

// readPump discards client messages and ends the stream when the peer goes away.
func (c *stateClient) readPump() {
	defer c.stop()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				zap.L().Info("state stream closed", zap.Error(err))
			}
			return
		}
	}
}
