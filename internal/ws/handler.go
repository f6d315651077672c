package ws

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"campus-jobs/internal/feed"
)

type SnapshotSource interface {
	Get(ctx context.Context) feed.Snapshot
}

type Handler struct {
	hub      *Hub
	snapshot SnapshotSource
	logger   *zap.Logger
}

func NewHandler(hub *Hub, snapshot SnapshotSource, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{hub: hub, snapshot: snapshot, logger: logger}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleJobs upgrades the connection, sends the current snapshot and then
// streams every later update.
func (h *Handler) HandleJobs(c fiber.Ctx) error {
	if h == nil || h.hub == nil {
		return fiber.ErrServiceUnavailable
	}

	return adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.Warn("ws upgrade failed", zap.Error(err))
			return
		}

		client := NewClient(h.hub, conn)
		if h.snapshot != nil {
			if b, err := json.Marshal(NewUpdateJobsEvent(h.snapshot.Get(r.Context()))); err == nil {
				client.send <- b
			}
		}
		if !h.hub.Register(client) {
			_ = conn.Close()
			return
		}
		go client.WritePump()
		go client.ReadPump()
	})(c)
}
