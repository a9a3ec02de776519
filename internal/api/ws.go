package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/phrazzld/taskai/internal/platform/logger"
	"github.com/phrazzld/taskai/internal/redact"
)

const (
	// wsWriteTimeout bounds a single outbound frame write.
	wsWriteTimeout = 10 * time.Second

	// wsMaxMessageSize caps inbound frames.
	wsMaxMessageSize = 64 * 1024
)

// WSHandler handles websocket connections. The protocol is a plain echo:
// every text or binary frame the client sends is written straight back.
type WSHandler struct {
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(log *slog.Logger) *WSHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for WSHandler")
	}

	return &WSHandler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser clients connect from arbitrary origins in dev setups.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: log.With(slog.String("component", "ws_handler")),
	}
}

// Serve handles GET /ws requests by upgrading the connection and echoing
// frames until the client disconnects.
func (h *WSHandler) Serve(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		log.Warn("websocket upgrade failed",
			slog.String("error", redact.Error(err)),
			slog.String("remote_addr", r.RemoteAddr))
		return
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Debug("websocket close failed", slog.String("error", redact.Error(cerr)))
		}
	}()

	conn.SetReadLimit(wsMaxMessageSize)
	log.Debug("websocket connected", slog.String("remote_addr", r.RemoteAddr))

	for {
		messageType, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("websocket read failed", slog.String("error", redact.Error(err)))
			}
			return
		}

		if err := conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
			log.Warn("websocket deadline failed", slog.String("error", redact.Error(err)))
			return
		}

		if err := conn.WriteMessage(messageType, payload); err != nil {
			log.Warn("websocket write failed", slog.String("error", redact.Error(err)))
			return
		}
	}
}
