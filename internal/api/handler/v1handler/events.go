package v1handler

import (
	"net/http"
	"sitescan/pkg/logger"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const eventWriteWait = 10 * time.Second

// ScanEvents upgrades the request to a websocket and writes a scan view after
// every state change until the client goes away or the session closes.
func (h *Handler) ScanEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn(ctx, "could not upgrade event stream", zap.Error(err))
		return
	}
	defer conn.Close()

	views, unsubscribe := h.deps.Scanner.Subscribe()
	defer unsubscribe()

	// control frames are only processed while reading
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-gone:
			return
		case view, ok := <-views:
			if !ok {
				msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "scan session closed")
				_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(eventWriteWait))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(eventWriteWait))
			if err := conn.WriteJSON(view); err != nil {
				logger.Debug(ctx, "event stream write failed", zap.Error(err))
				return
			}
		}
	}
}
