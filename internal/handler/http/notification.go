package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/employee-wizard-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/sse"
)

const keepaliveInterval = 30 * time.Second

type NotificationHandler interface {
	Stream(w http.ResponseWriter, r *http.Request)
}

type notificationHandlerImpl struct {
	hub       *sse.Hub
	keepalive time.Duration
}

func NewNotificationHandler(hub *sse.Hub) NotificationHandler {
	return &notificationHandlerImpl{hub: hub, keepalive: keepaliveInterval}
}

// Stream implements NotificationHandler. It pushes the notifications of the
// caller's role as server-sent events until the client disconnects.
func (h *notificationHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	role := middleware.RoleFromContext(r.Context())

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(string(role))
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"roleType\":\"%s\"}\n\n", role)
	flusher.Flush()

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				slog.Warn("Failed to encode SSE event", "event", event.Event, "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
