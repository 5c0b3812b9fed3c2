package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/JonMunkholm/console/internal/logging"
)

// handleNotificationStream streams the session's notification events as
// server-sent events. Each event is named after its kind (shown, dismissed,
// expired) and carries the notification as JSON. The stream ends when the
// client disconnects or the server shuts down.
func (s *Server) handleNotificationStream(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())
	events, unsubscribe := s.session.Notifications().Subscribe()
	defer unsubscribe()

	rc := http.NewResponseController(w)
	// Streams outlive the server's write timeout.
	_ = rc.SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		logger.Warn("notification stream: flush unsupported", "error", err)
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case <-s.closing:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(ev.Notification)
			if err != nil {
				logger.Error("notification stream: encode", "id", ev.Notification.ID, "error", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Kind, data); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
		}
	}
}
