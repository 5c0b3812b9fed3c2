package web

import (
	"bufio"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/console/internal/core"
)

type streamEvent struct {
	name string
	data core.Notification
}

// readEvent reads one server-sent event from r.
func readEvent(t *testing.T, r *bufio.Reader) streamEvent {
	t.Helper()

	var ev streamEvent
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		switch {
		case line == "":
			return ev
		case strings.HasPrefix(line, "event: "):
			ev.name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev.data))
		}
	}
}

func TestNotificationStream(t *testing.T) {
	s := newTestServer(t, testConfig())
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(ts.URL + "/api/notifications/stream")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	body := bufio.NewReader(resp.Body)

	queue := s.Session().Notifications()
	n := queue.Success("Product created successfully!")

	ev := readEvent(t, body)
	assert.Equal(t, "shown", ev.name)
	assert.Equal(t, n.ID, ev.data.ID)
	assert.Equal(t, core.SeveritySuccess, ev.data.Severity)
	assert.Equal(t, "Product created successfully!", ev.data.Message)

	require.True(t, queue.Dismiss(n.ID))
	ev = readEvent(t, body)
	assert.Equal(t, "dismissed", ev.name)
	assert.Equal(t, n.ID, ev.data.ID)

	require.NoError(t, s.Shutdown(t.Context()))
	_, err = body.ReadString('\n')
	assert.ErrorIs(t, err, io.EOF)
}
