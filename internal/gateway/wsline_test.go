package gateway

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

// A client that keeps sending utterances nobody is asking for must not
// wedge the reader goroutine once the line is closed.
func TestWSLineCloseUnblocksFloodedReader(t *testing.T) {
	up := websocket.Upgrader{}
	lines := make(chan *wsLine, 1)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			t.Error(err)
			return
		}
		lines <- newWSLine(conn)
	}))
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	for i := 0; i < 16; i++ {
		require.NoError(t, conn.WriteJSON(Frame{Type: FrameTypeUtterance, Text: "hello?"}))
	}

	line := <-lines
	require.NoError(t, line.Close())

	// Once the reader goroutine has exited it closes the utterance
	// channel; draining until then proves it was not stuck on a send.
	require.Eventually(t, func() bool {
		for {
			select {
			case _, ok := <-line.utterances:
				if !ok {
					return true
				}
			default:
				return false
			}
		}
	}, 2*time.Second, 10*time.Millisecond)
}
