package gateway

import (
	"context"
	"io"
	"sync"

	"github.com/gorilla/websocket"
)

// wsLine adapts one WebSocket connection to the caller-line contract
// the dialogue engine speaks. A single reader goroutine owns the read
// side; Prompt waits on the utterance channel so a hang-up mid-call
// surfaces as io.EOF, same as a dropped phone line.
type wsLine struct {
	conn       *websocket.Conn
	utterances <-chan string
	done       chan struct{}

	writeMu   sync.Mutex
	closeOnce sync.Once
}

func newWSLine(conn *websocket.Conn) *wsLine {
	ch := make(chan string, 4)
	done := make(chan struct{})
	go func() {
		defer close(ch)
		for {
			var f Frame
			if err := conn.ReadJSON(&f); err != nil {
				return
			}
			if f.Type != FrameTypeUtterance {
				continue
			}
			// Closing the conn alone would not unblock a send the
			// engine stopped receiving, so close also signals done.
			select {
			case ch <- f.Text:
			case <-done:
				return
			}
		}
	}()
	return &wsLine{conn: conn, utterances: ch, done: done}
}

func (l *wsLine) send(f Frame) error {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	return l.conn.WriteJSON(f)
}

// Say pushes a statement to the caller.
func (l *wsLine) Say(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return l.send(sayFrame(text))
}

// Prompt asks (or just listens, for empty text) and blocks for the
// caller's next utterance.
func (l *wsLine) Prompt(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := l.send(promptFrame(text)); err != nil {
		return "", err
	}
	select {
	case u, ok := <-l.utterances:
		if !ok {
			return "", io.EOF
		}
		return u, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Close releases the connection.
func (l *wsLine) Close() error {
	var err error
	l.closeOnce.Do(func() {
		close(l.done)
		err = l.conn.Close()
	})
	return err
}
