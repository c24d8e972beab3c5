package channel

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/net/websocket"
)

const DefaultOrigin = "http://localhost/"

var ErrNotOpen = errors.New("channel: not open")

// Conn is an open WebSocket to the classifier.
type Conn struct {
	ws *websocket.Conn
}

// Dial opens a WebSocket to url.
func Dial(ctx context.Context, url, origin string) (*Conn, error) {
	if origin == "" {
		origin = DefaultOrigin
	}
	cfg, err := websocket.NewConfig(url, origin)
	if err != nil {
		return nil, fmt.Errorf("channel: bad url %q: %w", url, err)
	}
	ws, err := cfg.DialContext(ctx)
	if err != nil {
		return nil, err
	}
	return &Conn{ws: ws}, nil
}

// Send writes one text frame.
func (c *Conn) Send(frame string) error {
	return websocket.Message.Send(c.ws, frame)
}

// Receive blocks for the next message.
func (c *Conn) Receive() ([]byte, error) {
	var msg string
	if err := websocket.Message.Receive(c.ws, &msg); err != nil {
		return nil, err
	}
	return []byte(msg), nil
}

func (c *Conn) Close() error {
	return c.ws.Close()
}
