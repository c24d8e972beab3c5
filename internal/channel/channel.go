package channel

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/digitlive/internal/predict"
)

// State is the lifecycle of a Channel.
type State int

const (
	Closed State = iota
	Connecting
	Open
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Open:
		return "open"
	default:
		return "closed"
	}
}

// Stats counts frames in both directions. Sent frames and received replies are
// numbered independently; nothing on the wire ties a reply to a frame.
type Stats struct {
	Sent        uint64
	Dropped     uint64
	Overwritten uint64
	Received    uint64
	Failures    uint64
}

// Handler receives channel events on the event loop.
type Handler struct {
	OnOpen    func()
	OnMessage func(predict.Result, error)
	OnClose   func(error)
}

// Channel owns one connection attempt at a time. All methods must be called on
// the event loop that post feeds.
type Channel struct {
	post    func(func())
	logger  *log.Logger
	handler Handler
	timeout time.Duration

	state  State
	epoch  uint64
	conn   *Conn
	out    chan string
	cancel context.CancelFunc
	stats  Stats
}

func New(post func(func()), logger *log.Logger, h Handler) *Channel {
	if logger == nil {
		logger = log.Default()
	}
	return &Channel{post: post, logger: logger, handler: h, timeout: 10 * time.Second}
}

func (ch *Channel) State() State { return ch.state }

func (ch *Channel) Stats() Stats { return ch.stats }

// Open dials url in the background. It does nothing unless the channel is closed.
func (ch *Channel) Open(ctx context.Context, url, origin string) {
	if ch.state != Closed {
		return
	}
	ch.epoch++
	epoch := ch.epoch
	ch.state = Connecting
	ctx, cancel := context.WithCancel(ctx)
	ch.cancel = cancel

	ch.logger.Debug("dialing classifier", "url", url)
	go func() {
		dctx, dcancel := context.WithTimeout(ctx, ch.timeout)
		conn, err := Dial(dctx, url, origin)
		dcancel()
		ch.post(func() { ch.opened(epoch, url, conn, err) })
	}()
}

func (ch *Channel) opened(epoch uint64, url string, conn *Conn, err error) {
	if epoch != ch.epoch {
		if conn != nil {
			_ = conn.Close()
		}
		return
	}
	if err != nil {
		ch.state = Closed
		ch.stats.Failures++
		ch.logger.Error("failed to connect", "url", url, "err", err)
		if ch.handler.OnClose != nil {
			ch.handler.OnClose(&predict.TransportError{Op: "dial", Err: err})
		}
		return
	}

	ch.conn = conn
	ch.state = Open
	ch.out = make(chan string, 1)
	go ch.writeLoop(epoch, conn, ch.out)
	go ch.readLoop(epoch, conn)

	ch.logger.Info("connected", "url", url)
	if ch.handler.OnOpen != nil {
		ch.handler.OnOpen()
	}
}

// Send queues frame for the writer. While not open the frame is dropped. A frame
// still waiting when the next one arrives is replaced, so no backlog builds up.
func (ch *Channel) Send(frame string) error {
	if ch.state != Open {
		ch.stats.Dropped++
		return ErrNotOpen
	}
	select {
	case ch.out <- frame:
	default:
		select {
		case <-ch.out:
			ch.stats.Overwritten++
		default:
		}
		ch.out <- frame
	}
	ch.stats.Sent++
	return nil
}

// Close tears the connection down. Pending dials and in-flight replies are
// discarded.
func (ch *Channel) Close() {
	ch.epoch++
	if ch.cancel != nil {
		ch.cancel()
		ch.cancel = nil
	}
	if ch.out != nil {
		close(ch.out)
		ch.out = nil
	}
	if ch.conn != nil {
		_ = ch.conn.Close()
		ch.conn = nil
	}
	ch.state = Closed
}

func (ch *Channel) writeLoop(epoch uint64, conn *Conn, out <-chan string) {
	for frame := range out {
		if err := conn.Send(frame); err != nil {
			ch.post(func() { ch.failed(epoch, "send", err) })
			return
		}
	}
}

func (ch *Channel) readLoop(epoch uint64, conn *Conn) {
	for {
		data, err := conn.Receive()
		if err != nil {
			ch.post(func() { ch.failed(epoch, "receive", err) })
			return
		}
		ch.post(func() { ch.received(epoch, data) })
	}
}

func (ch *Channel) received(epoch uint64, data []byte) {
	if epoch != ch.epoch {
		return
	}
	ch.stats.Received++
	res, err := predict.Decode(data)
	if ch.handler.OnMessage != nil {
		ch.handler.OnMessage(res, err)
	}
}

func (ch *Channel) failed(epoch uint64, op string, err error) {
	if epoch != ch.epoch {
		return
	}
	ch.stats.Failures++
	if errors.Is(err, io.EOF) {
		ch.logger.Warn("classifier closed the connection")
	} else {
		ch.logger.Error("connection failed", "op", op, "err", err)
	}
	ch.Close()
	if ch.handler.OnClose != nil {
		ch.handler.OnClose(&predict.TransportError{Op: op, Err: err})
	}
}
