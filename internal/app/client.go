package app

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/san-kum/digitlive/internal/animator"
	"github.com/san-kum/digitlive/internal/capture"
	"github.com/san-kum/digitlive/internal/channel"
	"github.com/san-kum/digitlive/internal/clock"
	"github.com/san-kum/digitlive/internal/config"
	"github.com/san-kum/digitlive/internal/netdiagram"
	"github.com/san-kum/digitlive/internal/predict"
	"github.com/san-kum/digitlive/internal/render"
	"github.com/san-kum/digitlive/internal/schedule"
	"github.com/san-kum/digitlive/internal/storage"
	"github.com/san-kum/digitlive/internal/surface"
)

var ErrNoStore = errors.New("app: snapshots are disabled")

// Transport is the connection the client streams frames over.
type Transport interface {
	Open(ctx context.Context, url, origin string)
	Send(frame string) error
	Close()
	State() channel.State
}

// Options wires a Client. Clock and Post are required.
type Options struct {
	Config *config.Config
	Clock  clock.Clock
	Post   func(func())
	Logger *log.Logger
	Store  *storage.Store

	// NewTransport overrides the WebSocket channel.
	NewTransport func(channel.Handler) Transport
}

// Stats counts replies by outcome.
type Stats struct {
	Results   uint64
	Server    uint64
	Malformed uint64
	Transport uint64
	Dropped   uint64
	Animated  uint64
}

type Client struct {
	cfg     *config.Config
	clock   clock.Clock
	logger  *log.Logger
	store   *storage.Store
	session string
	ctx     context.Context

	capture   *capture.Capture
	scheduler *schedule.Scheduler
	transport Transport
	diagram   *netdiagram.Diagram
	runner    *animator.Runner

	state      render.State
	history    []float64
	lastFrame  []byte
	lastResult *predict.Result
	stats      Stats
}

func New(opts Options) (*Client, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	surf, err := surface.New(cfg.Canvas.Width, cfg.Canvas.Height, cfg.Canvas.LineWidth)
	if err != nil {
		return nil, err
	}

	c := &Client{
		cfg:     cfg,
		clock:   opts.Clock,
		logger:  logger,
		store:   opts.Store,
		session: uuid.NewString(),
		ctx:     context.Background(),
		capture: capture.New(surf),
		diagram: netdiagram.NewDiagram(netdiagram.DefaultTopology()),
		state:   render.Reset(),
	}

	c.scheduler = schedule.New(opts.Clock, cfg.Schedule.Rates(), surf.IsEmpty, c.sendFrame)
	c.capture.OnSessionStart = c.scheduler.SessionStarted
	c.capture.OnSessionEnd = c.scheduler.SessionEnded

	c.runner = animator.NewRunner(opts.Clock, c.diagram)
	c.runner.OnStage = func(run uint64, digit int, stage string) {
		c.logger.Debug("animation stage", "run", run, "digit", digit, "stage", stage)
	}

	h := channel.Handler{
		OnOpen:    c.Connected,
		OnMessage: c.Message,
		OnClose:   c.TransportError,
	}
	if opts.NewTransport != nil {
		c.transport = opts.NewTransport(h)
	} else {
		c.transport = channel.New(opts.Post, logger, h)
	}

	return c, nil
}

// Start opens the connection. The scheduler starts once it is open.
func (c *Client) Start(ctx context.Context) {
	c.ctx = ctx
	c.logger.Info("starting session", "id", c.session, "url", c.cfg.Server.URL)
	c.transport.Open(ctx, c.cfg.Server.URL, c.cfg.Server.Origin)
}

// Stop cancels every timer and closes the connection.
func (c *Client) Stop() {
	c.scheduler.Stop()
	c.runner.Cancel()
	c.transport.Close()
}

func (c *Client) PointerDown(p surface.Point, b capture.Button) {
	c.capture.Down(p, b)
}

func (c *Client) PointerMove(p surface.Point) {
	if err := c.capture.Move(p); err != nil {
		c.logger.Error("failed to draw", "err", err)
	}
}

func (c *Client) PointerUp() { c.capture.Up() }

func (c *Client) PointerOut() { c.capture.Out() }

// Clear wipes the surface and blanks the readouts.
func (c *Client) Clear() {
	c.capture.Clear()
	c.state = render.Clear(c.state)
	c.lastResult = nil
}

func (c *Client) ToggleView() {
	c.state = render.Toggle(c.state)
	c.logger.Debug("view changed", "view", c.state.View)
}

// Reload drops the connection and all session state, then dials again.
func (c *Client) Reload() {
	c.logger.Info("reloading")
	c.capture.Up()
	c.Stop()
	c.capture.Clear()
	c.diagram.Fill(netdiagram.Idle)
	c.state = render.Reset()
	c.history = nil
	c.lastFrame = nil
	c.lastResult = nil
	c.session = uuid.NewString()
	c.Start(c.ctx)
}

// Connected is called once the channel is open.
func (c *Client) Connected() {
	c.scheduler.Start()
	if c.capture.Session().Active {
		c.scheduler.SessionStarted()
	}
}

// Message handles one decoded reply.
func (c *Client) Message(res predict.Result, err error) {
	if err != nil {
		var se *predict.ServerError
		if errors.As(err, &se) {
			c.stats.Server++
			c.logger.Warn("classifier reported an error", "msg", se.Message)
		} else {
			c.stats.Malformed++
			c.logger.Error("malformed reply", "err", err)
		}
		c.state = render.ApplyError(c.state)
		return
	}

	c.stats.Results++
	c.lastResult = &res
	c.record(res.Confidence)

	var tr render.Trigger
	c.state, tr = render.Apply(c.state, res)
	if !tr.Fire {
		return
	}
	if err := c.runner.Animate(tr.Digit); err != nil {
		c.logger.Error("failed to animate", "digit", tr.Digit, "err", err)
		return
	}
	c.stats.Animated++
}

// TransportError is called when the connection fails or closes.
func (c *Client) TransportError(err error) {
	c.stats.Transport++
	c.logger.Error("connection lost", "err", err)
	c.state = render.ApplyError(c.state)
}

// SaveSnapshot stores the current surface with the latest result.
func (c *Client) SaveSnapshot() (string, error) {
	if c.store == nil {
		return "", ErrNoStore
	}
	var buf bytes.Buffer
	if err := c.capture.Surface().EncodePNG(&buf); err != nil {
		return "", err
	}
	id, err := c.store.Save(storage.Entry{
		Session: c.session,
		View:    c.state.View.String(),
		Frame:   buf.Bytes(),
		Result:  c.lastResult,
	})
	if err != nil {
		return "", err
	}
	c.logger.Info("snapshot saved", "id", id)
	return id, nil
}

func (c *Client) sendFrame() {
	if c.transport.State() != channel.Open {
		c.stats.Dropped++
		return
	}
	var buf bytes.Buffer
	if err := c.capture.Surface().EncodePNG(&buf); err != nil {
		c.logger.Error("failed to encode frame", "err", err)
		return
	}
	c.lastFrame = buf.Bytes()
	if err := c.transport.Send(surface.DataURLFromPNG(c.lastFrame)); err != nil {
		c.stats.Dropped++
		c.logger.Debug("frame dropped", "err", err)
	}
}

func (c *Client) record(confidence float64) {
	c.history = append(c.history, confidence)
	if n := c.cfg.History; n > 0 && len(c.history) > n {
		c.history = c.history[len(c.history)-n:]
	}
}

func (c *Client) State() render.State { return c.state }

func (c *Client) Diagram() *netdiagram.Diagram { return c.diagram }

func (c *Client) Surface() *surface.Surface { return c.capture.Surface() }

func (c *Client) Session() string { return c.session }

// History returns recent confidences, oldest first.
func (c *Client) History() []float64 { return c.history }

func (c *Client) LastResult() *predict.Result { return c.lastResult }

// LastFrame returns the PNG most recently sent.
func (c *Client) LastFrame() []byte { return c.lastFrame }

func (c *Client) Stats() Stats { return c.stats }

func (c *Client) SchedulerStats() schedule.Stats { return c.scheduler.Stats() }

func (c *Client) Period() time.Duration { return c.scheduler.Period() }

func (c *Client) ChannelState() channel.State { return c.transport.State() }

// Selection returns the node selection of the latest animation, or nil.
func (c *Client) Selection() animator.Selection {
	if p := c.runner.Current(); p != nil {
		return p.Selection
	}
	return nil
}
