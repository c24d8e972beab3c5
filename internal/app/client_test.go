package app_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/digitlive/internal/app"
	"github.com/san-kum/digitlive/internal/capture"
	"github.com/san-kum/digitlive/internal/channel"
	"github.com/san-kum/digitlive/internal/clock"
	"github.com/san-kum/digitlive/internal/config"
	"github.com/san-kum/digitlive/internal/netdiagram"
	"github.com/san-kum/digitlive/internal/predict"
	"github.com/san-kum/digitlive/internal/render"
	"github.com/san-kum/digitlive/internal/storage"
	"github.com/san-kum/digitlive/internal/surface"
)

type fakeTransport struct {
	handler channel.Handler
	state   channel.State
	opens   int
	closes  int
	sent    []string
}

func (f *fakeTransport) Open(ctx context.Context, url, origin string) {
	f.opens++
	f.state = channel.Connecting
}

func (f *fakeTransport) Send(frame string) error {
	if f.state != channel.Open {
		return channel.ErrNotOpen
	}
	f.sent = append(f.sent, frame)
	return nil
}

func (f *fakeTransport) Close() {
	f.closes++
	f.state = channel.Closed
}

func (f *fakeTransport) State() channel.State { return f.state }

func (f *fakeTransport) accept() {
	f.state = channel.Open
	f.handler.OnOpen()
}

func (f *fakeTransport) fail(err error) {
	f.state = channel.Closed
	f.handler.OnClose(&predict.TransportError{Op: "receive", Err: err})
}

func three() predict.Result {
	return predict.Result{
		Probabilities: [10]float64{.01, .00, .02, .92, .00, .01, .01, .01, .01, .01},
		Prediction:    3,
		Confidence:    0.92,
	}
}

var _ = Describe("Client", func() {
	var (
		clk    *clock.Manual
		fake   *fakeTransport
		cfg    *config.Config
		store  *storage.Store
		client *app.Client
	)

	newClient := func() {
		var err error
		client, err = app.New(app.Options{
			Config: cfg,
			Clock:  clk,
			Post:   func(f func()) { f() },
			Logger: log.New(io.Discard),
			Store:  store,
			NewTransport: func(h channel.Handler) app.Transport {
				fake.handler = h
				return fake
			},
		})
		Expect(err).NotTo(HaveOccurred())
		client.Start(context.Background())
	}

	draw := func() {
		client.PointerDown(surface.Point{X: 60, Y: 60}, capture.Primary)
		client.PointerMove(surface.Point{X: 140, Y: 200})
	}

	BeforeEach(func() {
		clk = clock.NewManual(time.Unix(0, 0))
		fake = &fakeTransport{}
		cfg = config.DefaultConfig()
		store = nil
	})

	AfterEach(func() {
		if client != nil {
			client.Stop()
		}
	})

	Describe("streaming", func() {
		BeforeEach(newClient)

		It("opens the channel on start", func() {
			Expect(fake.opens).To(Equal(1))
			Expect(client.ChannelState()).To(Equal(channel.Connecting))
		})

		It("sends PNG data URLs at the active rate while drawing", func() {
			fake.accept()
			draw()

			clk.Advance(200 * time.Millisecond)
			Expect(fake.sent).To(HaveLen(1))
			Expect(strings.HasPrefix(fake.sent[0], "data:image/png;base64,")).To(BeTrue())

			clk.Advance(200 * time.Millisecond)
			Expect(fake.sent).To(HaveLen(2))
			Expect(client.Period()).To(Equal(200 * time.Millisecond))
			Expect(client.LastFrame()).NotTo(BeEmpty())
		})

		It("keeps the active rate through the cooldown and then idles", func() {
			fake.accept()
			draw()
			client.PointerUp()

			clk.Advance(999 * time.Millisecond)
			Expect(client.Period()).To(Equal(200 * time.Millisecond))

			clk.Advance(time.Millisecond)
			Expect(client.Period()).To(Equal(500 * time.Millisecond))
		})

		It("does not send an empty surface", func() {
			fake.accept()
			clk.Advance(2 * time.Second)

			Expect(fake.sent).To(BeEmpty())
			Expect(client.SchedulerStats().Skipped).To(Equal(uint64(4)))
		})

		It("drops frames until the channel is open", func() {
			draw()
			clk.Advance(400 * time.Millisecond)

			Expect(fake.sent).To(BeEmpty())
			Expect(client.Stats().Dropped).To(Equal(uint64(2)))

			fake.accept()
			clk.Advance(200 * time.Millisecond)
			Expect(fake.sent).To(HaveLen(1))
		})

		It("keeps ticking after the connection fails", func() {
			fake.accept()
			draw()
			fake.fail(io.EOF)

			Expect(client.State().Display.Prediction).To(Equal(render.ErrorText))
			Expect(client.Stats().Transport).To(Equal(uint64(1)))

			clk.Advance(200 * time.Millisecond)
			Expect(client.SchedulerStats().Ticks).To(Equal(uint64(1)))
			Expect(client.Stats().Dropped).To(Equal(uint64(1)))
		})
	})

	Describe("results", func() {
		BeforeEach(func() {
			newClient()
			fake.accept()
		})

		It("renders the ranked list without animating in list mode", func() {
			client.Message(three(), nil)

			st := client.State()
			Expect(st.Display.Prediction).To(Equal("3"))
			Expect(st.Display.Confidence).To(Equal("92.0%"))
			Expect(st.Display.Rows[0].Digit).To(Equal(3))
			Expect(st.LastAnimated).To(Equal(render.NoDigit))
			Expect(client.Stats().Animated).To(BeZero())
			Expect(client.History()).To(Equal([]float64{0.92}))
		})

		It("animates once per new digit in diagram mode", func() {
			client.ToggleView()
			client.Message(three(), nil)

			Expect(client.Stats().Animated).To(Equal(uint64(1)))
			Expect(client.State().LastAnimated).To(Equal(3))

			clk.Advance(900 * time.Millisecond)
			v, _ := client.Diagram().Node(netdiagram.OutputLayer, 3)
			Expect(v).To(Equal(netdiagram.Output))

			client.Message(three(), nil)
			Expect(client.Stats().Animated).To(Equal(uint64(1)))
			Expect(client.Selection()).To(HaveLen(4))
		})

		It("shows the error state for a malformed reply and keeps the last digit", func() {
			client.ToggleView()
			client.Message(three(), nil)

			_, err := predict.Decode([]byte("not json"))
			client.Message(predict.Result{}, err)

			st := client.State()
			Expect(st.Display.Prediction).To(Equal(render.ErrorText))
			Expect(st.Display.Confidence).To(Equal(render.ErrorText))
			Expect(st.Display.Err).To(Equal(render.ErrorText))
			Expect(st.LastAnimated).To(Equal(3))
			Expect(client.Stats().Malformed).To(Equal(uint64(1)))
		})

		It("counts server errors separately", func() {
			_, err := predict.Decode([]byte(`{"error":"model not loaded"}`))
			client.Message(predict.Result{}, err)

			Expect(client.State().Display.Prediction).To(Equal(render.ErrorText))
			Expect(client.Stats().Server).To(Equal(uint64(1)))
			Expect(client.Stats().Malformed).To(BeZero())
		})

		It("lets a valid reply replace the error state", func() {
			client.Message(predict.Result{}, errors.New("boom"))
			client.Message(three(), nil)
			Expect(client.State().Display.Prediction).To(Equal("3"))
		})

		It("blanks the readouts on clear", func() {
			draw()
			client.Message(three(), nil)
			client.Clear()

			Expect(client.Surface().IsEmpty()).To(BeTrue())
			Expect(client.State().Display.Prediction).To(Equal("-"))
			Expect(client.LastResult()).To(BeNil())
		})
	})

	Describe("history", func() {
		BeforeEach(func() {
			cfg.History = 3
			newClient()
		})

		It("keeps only the most recent confidences", func() {
			for i := 1; i <= 5; i++ {
				res := three()
				res.Confidence = float64(i) / 10
				client.Message(res, nil)
			}
			Expect(client.History()).To(Equal([]float64{0.3, 0.4, 0.5}))
		})
	})

	Describe("reload", func() {
		BeforeEach(newClient)

		It("resets the session and dials again", func() {
			fake.accept()
			draw()
			client.ToggleView()
			client.Message(three(), nil)
			before := client.Session()

			client.Reload()

			Expect(fake.closes).To(BeNumerically(">=", 1))
			Expect(fake.opens).To(Equal(2))
			Expect(client.Surface().IsEmpty()).To(BeTrue())
			Expect(client.State()).To(Equal(render.Reset()))
			Expect(client.History()).To(BeEmpty())
			Expect(client.Session()).NotTo(Equal(before))

			v, _ := client.Diagram().Node(0, 0)
			Expect(v).To(Equal(netdiagram.Idle))

			clk.Advance(2 * time.Second)
			Expect(client.Period()).To(BeZero())
		})
	})

	Describe("snapshots", func() {
		It("refuses to save without a store", func() {
			newClient()
			_, err := client.SaveSnapshot()
			Expect(err).To(MatchError(app.ErrNoStore))
		})

		It("saves the surface with the latest result", func() {
			store = storage.New(GinkgoT().TempDir())
			newClient()
			draw()
			client.Message(three(), nil)

			id, err := client.SaveSnapshot()
			Expect(err).NotTo(HaveOccurred())

			meta, err := store.Load(id)
			Expect(err).NotTo(HaveOccurred())
			Expect(meta.Prediction).To(Equal(3))
			Expect(meta.Session).To(Equal(client.Session()))

			probs, err := store.LoadProbabilities(id)
			Expect(err).NotTo(HaveOccurred())
			Expect(probs).To(Equal(three().Probabilities))
		})
	})
})
