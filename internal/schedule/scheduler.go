package schedule

import (
	"time"

	"github.com/san-kum/digitlive/internal/clock"
)

const (
	DefaultActivePeriod = 200 * time.Millisecond
	DefaultIdlePeriod   = 500 * time.Millisecond
	DefaultCooldown     = 1000 * time.Millisecond
)

// Rates holds the two tick periods and the cooldown window.
type Rates struct {
	Active   time.Duration
	Idle     time.Duration
	Cooldown time.Duration
}

func DefaultRates() Rates {
	return Rates{Active: DefaultActivePeriod, Idle: DefaultIdlePeriod, Cooldown: DefaultCooldown}
}

// Stats counts what the scheduler did with its ticks.
type Stats struct {
	Ticks   uint64
	Skipped uint64
	Sent    uint64
}

// Scheduler owns the recurring capture timer.
type Scheduler struct {
	clock   clock.Clock
	rates   Rates
	isEmpty func() bool
	send    func()

	period   time.Duration
	running  bool
	timerGen uint64
	coolGen  uint64
	stats    Stats
}

// New creates a stopped scheduler. isEmpty gates each tick and send is the
// capture-and-send step invoked for non-empty surfaces.
func New(c clock.Clock, rates Rates, isEmpty func() bool, send func()) *Scheduler {
	if rates.Active <= 0 {
		rates.Active = DefaultActivePeriod
	}
	if rates.Idle <= 0 {
		rates.Idle = DefaultIdlePeriod
	}
	if rates.Cooldown < 0 {
		rates.Cooldown = 0
	}
	return &Scheduler{clock: c, rates: rates, isEmpty: isEmpty, send: send}
}

// Start arms the timer at the idle period. It is called once the channel opens.
func (s *Scheduler) Start() {
	s.arm(s.rates.Idle)
}

// SessionStarted switches to the active period right away and drops any pending
// cooldown.
func (s *Scheduler) SessionStarted() {
	s.coolGen++
	s.arm(s.rates.Active)
}

// SessionEnded keeps the current period and falls back to idle once the cooldown
// elapses without a new session.
func (s *Scheduler) SessionEnded() {
	s.coolGen++
	gen := s.coolGen
	s.clock.AfterFunc(s.rates.Cooldown, func() {
		if gen != s.coolGen {
			return
		}
		s.arm(s.rates.Idle)
	})
}

// Stop cancels the timer and any pending cooldown.
func (s *Scheduler) Stop() {
	s.timerGen++
	s.coolGen++
	s.running = false
	s.period = 0
}

// Period returns the current tick period, or zero when stopped.
func (s *Scheduler) Period() time.Duration { return s.period }

func (s *Scheduler) Running() bool { return s.running }

func (s *Scheduler) Stats() Stats { return s.stats }

func (s *Scheduler) arm(period time.Duration) {
	s.timerGen++
	s.period = period
	s.running = true
	s.schedule(s.timerGen)
}

func (s *Scheduler) schedule(gen uint64) {
	s.clock.AfterFunc(s.period, func() {
		if gen != s.timerGen {
			return
		}
		s.tick()
		s.schedule(gen)
	})
}

func (s *Scheduler) tick() {
	s.stats.Ticks++
	if s.isEmpty() {
		s.stats.Skipped++
		return
	}
	s.stats.Sent++
	s.send()
}
