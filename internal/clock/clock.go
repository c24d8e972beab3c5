package clock

import (
	"container/heap"
	"time"
)

// Clock schedules f to run once after d has elapsed.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func())
}

// Real fires callbacks from wall-clock timers. Post must hand the callback to the
// goroutine that owns the application state.
type Real struct {
	Post func(func())
}

func NewReal(post func(func())) *Real {
	return &Real{Post: post}
}

func (r *Real) Now() time.Time { return time.Now() }

func (r *Real) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, func() { r.Post(f) })
}

// Manual is a virtual clock. Callbacks only run inside Advance, on the caller's goroutine.
type Manual struct {
	now    time.Time
	seq    uint64
	events eventHeap
}

func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time { return m.now }

func (m *Manual) AfterFunc(d time.Duration, f func()) {
	if d < 0 {
		d = 0
	}
	m.seq++
	heap.Push(&m.events, &event{at: m.now.Add(d), seq: m.seq, fn: f})
}

// Advance moves virtual time forward by d, running every callback that falls due
// in (due time, scheduling order) order. Callbacks scheduled while advancing run
// too if they fall inside the window.
func (m *Manual) Advance(d time.Duration) {
	target := m.now.Add(d)
	for m.events.Len() > 0 && !m.events[0].at.After(target) {
		ev := heap.Pop(&m.events).(*event)
		m.now = ev.at
		ev.fn()
	}
	m.now = target
}

// Pending reports how many callbacks are still scheduled, including stale ones.
func (m *Manual) Pending() int { return m.events.Len() }

type event struct {
	at  time.Time
	seq uint64
	fn  func()
}

type eventHeap []*event

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].at.Equal(h[j].at) {
		return h[i].seq < h[j].seq
	}
	return h[i].at.Before(h[j].at)
}
func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *eventHeap) Push(x any)   { *h = append(*h, x.(*event)) }
func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	ev := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return ev
}
