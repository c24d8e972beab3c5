package clock

import "context"

// Loop runs posted functions one at a time on the goroutine that calls Run.
type Loop struct {
	queue chan func()
}

func NewLoop(buffer int) *Loop {
	return &Loop{queue: make(chan func(), buffer)}
}

// Post enqueues f. It blocks when the buffer is full.
func (l *Loop) Post(f func()) {
	l.queue <- f
}

// Run executes posted functions until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case f := <-l.queue:
			f()
		}
	}
}
