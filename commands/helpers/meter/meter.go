package meter

import (
	"sync"
	"time"
)

const DefaultFrequency = 100 * time.Millisecond

// Counter reports how many of the total items are done. It's read
// concurrently with whoever is doing the work, so implementations must be
// safe for that.
type Counter interface {
	Load() (completed, total int)
}

type UpdateCallback func(completed, total int, since time.Duration, done bool)

type meter struct {
	counter Counter

	done, notify chan struct{}
	close        sync.Once
}

func newMeter(counter Counter) *meter {
	return &meter{
		counter: counter,
		done:    make(chan struct{}),
		notify:  make(chan struct{}),
	}
}

func (m *meter) start(frequency time.Duration, fn UpdateCallback) {
	if frequency <= 0 {
		frequency = DefaultFrequency
	}

	started := time.Now()

	go func() {
		defer close(m.done)

		ticker := time.NewTicker(frequency)
		defer ticker.Stop()

		for {
			completed, total := m.counter.Load()
			fn(completed, total, time.Since(started), false)

			select {
			case <-ticker.C:
			case <-m.notify:
				completed, total = m.counter.Load()
				fn(completed, total, time.Since(started), true)
				return
			}
		}
	}()
}

func (m *meter) doClose() {
	m.close.Do(func() {
		// notify we're done
		close(m.notify)
		// wait for close
		<-m.done
	})
}

// Progress polls a Counter on its own goroutine until it's closed.
type Progress struct {
	*meter
}

// NewProgress starts polling c every frequency. fn is called from the
// polling goroutine only, so it never runs concurrently with itself.
func NewProgress(c Counter, frequency time.Duration, fn UpdateCallback) *Progress {
	p := &Progress{meter: newMeter(c)}
	p.start(frequency, fn)

	return p
}

// Close stops polling after a final update with done set. It's safe to call
// more than once.
func (p *Progress) Close() {
	p.doClose()
}
