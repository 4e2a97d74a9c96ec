package unzipper

import "sync/atomic"

// Progress is the completed/total pair of a running batch. It has a single
// writer, the batch goroutine, and can be read from anywhere. The zero value
// reads as 0/0.
type Progress struct {
	completed atomic.Int64
	total     atomic.Int64
}

// Load returns the number of processed archives and the size of the batch.
func (p *Progress) Load() (completed, total int) {
	// completed is read first, total only grows while a batch runs
	completed = int(p.completed.Load())
	total = int(p.total.Load())

	return completed, total
}

func (p *Progress) start(total int) {
	p.completed.Store(0)
	p.total.Store(int64(total))
}

func (p *Progress) advance() int {
	return int(p.completed.Add(1))
}
