package batch

import (
	"sync"
	"time"
)

// percentMultiplier converts a ratio to a percentage (0-100).
const percentMultiplier = 100

// Progress tracks how many scenarios of a batch have been evaluated.
// All methods are safe for concurrent use.
type Progress struct {
	total     int
	processed int
	failed    int
	started   time.Time
	updated   time.Time

	mu sync.RWMutex
}

// NewProgress creates a tracker for total scenarios, starting the clock now.
func NewProgress(total int) *Progress {
	now := time.Now()
	return &Progress{total: total, started: now, updated: now}
}

// AddProcessed records one evaluated scenario. failed marks a scenario whose
// inputs were rejected.
func (p *Progress) AddProcessed(failed bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.processed++
	if failed {
		p.failed++
	}
	p.updated = time.Now()
}

// Snapshot returns a copy of the current state.
func (p *Progress) Snapshot() ProgressSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return ProgressSnapshot{
		Total:           p.total,
		Processed:       p.processed,
		Failed:          p.failed,
		StartTime:       p.started,
		LastUpdateTime:  p.updated,
		PercentComplete: p.percentCompleteLocked(),
		ElapsedTime:     time.Since(p.started),
	}
}

// ProgressSnapshot is an immutable view of a Progress.
type ProgressSnapshot struct {
	Total           int
	Processed       int
	Failed          int
	StartTime       time.Time
	LastUpdateTime  time.Time
	PercentComplete float64
	ElapsedTime     time.Duration
}

// Complete reports whether every scenario had been evaluated when the
// snapshot was taken.
func (s ProgressSnapshot) Complete() bool {
	return s.Processed >= s.Total
}

// percentCompleteLocked must be called with p.mu held.
func (p *Progress) percentCompleteLocked() float64 {
	if p.total == 0 {
		return 0
	}
	return float64(p.processed) / float64(p.total) * percentMultiplier
}
