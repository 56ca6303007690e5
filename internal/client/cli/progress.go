package cli

import (
	"context"
	"sync"
	"time"
)

const (
	progressInterval = 100 * time.Millisecond
	progressStep     = 10
)

// Progress is the scan progress animation: every interval the bar advances by
// step percent until it reaches 100 or Stop is called.
type Progress struct {
	interval time.Duration
	step     int
	render   func(pct int)

	mu     sync.Mutex
	pct    int
	cancel context.CancelFunc
	done   chan struct{}
}

func NewProgress(interval time.Duration, step int, render func(pct int)) *Progress {
	return &Progress{interval: interval, step: step, render: render}
}

// Start resets the bar to 0 and begins ticking. Calling Start on a running
// bar restarts it.
func (p *Progress) Start() {
	p.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	p.mu.Lock()
	p.pct = 0
	p.cancel = cancel
	p.done = done
	p.mu.Unlock()

	p.render(0)
	go p.run(ctx, done)
}

func (p *Progress) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.mu.Lock()
			p.pct += p.step
			if p.pct > 100 {
				p.pct = 100
			}
			pct := p.pct
			p.mu.Unlock()

			p.render(pct)
			if pct >= 100 {
				return
			}
		}
	}
}

// Stop cancels the animation and waits for its goroutine to exit.
func (p *Progress) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (p *Progress) Percent() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pct
}
