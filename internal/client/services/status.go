package services

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/surlink/internal/client/client"
	"github.com/dmitrijs2005/surlink/internal/logging"
)

// Status is the combined health of the classifier and the explainer.
type Status struct {
	Checked   bool
	Online    bool
	Explainer bool
}

func (s Status) String() string {
	switch {
	case !s.Checked:
		return "Checking..."
	case !s.Online:
		return "Offline"
	case s.Explainer:
		return "Online (Explainer: Available)"
	default:
		return "Online (Explainer: Unavailable)"
	}
}

// StatusPoller probes both services and publishes status changes.
type StatusPoller struct {
	client       client.ScannerClient
	log          logging.Logger
	probeTimeout time.Duration

	mu       sync.Mutex
	status   Status
	onChange func(Status)
}

func NewStatusPoller(c client.ScannerClient, log logging.Logger, probeTimeout time.Duration) *StatusPoller {
	return &StatusPoller{client: c, log: log, probeTimeout: probeTimeout}
}

// OnChange registers fn to be called, from the probing goroutine, whenever the
// status changes.
func (p *StatusPoller) OnChange(fn func(Status)) {
	p.mu.Lock()
	p.onChange = fn
	p.mu.Unlock()
}

func (p *StatusPoller) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// Check probes both services concurrently and returns the new status.
// The explainer result never makes the system offline.
func (p *StatusPoller) Check(ctx context.Context) Status {
	var classifierErr, explainerErr error

	var g errgroup.Group
	g.Go(func() error {
		classifierErr = p.probe(ctx, p.client.ClassifierHealth)
		return nil
	})
	g.Go(func() error {
		explainerErr = p.probe(ctx, p.client.ExplainerHealth)
		return nil
	})
	_ = g.Wait()

	st := Status{
		Checked:   true,
		Online:    classifierErr == nil,
		Explainer: explainerErr == nil,
	}
	p.set(ctx, st, classifierErr)
	return st
}

func (p *StatusPoller) probe(ctx context.Context, fn func(context.Context) error) error {
	if p.probeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.probeTimeout)
		defer cancel()
	}
	return fn(ctx)
}

func (p *StatusPoller) set(ctx context.Context, st Status, cause error) {
	p.mu.Lock()
	changed := p.status != st
	p.status = st
	fn := p.onChange
	p.mu.Unlock()

	if !changed {
		return
	}
	if cause != nil {
		p.log.Warn(ctx, "status changed", "status", st.String(), "error", cause)
	} else {
		p.log.Info(ctx, "status changed", "status", st.String())
	}
	if fn != nil {
		fn(st)
	}
}

// DefaultStatusInterval is used by Run when given a non-positive interval.
const DefaultStatusInterval = 30 * time.Second

// Run checks once immediately and then on every tick until ctx is done.
func (p *StatusPoller) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		p.log.Warn(ctx, "invalid status interval, using default", "interval", interval, "default", DefaultStatusInterval)
		interval = DefaultStatusInterval
	}

	p.Check(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.Check(ctx)
		}
	}
}
