package telemetry

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/juan-moncayo/paycon-go/internal/rest"
)

// Fetcher retrieves the reading history for a device. *Client satisfies it.
type Fetcher interface {
	List(ctx context.Context, cred rest.Credential, deviceID int) ([]Reading, error)
}

// Logger defines the logging interface used by the Poller.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Warn(string, ...any)  {}

// SnapshotFunc receives each fetched reading history, newest first.
type SnapshotFunc func(readings []Reading)

// Poller re-fetches a device's reading history on a fixed interval.
//
// Each cycle runs under its own cancellable context. When the interval
// elapses before the previous fetch has returned, that fetch is cancelled
// and awaited before the next one starts, so at most one request is in
// flight and snapshots are delivered in cycle order.
type Poller struct {
	fetch    Fetcher
	cred     rest.Credential
	deviceID int
	interval time.Duration
	snapshot SnapshotFunc

	running atomic.Bool
	logger  Logger
}

// NewPoller creates a poller delivering each fetched history to snapshot.
func NewPoller(fetch Fetcher, cred rest.Credential, deviceID int, interval time.Duration, snapshot SnapshotFunc) (*Poller, error) {
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}
	if snapshot == nil {
		return nil, ErrNilCallback
	}
	return &Poller{
		fetch:    fetch,
		cred:     cred,
		deviceID: deviceID,
		interval: interval,
		snapshot: snapshot,
		logger:   noopLogger{},
	}, nil
}

// SetLogger sets the logger for the poller.
func (p *Poller) SetLogger(logger Logger) {
	if logger != nil {
		p.logger = logger
	}
}

// Run polls until ctx is cancelled. The first fetch happens immediately,
// subsequent ones on each interval tick. It returns ctx.Err() on shutdown
// or ErrPollerRunning if the poller is already active.
func (p *Poller) Run(ctx context.Context) error {
	if !p.running.CompareAndSwap(false, true) {
		return ErrPollerRunning
	}
	defer p.running.Store(false)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	var (
		cancelCycle context.CancelFunc
		wg          sync.WaitGroup
	)

	startCycle := func() {
		if cancelCycle != nil {
			cancelCycle()
			wg.Wait()
		}
		cycleCtx, cancel := context.WithCancel(ctx)
		cancelCycle = cancel
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.fetchOnce(cycleCtx)
		}()
	}

	startCycle()

	for {
		select {
		case <-ctx.Done():
			cancelCycle()
			wg.Wait()
			return ctx.Err()
		case <-ticker.C:
			startCycle()
		}
	}
}

// fetchOnce performs a single fetch cycle and delivers the snapshot.
func (p *Poller) fetchOnce(ctx context.Context) {
	readings, err := p.fetch.List(ctx, p.cred, p.deviceID)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			p.logger.Debug("poll cycle superseded", "device", p.deviceID)
			return
		}
		p.logger.Warn("poll cycle failed", "device", p.deviceID, "error", err)
		return
	}
	p.snapshot(readings)
}
