package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/dmove/dmove/config"
	"github.com/dmove/dmove/input"
)

// DefaultInterval is the poll tick of a Runner.
const DefaultInterval = time.Millisecond

// Runner polls one Session from a dedicated goroutine. It is the only entry
// point hosts use to drive a session.
type Runner struct {
	session  *Session
	interval time.Duration
	logger   *slog.Logger

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// NewRunner returns a stopped runner for s. A zero interval selects
// DefaultInterval.
func NewRunner(s *Session, interval time.Duration, logger *slog.Logger) *Runner {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{session: s, interval: interval, logger: logger.With("component", "runner")}
}

// Start initialises the session with cfg and starts polling. Starting a
// running runner logs and succeeds without touching the session.
func (r *Runner) Start(cfg config.Configuration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done != nil {
		r.logger.Info("service already running")
		return nil
	}
	if err := r.session.Init(cfg); err != nil {
		return err
	}
	r.stop = make(chan struct{})
	r.done = make(chan struct{})
	go r.loop(r.stop, r.done)
	r.logger.Info("service started", "interval", r.interval)
	return nil
}

func (r *Runner) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			// Failures are logged by the session and the next tick retries.
			_ = r.session.Poll()
		}
	}
}

// Stop signals the loop, waits for the in-flight tick and tears the session
// down. It is safe to call when not running.
func (r *Runner) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done != nil {
		close(r.stop)
		<-r.done
		r.stop, r.done = nil, nil
		r.logger.Info("service stopped")
	}
	return r.session.Stop()
}

// Running reports whether the poll loop is active.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done != nil
}

func (r *Runner) Session() *Session { return r.session }

func (r *Runner) SetConfig(cfg config.Configuration) error { return r.session.SetConfig(cfg) }

func (r *Runner) Config() config.Configuration { return r.session.Config() }

func (r *Runner) SetDetectionMode(enabled bool) { r.session.SetDetectionMode(enabled) }

func (r *Runner) Detecting() bool { return r.session.Detecting() }

func (r *Runner) Slot() (uint32, bool) { return r.session.Slot() }

func (r *Runner) SourceState() input.SDKState { return r.session.SourceState() }

func (r *Runner) State() State { return r.session.State() }
