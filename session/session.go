// Package session turns key state into virtual controller reports. A Session
// owns the driver target, the directional state of the left stick and the
// active configuration; a Runner ticks it from a single worker goroutine.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dmove/dmove/config"
	"github.com/dmove/dmove/driver"
	"github.com/dmove/dmove/input"
	"github.com/dmove/dmove/internal/log"
	"github.com/dmove/dmove/stick"
)

var (
	ErrDriverConnection   = errors.New("failed to connect to the virtual controller driver")
	ErrTargetRegistration = errors.New("failed to add virtual controller target")
	ErrReportWrite        = errors.New("failed to write controller report")
)

const driverHint = "please ensure the virtual controller driver is installed and running"

// DetectionVector is written every tick in detection mode so the virtual pad
// can be picked out in a game's controller list.
var DetectionVector = stick.Vector{X: 0, Y: 0.2}

// State is the connection state of a Session.
type State int

const (
	Uninitialized State = iota
	Connecting
	Connected
	Stopping
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "Connecting"
	case Connected:
		return "Connected"
	case Stopping:
		return "Stopping"
	default:
		return "Uninitialized"
	}
}

// AnalogSource is an input source that must be started before use.
type AnalogSource interface {
	input.Source
	Init() error
	Close() error
	State() input.SDKState
}

// Sample is one written report.
type Sample struct {
	Vector  stick.Vector
	Report  driver.Report
	Profile driver.Profile
}

// Observer is notified of every written report. Observe runs on the polling
// goroutine with the session lock held and must not block.
type Observer interface {
	Observe(Sample)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Sample)

func (f ObserverFunc) Observe(s Sample) { f(s) }

// Options wires a Session to its collaborators. Analog and Observer are
// optional.
type Options struct {
	Driver   driver.Driver
	Digital  input.Source
	Analog   AnalogSource
	Observer Observer
	Logger   *slog.Logger
}

// Session is the controller state machine. Every exported method takes the
// session lock for its whole duration.
type Session struct {
	mu sync.Mutex

	drv      driver.Driver
	digital  input.Source
	analog   AnalogSource
	observer Observer
	logger   *slog.Logger

	store   *config.Store
	left    *stick.DirectionalState
	profile driver.Profile
	target  driver.Target
	state   State

	analogOn    bool
	analogState input.SDKState
	detect      bool
	dirty       bool
	// readErr is the last logged input error, so a failing source is
	// reported once rather than every tick.
	readErr string
}

// New returns an Uninitialized session.
func New(o Options) *Session {
	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}
	digital := o.Digital
	if digital == nil {
		digital = input.Idle{}
	}
	return &Session{
		drv:      o.Driver,
		digital:  digital,
		analog:   o.Analog,
		observer: o.Observer,
		logger:   logger.With("component", "session"),
		store:    config.NewStore(config.Default()),
		left:     stick.NewDirectionalState(),
	}
}

// Init connects to the driver and plugs in a pad for cfg's profile. It does
// nothing unless the session is Uninitialized. Panics raised by the driver
// are returned as errors, and a driver that was already connected is
// disconnected again.
func (s *Session) Init(cfg config.Configuration) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	connected := false
	defer func() {
		if r := recover(); r != nil {
			s.state = Uninitialized
			s.target = nil
			err = fmt.Errorf("session init panicked: %v", r)
			s.logger.Error("init panicked", "panic", r)
			if connected {
				s.disconnectAfterPanic()
			}
		}
	}()

	if s.state != Uninitialized {
		return nil
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.state = Connecting
	s.store.Swap(cfg)
	s.profile = cfg.ControllerProfile()

	if err := s.drv.Connect(); err != nil {
		s.state = Uninitialized
		return fmt.Errorf("%w: %w (%s)", ErrDriverConnection, err, driverHint)
	}
	connected = true
	t, err := s.drv.AddTarget(s.profile)
	if err != nil {
		if derr := s.drv.Disconnect(); derr != nil {
			s.logger.Warn("disconnect after failed target registration", "error", derr)
		}
		s.state = Uninitialized
		return fmt.Errorf("%w: %w", ErrTargetRegistration, err)
	}
	s.target = t
	s.state = Connected
	s.left.Reset()
	s.readErr = ""
	s.setAnalog(cfg.UseAnalogInput)
	s.logger.Info("session connected", "profile", s.profile.String(), "analog", s.analogOn)

	_ = s.write(cfg)
	return nil
}

// Poll runs one tick. In detection mode it writes DetectionVector. Otherwise
// it reads the active source and writes when a direction changed or a
// previous config change has not been written yet.
func (s *Session) Poll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Connected {
		return nil
	}
	cfg := s.store.Load()
	if s.detect {
		return s.write(cfg)
	}
	bindings := cfg.Bindings()
	snap, err := s.source().Snapshot(bindings.Codes())
	if err != nil {
		if msg := err.Error(); msg != s.readErr {
			s.readErr = msg
			s.logger.Warn("input read failed", "error", err)
		}
		return fmt.Errorf("read input: %w", err)
	}
	if s.readErr != "" {
		s.readErr = ""
		s.logger.Info("input read recovered")
	}
	if !s.left.Update(snap, bindings) && !s.dirty {
		return nil
	}
	return s.write(cfg)
}

// SetConfig validates and installs cfg, starts or stops the analog source when
// its flag changed and rewrites the report. An invalid cfg leaves the session
// unchanged. The controller profile only changes on the next Init.
func (s *Session) SetConfig(cfg config.Configuration) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Swap(cfg)
	s.dirty = true
	if s.state != Connected {
		return nil
	}
	if p := cfg.ControllerProfile(); p != s.profile {
		s.logger.Warn("controller profile change takes effect after restart", "active", s.profile.Name, "requested", p.Name)
	}
	s.setAnalog(cfg.UseAnalogInput)
	return s.write(cfg)
}

// Stop removes the pad, disconnects the driver and stops the analog source.
// Calling it again is a no-op.
func (s *Session) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Uninitialized {
		return nil
	}
	s.state = Stopping
	var errs []error
	if s.target != nil {
		if err := s.drv.RemoveTarget(s.target); err != nil {
			errs = append(errs, fmt.Errorf("remove target: %w", err))
		}
		s.target = nil
	}
	if err := s.drv.Disconnect(); err != nil {
		errs = append(errs, fmt.Errorf("disconnect: %w", err))
	}
	s.setAnalog(false)
	s.state = Uninitialized
	s.logger.Info("session stopped")
	return errors.Join(errs...)
}

// SetDetectionMode toggles detection mode. Leaving it rewrites the report
// from the current key state on the next tick.
func (s *Session) SetDetectionMode(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detect == enabled {
		return
	}
	s.detect = enabled
	s.dirty = true
	s.logger.Info("detection mode", "enabled", enabled)
}

// Detecting reports whether detection mode is on.
func (s *Session) Detecting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detect
}

// Slot returns the driver-assigned slot of the pad while Connected.
func (s *Session) Slot() (uint32, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Connected || s.target == nil {
		return 0, false
	}
	return s.target.Slot()
}

// SourceState reports the analog source state.
func (s *Session) SourceState() input.SDKState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.analog == nil {
		return s.analogState
	}
	return s.analog.State()
}

// State returns the connection state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Config returns the active configuration.
func (s *Session) Config() config.Configuration {
	return s.store.Load()
}

// Profile returns the profile of the connected pad.
func (s *Session) Profile() driver.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// disconnectAfterPanic releases the driver after Init panicked past Connect.
func (s *Session) disconnectAfterPanic() {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("disconnect after init panic panicked", "panic", r)
		}
	}()
	if err := s.drv.Disconnect(); err != nil {
		s.logger.Warn("disconnect after init panic", "error", err)
	}
}

func (s *Session) source() input.Source {
	if s.analogOn {
		return s.analog
	}
	return s.digital
}

// setAnalog starts or stops the analog source. A failed start leaves the
// session on the digital source.
func (s *Session) setAnalog(enabled bool) {
	switch {
	case enabled && !s.analogOn:
		if s.analog == nil {
			s.analogState = input.SDKError
			s.logger.Warn("analog input requested but no analog source is available, using digital input")
			return
		}
		if err := s.analog.Init(); err != nil {
			s.logger.Error("analog source failed, using digital input", "error", err)
			return
		}
		s.analogOn = true
		s.left.Reset()
	case !enabled && s.analogOn:
		if err := s.analog.Close(); err != nil {
			s.logger.Warn("close analog source", "error", err)
		}
		s.analogOn = false
		s.left.Reset()
	}
}

func (s *Session) write(cfg config.Configuration) error {
	v := DetectionVector
	if !s.detect {
		rng := stick.FullRange
		if s.analogOn {
			rng = cfg.ActivationRange()
		}
		v = s.left.Vector(rng, cfg.Shaping())
	}
	r := s.profile.Encode(v)
	if err := s.target.Update(r); err != nil {
		s.dirty = true
		s.logger.Warn("report write failed", "error", err)
		return fmt.Errorf("%w: %w", ErrReportWrite, err)
	}
	s.dirty = false
	s.logger.Log(context.Background(), log.LevelTrace, "report written",
		"x", v.X, "y", v.Y, "lx", r.LeftX, "ly", r.LeftY)
	if s.observer != nil {
		s.observer.Observe(Sample{Vector: v, Report: r, Profile: s.profile})
	}
	return nil
}
