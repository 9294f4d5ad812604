// Package input supplies per-tick key intensity snapshots to the controller
// session. Every acquisition mechanism (polled key state, analog keyboard SDK,
// raw event stream) sits behind the Source interface.
package input

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

var (
	// ErrUnsupported is returned when a source has no backend on this
	// platform.
	ErrUnsupported = errors.New("input source not supported on this platform")
	// ErrAnalogInit is returned when the analog SDK fails to start.
	ErrAnalogInit = errors.New("analog source initialisation failed")
)

// Snapshot maps a bound key code to its intensity in [0,1]. Codes that are
// absent are released.
type Snapshot map[uint8]float64

// Source produces one snapshot per poll tick for the requested codes.
type Source interface {
	Snapshot(codes []uint8) (Snapshot, error)
}

// Kind selects an input mechanism.
type Kind int

const (
	DigitalPoll Kind = iota
	AnalogPoll
	RawEventStream
	DetectionTest
)

var kindNames = map[Kind]string{
	DigitalPoll:    "digital",
	AnalogPoll:     "analog",
	RawEventStream: "events",
	DetectionTest:  "detect",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind parses a kind name as printed by String.
func ParseKind(s string) (Kind, error) {
	for k, n := range kindNames {
		if strings.EqualFold(n, s) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown input kind: %s", s)
}

// Idle reports every key as released. It backs DetectionTest, where the
// session ignores input entirely.
type Idle struct{}

func (Idle) Snapshot([]uint8) (Snapshot, error) { return Snapshot{}, nil }

// Options configures New.
type Options struct {
	Kind Kind
	// EvdevPath is the keyboard event device for RawEventStream on Linux.
	EvdevPath string
	Logger    *slog.Logger
}

// New builds the source selected by o.Kind. AnalogPoll sources are returned
// uninitialised; the session starts them lazily. RawEventStream sources own a
// background reader that stops when the returned closer is called.
func New(o Options) (Source, func() error, error) {
	noop := func() error { return nil }
	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}
	switch o.Kind {
	case DigitalPoll:
		f, err := PlatformKeyState()
		if err != nil {
			return nil, nil, err
		}
		return NewKeyPoller(f), noop, nil
	case AnalogPoll:
		sdk, err := PlatformAnalogSDK()
		if err != nil {
			return nil, nil, err
		}
		return NewAnalogPoller(sdk, logger), noop, nil
	case RawEventStream:
		if o.EvdevPath == "" {
			return nil, nil, errors.New("raw event stream requires an event device path")
		}
		r, err := OpenEvdev(o.EvdevPath, logger)
		if err != nil {
			return nil, nil, err
		}
		s := NewEventStream()
		go func() {
			if err := r.Run(s.Push); err != nil {
				logger.Error("event stream reader stopped", "device", o.EvdevPath, "error", err)
			}
		}()
		return s, r.Close, nil
	case DetectionTest:
		return Idle{}, noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown input kind: %d", int(o.Kind))
	}
}
