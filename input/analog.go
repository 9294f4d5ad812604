package input

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

// SDKState is the observable state of the analog source.
type SDKState int

const (
	SDKUninitialized SDKState = iota
	SDKError
	SDKNoDevices
	SDKDevicesConnected
)

func (s SDKState) String() string {
	switch s {
	case SDKError:
		return "Error"
	case SDKNoDevices:
		return "NoDevices"
	case SDKDevicesConnected:
		return "DevicesConnected"
	default:
		return "Uninitialized"
	}
}

// MarshalJSON encodes the state as {"type": "<name>"}.
func (s SDKState) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
	}{Type: s.String()})
}

// AnalogSDK is an analog keyboard backend.
type AnalogSDK interface {
	// Initialise starts the SDK and returns the number of connected devices.
	Initialise() (int, error)
	// ReadFull returns the depth of every key that is currently not at rest.
	ReadFull() (map[uint8]float64, error)
	Uninitialise() error
}

// ErrNoDevices may be returned by AnalogSDK.ReadFull when every analog
// keyboard has been unplugged.
var ErrNoDevices = fmt.Errorf("no analog devices connected")

// AnalogPoller is an analog source backed by an AnalogSDK. It must be
// initialised before use.
type AnalogPoller struct {
	sdk    AnalogSDK
	logger *slog.Logger
	state  SDKState
}

// NewAnalogPoller wraps sdk. The SDK is not started until Init.
func NewAnalogPoller(sdk AnalogSDK, logger *slog.Logger) *AnalogPoller {
	return &AnalogPoller{sdk: sdk, logger: logger}
}

// Init starts the SDK. It is a no-op once the SDK reports devices or no
// devices. On failure the state becomes SDKError and ErrAnalogInit is
// returned.
func (p *AnalogPoller) Init() error {
	if p.state == SDKNoDevices || p.state == SDKDevicesConnected {
		return nil
	}
	n, err := p.sdk.Initialise()
	if err != nil {
		p.state = SDKError
		return fmt.Errorf("%w: %w", ErrAnalogInit, err)
	}
	p.setDevices(n)
	p.logger.Info("analog SDK initialised", "devices", n)
	return nil
}

func (p *AnalogPoller) setDevices(n int) {
	if n > 0 {
		p.state = SDKDevicesConnected
	} else {
		p.state = SDKNoDevices
	}
}

// Close stops the SDK if it was started.
func (p *AnalogPoller) Close() error {
	if p.state == SDKUninitialized || p.state == SDKError {
		p.state = SDKUninitialized
		return nil
	}
	p.state = SDKUninitialized
	return p.sdk.Uninitialise()
}

// State returns the current SDK state.
func (p *AnalogPoller) State() SDKState {
	return p.state
}

// Ready reports whether snapshots come from the SDK.
func (p *AnalogPoller) Ready() bool {
	return p.state == SDKNoDevices || p.state == SDKDevicesConnected
}

func (p *AnalogPoller) Snapshot(codes []uint8) (Snapshot, error) {
	if !p.Ready() {
		return nil, fmt.Errorf("analog source is %s", p.state)
	}
	depths, err := p.sdk.ReadFull()
	if err == ErrNoDevices {
		p.state = SDKNoDevices
		return Snapshot{}, nil
	}
	if err != nil {
		return nil, err
	}
	p.state = SDKDevicesConnected
	out := make(Snapshot, len(codes))
	for _, c := range codes {
		if v, ok := depths[c]; ok {
			out[c] = v
		}
	}
	return out, nil
}
