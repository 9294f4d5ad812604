// Package driver defines the virtual controller collaborator the session
// drives: a bus connection that can plug in one virtual pad and push stick
// reports to it.
package driver

import "errors"

// ErrNotConnected is returned by drivers used before Connect or after
// Disconnect.
var ErrNotConnected = errors.New("driver not connected")

// Driver connects to the virtual controller bus and manages targets on it.
type Driver interface {
	// Connect opens the bus. It is called once per session.
	Connect() error
	// Disconnect closes the bus. Targets must be removed first.
	Disconnect() error
	// AddTarget plugs in a virtual pad matching p.
	AddTarget(p Profile) (Target, error)
	// RemoveTarget unplugs t. The target must not be used afterwards.
	RemoveTarget(t Target) error
}

// Target is one plugged-in virtual pad.
type Target interface {
	// Update pushes a full stick report to the pad.
	Update(r Report) error
	// Slot returns the bus-assigned player slot, if the bus exposes one.
	Slot() (uint32, bool)
}
