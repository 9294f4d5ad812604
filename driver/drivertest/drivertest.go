// Package drivertest provides a recording in-memory driver for tests.
package drivertest

import (
	"errors"
	"sync"

	"github.com/dmove/dmove/driver"
)

// Driver records every call made to it. The error fields are returned by the
// matching operation when set.
type Driver struct {
	mu sync.Mutex

	ConnectErr   error
	AddTargetErr error
	UpdateErr    error
	// PanicOnConnect makes Connect panic with its value when non-nil.
	PanicOnConnect any
	// PanicOnAddTarget makes AddTarget panic with its value when non-nil.
	PanicOnAddTarget any
	// NoSlot makes targets report no slot.
	NoSlot bool

	connected   bool
	connects    int
	disconnects int
	targets     []*Target
	removed     int
}

func New() *Driver { return &Driver{} }

func (d *Driver) Connect() error {
	if d.PanicOnConnect != nil {
		panic(d.PanicOnConnect)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.connects++
	if d.ConnectErr != nil {
		return d.ConnectErr
	}
	d.connected = true
	return nil
}

func (d *Driver) Disconnect() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.disconnects++
	d.connected = false
	return nil
}

func (d *Driver) AddTarget(p driver.Profile) (driver.Target, error) {
	if d.PanicOnAddTarget != nil {
		panic(d.PanicOnAddTarget)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.connected {
		return nil, driver.ErrNotConnected
	}
	if d.AddTargetErr != nil {
		return nil, d.AddTargetErr
	}
	t := &Target{d: d, Profile: p, slot: uint32(len(d.targets))}
	d.targets = append(d.targets, t)
	return t, nil
}

func (d *Driver) RemoveTarget(t driver.Target) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	ft, ok := t.(*Target)
	if !ok {
		return errors.New("foreign target")
	}
	ft.removed = true
	d.removed++
	return nil
}

// Connected reports whether the bus is open.
func (d *Driver) Connected() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.connected
}

// Calls returns the number of Connect, Disconnect and RemoveTarget calls.
func (d *Driver) Calls() (connects, disconnects, removed int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.connects, d.disconnects, d.removed
}

// Targets returns every target added so far.
func (d *Driver) Targets() []*Target {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*Target(nil), d.targets...)
}

// Last returns the most recently added target, or nil.
func (d *Driver) Last() *Target {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.targets) == 0 {
		return nil
	}
	return d.targets[len(d.targets)-1]
}

// Target records the reports written to it.
type Target struct {
	d       *Driver
	Profile driver.Profile
	slot    uint32
	reports []driver.Report
	removed bool
}

func (t *Target) Update(r driver.Report) error {
	t.d.mu.Lock()
	defer t.d.mu.Unlock()
	if t.removed {
		return errors.New("target removed")
	}
	if t.d.UpdateErr != nil {
		return t.d.UpdateErr
	}
	t.reports = append(t.reports, r)
	return nil
}

func (t *Target) Slot() (uint32, bool) {
	t.d.mu.Lock()
	defer t.d.mu.Unlock()
	return t.slot, !t.d.NoSlot
}

// Reports returns a copy of the written reports.
func (t *Target) Reports() []driver.Report {
	t.d.mu.Lock()
	defer t.d.mu.Unlock()
	return append([]driver.Report(nil), t.reports...)
}

// Removed reports whether RemoveTarget was called for t.
func (t *Target) Removed() bool {
	t.d.mu.Lock()
	defer t.d.mu.Unlock()
	return t.removed
}
