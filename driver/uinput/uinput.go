// Package uinput drives a Linux uinput virtual gamepad.
package uinput

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/dmove/dmove/driver"
)

// ErrUnsupported is returned by New on platforms without uinput.
var ErrUnsupported = errors.New("uinput is only available on linux")

// Config selects the uinput device node.
type Config struct {
	Device string `help:"uinput device node" default:"/dev/uinput" env:"DMOVE_UINPUT_DEVICE"`
}

// pad is the part of a uinput gamepad the driver uses.
type pad interface {
	LeftStickMove(x, y float32) error
	RightStickMove(x, y float32) error
	Close() error
}

type padFactory func(path string, name []byte, vendor, product uint16) (pad, error)

// Driver implements driver.Driver with one uinput gamepad per target.
type Driver struct {
	cfg    Config
	create padFactory
	logger *slog.Logger

	mu        sync.Mutex
	connected bool
}

func (d *Driver) Connect() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.connected = true
	return nil
}

func (d *Driver) Disconnect() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.connected = false
	return nil
}

// AddTarget creates a gamepad advertising the profile's vendor and product.
func (d *Driver) AddTarget(p driver.Profile) (driver.Target, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.connected {
		return nil, driver.ErrNotConnected
	}
	gp, err := d.create(d.cfg.Device, []byte("dmove "+p.Name), p.VendorID, p.ProductID)
	if err != nil {
		return nil, err
	}
	d.logger.Info("uinput gamepad created", "device", d.cfg.Device, "profile", p.Name)
	return &target{pad: gp, profile: p}, nil
}

func (d *Driver) RemoveTarget(t driver.Target) error {
	ut, ok := t.(*target)
	if !ok {
		return errors.New("target does not belong to this driver")
	}
	return ut.pad.Close()
}

type target struct {
	pad     pad
	profile driver.Profile
}

// Update moves both sticks. uinput Y grows downward.
func (t *target) Update(r driver.Report) error {
	v := r.Normalized(t.profile)
	if err := t.pad.LeftStickMove(float32(v.X), float32(-v.Y)); err != nil {
		return err
	}
	return t.pad.RightStickMove(0, 0)
}

// Slot is not exposed by uinput.
func (t *target) Slot() (uint32, bool) { return 0, false }
