// Package viiperbus drives virtual pads exported by a VIIPER USB-IP server.
// The pad is added to a bus through the line protocol and fed binary input
// state over its device stream.
package viiperbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"sync"

	"github.com/dmove/dmove/apiclient"
	"github.com/dmove/dmove/driver"
)

// Config selects the VIIPER server and bus.
type Config struct {
	Addr  string `help:"VIIPER API server address" default:"localhost:3242" env:"DMOVE_VIIPER_ADDR"`
	BusID uint32 `help:"Bus number to use; created when missing" default:"1" env:"DMOVE_VIIPER_BUS"`
}

// Driver implements driver.Driver on a VIIPER bus.
type Driver struct {
	client *apiclient.Client
	cfg    Config
	logger *slog.Logger

	mu        sync.Mutex
	connected bool
	ownsBus   bool
}

// New returns a driver using client. When client is nil one is created for
// cfg.Addr with no dial, read or write timeouts.
func New(client *apiclient.Client, cfg Config, logger *slog.Logger) *Driver {
	if client == nil {
		client = apiclient.NewWithConfig(cfg.Addr, &apiclient.Config{})
	}
	return &Driver{client: client, cfg: cfg, logger: logger.With("component", "viiperbus", "bus", cfg.BusID)}
}

// Connect reuses the configured bus when the server already has it and
// creates it otherwise.
func (d *Driver) Connect() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	ctx := context.Background()
	list, err := d.client.BusListCtx(ctx)
	if err != nil {
		return fmt.Errorf("list buses: %w", err)
	}
	if slices.Contains(list.Buses, d.cfg.BusID) {
		d.logger.Debug("reusing bus")
	} else {
		if _, err := d.client.BusCreateCtx(ctx, d.cfg.BusID); err != nil {
			return fmt.Errorf("create bus: %w", err)
		}
		d.ownsBus = true
		d.logger.Debug("created bus")
	}
	d.connected = true
	return nil
}

// Disconnect removes the bus if Connect created it.
func (d *Driver) Disconnect() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.connected {
		return nil
	}
	d.connected = false
	if !d.ownsBus {
		return nil
	}
	d.ownsBus = false
	if _, err := d.client.BusRemoveCtx(context.Background(), d.cfg.BusID); err != nil {
		return fmt.Errorf("remove bus: %w", err)
	}
	return nil
}

// AddTarget adds a device of the profile's type and opens its stream.
func (d *Driver) AddTarget(p driver.Profile) (driver.Target, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.connected {
		return nil, driver.ErrNotConnected
	}
	ctx := context.Background()
	stream, resp, err := d.client.AddDeviceAndConnect(ctx, d.cfg.BusID, p.Name)
	if err != nil {
		if resp != nil {
			if devID, idErr := apiclient.DevID(resp.ID); idErr == nil {
				if _, rmErr := d.client.DeviceRemoveCtx(ctx, d.cfg.BusID, devID); rmErr != nil {
					d.logger.Warn("remove device after failed stream open", "id", resp.ID, "error", rmErr)
				}
			}
		}
		return nil, fmt.Errorf("add %s device: %w", p.Name, err)
	}
	devID, _ := apiclient.DevID(resp.ID)
	d.logger.Info("virtual pad attached", "id", resp.ID, "profile", p.Name)
	return &target{
		stream:  stream,
		profile: p,
		devID:   devID,
	}, nil
}

// RemoveTarget closes the stream and removes the device from the bus.
func (d *Driver) RemoveTarget(t driver.Target) error {
	vt, ok := t.(*target)
	if !ok {
		return errors.New("target does not belong to this driver")
	}
	closeErr := vt.stream.Close()
	if _, err := d.client.DeviceRemoveCtx(context.Background(), d.cfg.BusID, vt.devID); err != nil {
		return fmt.Errorf("remove device %s: %w", vt.devID, err)
	}
	return closeErr
}

type target struct {
	stream  *apiclient.Stream
	profile driver.Profile
	devID   string
}

// Update writes one stream packet. The write blocks until the server takes it.
func (t *target) Update(r driver.Report) error {
	b, err := r.MarshalFor(t.profile)
	if err != nil {
		return err
	}
	_, err = t.stream.Write(b)
	return err
}

// Slot returns the zero-based device number on the bus.
func (t *target) Slot() (uint32, bool) {
	n, err := strconv.ParseUint(t.devID, 10, 32)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint32(n - 1), true
}
