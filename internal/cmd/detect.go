package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmove/dmove/input"
	"github.com/dmove/dmove/session"
)

// Detect plugs in a pad that holds the stick slightly forward so it can be
// picked in a game's controller settings.
type Detect struct {
	Backend `embed:""`

	Service  string        `help:"Service configuration file; only the controller profile is used" type:"path" env:"DMOVE_SERVICE_CONFIG"`
	Duration time.Duration `help:"How long to stay in detection mode (0 waits for a signal)" default:"30s"`
}

func (c *Detect) Run(logger *slog.Logger) error {
	cfg, err := loadServiceConfig(c.Service, logger)
	if err != nil {
		return err
	}
	drv, err := c.newDriver(logger)
	if err != nil {
		return err
	}
	src, _, err := input.New(input.Options{Kind: input.DetectionTest, Logger: logger})
	if err != nil {
		return err
	}
	runner := session.NewRunner(session.New(session.Options{Driver: drv, Digital: src, Logger: logger}), 0, logger)
	runner.SetDetectionMode(true)
	if err := runner.Start(cfg); err != nil {
		return err
	}
	if slot, ok := runner.Slot(); ok {
		logger.Info("detection pad connected", "slot", slot)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if c.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Duration)
		defer cancel()
	}
	<-ctx.Done()
	return runner.Stop()
}
