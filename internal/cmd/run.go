package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmove/dmove/input"
	"github.com/dmove/dmove/internal/monitor"
	"github.com/dmove/dmove/internal/server/api"
	"github.com/dmove/dmove/internal/server/api/handler"
	"github.com/dmove/dmove/internal/tray"
	"github.com/dmove/dmove/internal/version"
	"github.com/dmove/dmove/session"
)

// Run starts the controller service and the control API.
type Run struct {
	Backend `embed:""`

	Service     string           `help:"Service configuration file (json, yaml or toml). Searched in the config directories when empty." type:"path" env:"DMOVE_SERVICE_CONFIG"`
	Input       string           `help:"Digital input source" enum:"digital,events,detect" default:"digital" env:"DMOVE_INPUT"`
	EvdevDevice string           `help:"Keyboard event device used by --input=events" env:"DMOVE_EVDEV_DEVICE"`
	Interval    time.Duration    `help:"Poll interval" default:"1ms" env:"DMOVE_INTERVAL"`
	API         api.ServerConfig `embed:"" prefix:"api."`
	Monitor     string           `help:"Serve the websocket report monitor on this address (disabled when empty)" env:"DMOVE_MONITOR_ADDR"`
	Tray        bool             `help:"Show a system tray icon" env:"DMOVE_TRAY"`
	NoStart     bool             `help:"Wait for service/start instead of starting right away" env:"DMOVE_NO_START"`
}

// Run blocks until SIGINT/SIGTERM or the tray's Quit.
func (c *Run) Run(logger *slog.Logger) error {
	cfg, err := loadServiceConfig(c.Service, logger)
	if err != nil {
		return err
	}
	kind, err := input.ParseKind(c.Input)
	if err != nil {
		return err
	}
	drv, err := c.newDriver(logger)
	if err != nil {
		return err
	}
	digital, closeInput, err := input.New(input.Options{Kind: kind, EvdevPath: c.EvdevDevice, Logger: logger})
	if err != nil {
		return fmt.Errorf("input source: %w", err)
	}
	defer closeInput()

	hub := monitor.New(logger)
	s := session.New(session.Options{
		Driver:   drv,
		Digital:  digital,
		Analog:   analogSource(logger),
		Observer: hub,
		Logger:   logger,
	})
	runner := session.NewRunner(s, c.Interval, logger)
	if err := runner.SetConfig(cfg); err != nil {
		return err
	}

	srv := api.New(c.API, logger)
	handler.Register(srv.Router(), runner, version.Version)
	srv.Router().RegisterStream("monitor/stream", hub.ServeStream)
	if err := srv.Start(); err != nil {
		return err
	}
	defer srv.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if c.Monitor != "" {
		go func() {
			if err := hub.ListenAndServe(ctx, c.Monitor); err != nil {
				logger.Error("monitor stopped", "error", err)
			}
		}()
	}

	if kind == input.DetectionTest {
		runner.SetDetectionMode(true)
	}
	if !c.NoStart {
		if err := runner.Start(cfg); err != nil {
			logger.Error("failed to start service", "error", err)
			if c.Tray {
				tray.ShowError("dmove", err.Error())
			}
		}
	}

	if c.Tray {
		t := tray.New(runnerService{runner}, func() { stop() }, logger)
		go func() {
			<-ctx.Done()
			t.Quit()
		}()
		t.Run()
	} else {
		<-ctx.Done()
	}

	logger.Info("shutting down")
	return runner.Stop()
}

// analogSource returns the platform analog source, or nil when the platform
// has none.
func analogSource(logger *slog.Logger) session.AnalogSource {
	src, _, err := input.New(input.Options{Kind: input.AnalogPoll, Logger: logger})
	if err != nil {
		logger.Debug("analog input unavailable", "error", err)
		return nil
	}
	a, ok := src.(session.AnalogSource)
	if !ok {
		return nil
	}
	return a
}

// runnerService lets the tray toggle a runner with its current configuration.
type runnerService struct{ r *session.Runner }

func (s runnerService) Enable() error  { return s.r.Start(s.r.Config()) }
func (s runnerService) Disable() error { return s.r.Stop() }
func (s runnerService) Enabled() bool  { return s.r.Running() }
