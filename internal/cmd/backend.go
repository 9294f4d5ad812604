package cmd

import (
	"fmt"
	"log/slog"

	"github.com/dmove/dmove/config"
	"github.com/dmove/dmove/driver"
	"github.com/dmove/dmove/driver/uinput"
	"github.com/dmove/dmove/driver/viiperbus"
	"github.com/dmove/dmove/internal/configpaths"
)

// Backend selects and configures the virtual controller driver.
type Backend struct {
	Driver string           `help:"Virtual controller driver" enum:"viiper,uinput" default:"viiper" env:"DMOVE_DRIVER"`
	Viiper viiperbus.Config `embed:"" prefix:"viiper."`
	Uinput uinput.Config    `embed:"" prefix:"uinput."`
}

func (b Backend) newDriver(logger *slog.Logger) (driver.Driver, error) {
	switch b.Driver {
	case "uinput":
		return uinput.New(b.Uinput, logger)
	case "viiper", "":
		return viiperbus.New(nil, b.Viiper, logger), nil
	default:
		return nil, fmt.Errorf("unknown driver: %s", b.Driver)
	}
}

// loadServiceConfig reads the service document at path. An empty path
// searches the config directories and falls back to the defaults.
func loadServiceConfig(path string, logger *slog.Logger) (config.Configuration, error) {
	if path == "" {
		path = configpaths.ServiceConfigPath()
	}
	if path == "" {
		logger.Info("no service configuration found, using defaults")
		return config.Default(), nil
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return config.Configuration{}, fmt.Errorf("load %s: %w", path, err)
	}
	logger.Info("loaded service configuration", "path", path)
	return cfg, nil
}
