package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/dmove/dmove/config"
)

// PrintConfig prints the service configuration dmove would start with.
type PrintConfig struct {
	Service string `help:"Service configuration file" type:"path" env:"DMOVE_SERVICE_CONFIG"`
	Format  string `help:"Output format" enum:"json,yaml,toml" default:"json"`

	out io.Writer
}

func (c *PrintConfig) Run(logger *slog.Logger) error {
	cfg, err := loadServiceConfig(c.Service, logger)
	if err != nil {
		return err
	}
	b, err := config.Marshal(cfg, config.Format(c.Format))
	if err != nil {
		return err
	}
	out := c.out
	if out == nil {
		out = os.Stdout
	}
	if _, err := out.Write(b); err != nil {
		return err
	}
	if len(b) > 0 && b[len(b)-1] != '\n' {
		_, err = io.WriteString(out, "\n")
	}
	return err
}
