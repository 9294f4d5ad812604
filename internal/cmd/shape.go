package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/dmove/dmove/driver"
	"github.com/dmove/dmove/stick"
)

// Shape prints the stick vector and encoded axes for a set of held
// directions.
type Shape struct {
	Directions []string `arg:"" optional:"" help:"Held directions: up, down, left, right. Append =<depth> for an analog reading, e.g. up=0.6"`
	Service    string   `help:"Service configuration file" type:"path" env:"DMOVE_SERVICE_CONFIG"`
	Profile    string   `help:"Override the controller profile (xbox360, ds4)"`
	Advanced   bool     `help:"Force advanced strafing on"`
	Raw        bool     `help:"Also print the 20-byte wired USB report (xbox360 only)"`

	out io.Writer
}

func (c *Shape) Run(logger *slog.Logger) error {
	cfg, err := loadServiceConfig(c.Service, logger)
	if err != nil {
		return err
	}
	if c.Profile != "" {
		cfg.Profile = c.Profile
	}
	if c.Advanced {
		cfg.AdvancedStrafeEnabled = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	st := stick.NewDirectionalState()
	analog := false
	for _, arg := range c.Directions {
		d, depth, isAnalog, err := parseHeld(arg)
		if err != nil {
			return err
		}
		analog = analog || isAnalog
		st.SetAnalog(d, depth)
	}
	rng := stick.FullRange
	if analog {
		rng = cfg.ActivationRange()
	}
	v := st.Vector(rng, cfg.Shaping())
	p := cfg.ControllerProfile()
	r := p.Encode(v)

	out := c.out
	if out == nil {
		out = os.Stdout
	}
	if err := printShape(out, v, p, r); err != nil {
		return err
	}
	if !c.Raw {
		return nil
	}
	if p.Width != driver.Signed16 {
		return fmt.Errorf("raw USB report is only available for %s", driver.Xbox360.Name)
	}
	_, err = fmt.Fprintf(out, "usb=% x\n", r.Xbox360State().Report())
	return err
}

func printShape(w io.Writer, v stick.Vector, p driver.Profile, r driver.Report) error {
	_, err := fmt.Fprintf(w, "x=%.4f y=%.4f profile=%s lx=%d ly=%d\n", v.X, v.Y, p.Name, r.LeftX, r.LeftY)
	return err
}

// parseHeld parses "dir" or "dir=depth".
func parseHeld(s string) (stick.Direction, float64, bool, error) {
	name, val, hasDepth := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "=")
	var d stick.Direction
	found := false
	for _, cand := range stick.Directions {
		if cand.String() == name {
			d, found = cand, true
			break
		}
	}
	if !found {
		return 0, 0, false, fmt.Errorf("unknown direction %q", name)
	}
	if !hasDepth {
		return d, 1, false, nil
	}
	depth, err := strconv.ParseFloat(val, 64)
	if err != nil || depth < 0 || depth > 1 {
		return 0, 0, false, fmt.Errorf("invalid depth %q for %s: want a number in [0,1]", val, name)
	}
	return d, depth, true, nil
}
