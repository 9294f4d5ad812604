package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dmove/dmove/apiclient"
	"github.com/dmove/dmove/config"
)

// Ctl sends one command to a running service.
type Ctl struct {
	Addr    string        `help:"Control API address" default:"127.0.0.1:3243" env:"DMOVE_API_ADDR"`
	Timeout time.Duration `help:"Request timeout" default:"5s"`
	Command string        `arg:"" enum:"ping,start,stop,config,slot,sdkstate,detect-start,detect-end,watch" help:"One of: ping, start, stop, config, slot, sdkstate, detect-start, detect-end, watch"`
	Payload string        `arg:"" optional:"" help:"Configuration for start and config: inline JSON or @file (json, yaml or toml)"`

	out io.Writer
}

func (c *Ctl) Run(logger *slog.Logger) error {
	out := c.out
	if out == nil {
		out = os.Stdout
	}
	client := apiclient.NewWithConfig(c.Addr, &apiclient.Config{
		DialTimeout:  c.Timeout,
		ReadTimeout:  c.Timeout,
		WriteTimeout: c.Timeout,
	})

	if c.Command == "watch" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return watch(ctx, client, out)
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()
	payload, err := c.payload()
	if err != nil {
		return err
	}
	resp, err := c.do(ctx, client, payload)
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(b))
	return err
}

func (c *Ctl) do(ctx context.Context, client *apiclient.Client, payload json.RawMessage) (any, error) {
	switch c.Command {
	case "ping":
		return client.Ping(ctx)
	case "start":
		return client.ServiceStart(ctx, payload)
	case "stop":
		return client.ServiceStop(ctx)
	case "config":
		if len(payload) == 0 {
			return nil, errors.New("config requires a payload")
		}
		return client.ServiceConfig(ctx, payload)
	case "slot":
		return client.ServiceSlot(ctx)
	case "sdkstate":
		return client.SDKState(ctx)
	case "detect-start":
		return client.DetectStart(ctx)
	case "detect-end":
		return client.DetectEnd(ctx)
	default:
		return nil, fmt.Errorf("unknown command: %s", c.Command)
	}
}

// payload resolves an inline document or an @file. Files are normalised to
// JSON so yaml and toml documents can be sent too.
func (c *Ctl) payload() (json.RawMessage, error) {
	p := strings.TrimSpace(c.Payload)
	if p == "" {
		return nil, nil
	}
	if path, ok := strings.CutPrefix(p, "@"); ok {
		cfg, err := config.LoadFile(path)
		if err != nil {
			return nil, err
		}
		return json.Marshal(cfg)
	}
	if !json.Valid([]byte(p)) {
		return nil, fmt.Errorf("%w: payload is not valid JSON", config.ErrConfigParse)
	}
	return json.RawMessage(p), nil
}

// watch prints monitor reports until ctx is done or the server closes the
// stream.
func watch(ctx context.Context, client *apiclient.Client, out io.Writer) error {
	s, err := client.Subscribe(ctx, "monitor/stream")
	if err != nil {
		return err
	}
	defer s.Close()
	go func() {
		<-ctx.Done()
		_ = s.Close()
	}()
	for {
		line, err := s.ReadLine()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
}
