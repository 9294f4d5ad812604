package testing

import (
	"log/slog"
	"sync"
	"testing"

	"github.com/dmove/dmove/driver/drivertest"
	"github.com/dmove/dmove/input"
	"github.com/dmove/dmove/session"
)

// Keys is a digital source whose held keys a test can change while a runner
// polls it.
type Keys struct {
	mu   sync.Mutex
	held map[uint8]bool
}

func NewKeys() *Keys { return &Keys{held: map[uint8]bool{}} }

// Set presses or releases codes.
func (k *Keys) Set(pressed bool, codes ...uint8) {
	k.mu.Lock()
	defer k.mu.Unlock()
	for _, c := range codes {
		if pressed {
			k.held[c] = true
		} else {
			delete(k.held, c)
		}
	}
}

// Source returns a key poller reading k.
func (k *Keys) Source() input.Source {
	return input.NewKeyPoller(func(c uint8) bool {
		k.mu.Lock()
		defer k.mu.Unlock()
		return k.held[c]
	})
}

// NewRunner returns a stopped runner on a recording driver. The runner is
// stopped when the test ends.
func NewRunner(t *testing.T, keys *Keys, observer session.Observer) (*session.Runner, *drivertest.Driver) {
	t.Helper()
	drv := drivertest.New()
	s := session.New(session.Options{
		Driver:   drv,
		Digital:  keys.Source(),
		Observer: observer,
		Logger:   slog.Default(),
	})
	r := session.NewRunner(s, 0, slog.Default())
	t.Cleanup(func() { _ = r.Stop() })
	return r, drv
}
