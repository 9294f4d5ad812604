// Package tray shows the service in the system tray with an enable toggle and
// a quit item.
package tray

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"fyne.io/systray"
	"github.com/ncruces/zenity"
)

// Service is what the tray controls.
type Service interface {
	Enable() error
	Disable() error
	Enabled() bool
}

// ShutdownFunc is called once when "Quit" is clicked.
type ShutdownFunc func()

// Tray owns the tray icon and its menu.
type Tray struct {
	svc      Service
	shutdown ShutdownFunc
	logger   *slog.Logger
	notify   func(title, msg string)

	once         sync.Once
	shuttingDown atomic.Bool

	menuEnabled *systray.MenuItem
	menuQuit    *systray.MenuItem
}

// New returns a tray for svc. shutdown runs when the user quits.
func New(svc Service, shutdown ShutdownFunc, logger *slog.Logger) *Tray {
	return &Tray{
		svc:      svc,
		shutdown: shutdown,
		logger:   logger.With("component", "tray"),
		notify:   ShowError,
	}
}

// Run shows the tray icon and blocks until Quit.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Quit removes the tray icon and makes Run return.
func (t *Tray) Quit() {
	t.shuttingDown.Store(true)
	systray.Quit()
}

func (t *Tray) onReady() {
	systray.SetIcon(Icon())
	systray.SetTitle("dmove")
	systray.SetTooltip("dmove - keyboard to left stick")

	t.menuEnabled = systray.AddMenuItemCheckbox("Enabled", "Toggle the virtual controller", t.svc.Enabled())
	systray.AddSeparator()
	t.menuQuit = systray.AddMenuItem("Quit", "Stop the service and exit")

	go t.handleMenuClicks()
	t.logger.Info("system tray initialized")
}

func (t *Tray) handleMenuClicks() {
	for {
		select {
		case <-t.menuEnabled.ClickedCh:
			if t.shuttingDown.Load() {
				continue
			}
			if t.toggle() {
				t.menuEnabled.Check()
			} else {
				t.menuEnabled.Uncheck()
			}
		case <-t.menuQuit.ClickedCh:
			if t.quit() {
				systray.Quit()
				return
			}
		}
	}
}

// toggle flips the service and returns whether it ends up enabled. A failure
// is reported in a dialog.
func (t *Tray) toggle() bool {
	if t.svc.Enabled() {
		if err := t.svc.Disable(); err != nil {
			t.logger.Error("disable failed", "error", err)
		}
		return t.svc.Enabled()
	}
	if err := t.svc.Enable(); err != nil {
		t.logger.Error("enable failed", "error", err)
		t.notify("dmove", err.Error())
	}
	return t.svc.Enabled()
}

// quit runs the shutdown func the first time it is called.
func (t *Tray) quit() bool {
	if !t.shuttingDown.CompareAndSwap(false, true) {
		return false
	}
	t.once.Do(t.shutdown)
	return true
}

func (t *Tray) onExit() {
	t.shuttingDown.Store(true)
	t.logger.Info("system tray exiting")
}

// ShowError shows a modal error dialog. Failures to show it are ignored.
func ShowError(title, msg string) {
	_ = zenity.Error(msg, zenity.Title(title), zenity.ErrorIcon)
}
