// Package tray puts a menu in the system tray for the common controller
// actions, so the daemon is usable without opening the web page.
package tray

import (
	"log"
	"os/exec"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"fyne.io/systray"

	"github.com/soar/joymap/internal/engine"
)

// ShutdownFunc is called when "Exit" is clicked
type ShutdownFunc func()

// SubmitFunc queues a command for the input loop.
type SubmitFunc func(engine.Command) bool

// StateFunc returns the latest input state.
type StateFunc func() engine.State

const refreshInterval = time.Second

// Tray manages the system tray icon and menu
type Tray struct {
	url          string
	submit       SubmitFunc
	state        StateFunc
	shutdownFunc ShutdownFunc
	once         sync.Once
	shuttingDown atomic.Bool

	menuOpen      *systray.MenuItem
	menuConfigure *systray.MenuItem
	menuDefault   *systray.MenuItem
	menuSaved     *systray.MenuItem
	menuRescan    *systray.MenuItem
	menuExit      *systray.MenuItem
}

// New creates a new Tray instance
func New(url string, submit SubmitFunc, state StateFunc, shutdownFn ShutdownFunc) *Tray {
	return &Tray{
		url:          url,
		submit:       submit,
		state:        state,
		shutdownFunc: shutdownFn,
	}
}

// Run initializes and runs the system tray (blocks until Quit())
func (t *Tray) Run(iconData []byte) {
	systray.Run(func() {
		t.onReady(iconData)
	}, func() {
		t.onExit()
	})
}

func (t *Tray) onReady(iconData []byte) {
	if iconData != nil {
		systray.SetIcon(iconData)
	}
	systray.SetTitle("joymap")
	systray.SetTooltip("joymap - " + t.url)

	t.menuOpen = systray.AddMenuItem("Open Browser", "Open web interface")
	t.menuConfigure = systray.AddMenuItem("Configure Controller...", "Choose the button for each control")
	systray.AddSeparator()
	t.menuDefault = systray.AddMenuItem("Use Default Configuration", "Map the controller automatically")
	t.menuSaved = systray.AddMenuItem("Use Saved Configuration", "Use the configuration in preferences")
	t.menuRescan = systray.AddMenuItem("Rescan Controllers", "Look for newly attached controllers")
	systray.AddSeparator()
	t.menuExit = systray.AddMenuItem("Exit", "Quit application")

	// Handle menu clicks in separate goroutines to prevent blocking
	go t.handleMenuClicks()
	go t.refresh()

	log.Println("System tray initialized")
}

func (t *Tray) handleMenuClicks() {
	for {
		select {
		case <-t.menuOpen.ClickedCh:
			t.openBrowser()
		case <-t.menuConfigure.ClickedCh:
			// the wizard is shown by the web page
			if t.send(engine.ConfigureStart) {
				t.openBrowser()
			}
		case <-t.menuDefault.ClickedCh:
			t.send(engine.UseDefault)
		case <-t.menuSaved.ClickedCh:
			t.send(engine.UseSaved)
		case <-t.menuRescan.ClickedCh:
			t.send(engine.Rescan)
		case <-t.menuExit.ClickedCh:
			if t.shuttingDown.CompareAndSwap(false, true) {
				t.once.Do(t.shutdownFunc)
				systray.Quit()
				return
			}
		}
	}
}

func (t *Tray) send(kind engine.CommandKind) bool {
	if t.shuttingDown.Load() {
		return false
	}
	return t.submit(engine.Command{Kind: kind})
}

// refresh keeps the tooltip and the enabled items in step with the input
// state until shutdown.
func (t *Tray) refresh() {
	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	var last engine.State
	first := true
	for range ticker.C {
		if t.shuttingDown.Load() {
			return
		}
		s := t.state()
		if !first && s.Connected == last.Connected && s.Name == last.Name &&
			s.CanUseSaved == last.CanUseSaved && (s.Wizard == nil) == (last.Wizard == nil) {
			continue
		}
		first = false
		last = s

		if s.Connected {
			systray.SetTooltip("joymap - " + s.Name)
		} else {
			systray.SetTooltip("joymap - no controller")
		}

		idle := s.Wizard == nil
		setEnabled(t.menuConfigure, s.Connected && idle)
		setEnabled(t.menuDefault, s.Connected && idle)
		setEnabled(t.menuSaved, s.CanUseSaved && idle)
		setEnabled(t.menuRescan, idle)
	}
}

func setEnabled(item *systray.MenuItem, on bool) {
	if on {
		item.Enable()
	} else {
		item.Disable()
	}
}

func (t *Tray) onExit() {
	t.shuttingDown.Store(true)
	log.Println("System tray exiting")
}

// openBrowser opens the default web browser
func (t *Tray) openBrowser() {
	// Prevent multiple browser launches during shutdown
	if t.shuttingDown.Load() {
		return
	}

	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", t.url)
	case "darwin":
		cmd = exec.Command("open", t.url)
	default:
		cmd = exec.Command("xdg-open", t.url)
	}

	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}
