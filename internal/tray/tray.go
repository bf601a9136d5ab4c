// Package tray provides a macOS system tray interface for the Mudra sign typing system.
package tray

import (
	"sync"

	"github.com/getlantern/systray"
)

// Tray represents the macOS system tray application.
type Tray struct {
	onToggle func(enabled bool)
	onOpenUI func()
	onQuit   func()
	enabled  bool
	mu       sync.RWMutex

	// Menu items stored for later updates
	menuToggle   *systray.MenuItem
	menuLastSign *systray.MenuItem
}

// New creates a new Tray instance. Detection starts disabled; the user
// turns it on from the menu.
func New() *Tray {
	return &Tray{}
}

// OnToggle sets the callback function to be called when detection is toggled.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnOpenUI sets the callback function to be called when the open-UI menu item is clicked.
func (t *Tray) OnOpenUI(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onOpenUI = fn
}

// OnQuit sets the callback function to be called when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTitle("Mudra")
	systray.SetTooltip("Mudra Sign Typing")

	t.menuToggle = systray.AddMenuItem("○ Detection off", "Toggle sign detection")
	systray.AddSeparator()

	t.menuLastSign = systray.AddMenuItem("Last: none", "Last emitted sign")
	t.menuLastSign.Disable()
	systray.AddSeparator()

	menuOpenUI := systray.AddMenuItem("Open Mudra...", "Open the web UI in a browser")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Mudra")

	// Handle menu item clicks in a separate goroutine
	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-menuOpenUI.ClickedCh:
				t.handleOpenUI()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

// onExit is called when the system tray is about to exit.
func (t *Tray) onExit() {
}

// handleToggle handles the toggle menu item click.
func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled

	if enabled {
		t.menuToggle.SetTitle("● Detection on")
	} else {
		t.menuToggle.SetTitle("○ Detection off")
	}

	callback := t.onToggle
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(enabled)
	}
}

// handleOpenUI handles the open-UI menu item click.
func (t *Tray) handleOpenUI() {
	t.mu.RLock()
	callback := t.onOpenUI
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleQuit handles the quit menu item click.
func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// SetLastSign updates the last emitted sign display in the menu.
func (t *Tray) SetLastSign(label string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuLastSign != nil {
		if label == "" {
			t.menuLastSign.SetTitle("Last: none")
		} else {
			t.menuLastSign.SetTitle("Last: " + label)
		}
	}
}

// SetEnabled forces the toggle state, for session stops that did not come
// from the menu (camera failures).
func (t *Tray) SetEnabled(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.enabled == enabled {
		return
	}
	t.enabled = enabled

	if t.menuToggle != nil {
		if enabled {
			t.menuToggle.SetTitle("● Detection on")
		} else {
			t.menuToggle.SetTitle("○ Detection off")
		}
	}
}

// IsEnabled returns the current toggle state.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}
