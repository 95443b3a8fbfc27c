package pin

import (
	"log/slog"
	"sync"
	"time"
)

// LockSignal is a raw screen-state event forwarded from the UI layer:
// page visibility changes, window focus, and page hide/show.
type LockSignal string

const (
	SignalHidden   LockSignal = "hidden"
	SignalVisible  LockSignal = "visible"
	SignalBlur     LockSignal = "blur"
	SignalFocus    LockSignal = "focus"
	SignalPageHide LockSignal = "pagehide"
	SignalPageShow LockSignal = "pageshow"
)

const defaultDebounce = 2 * time.Second

// Watcher debounces lock-ish signals and, when the auto-logout option is
// set, logs the PIN profile out once the screen stays off past the debounce
// window. The primary session is never touched.
type Watcher struct {
	gate     *Gate
	debounce time.Duration
	logger   *slog.Logger

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher builds a watcher for gate. A non-positive debounce takes the
// default.
func NewWatcher(gate *Gate, debounce time.Duration, logger *slog.Logger) *Watcher {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &Watcher{gate: gate, debounce: debounce, logger: logger}
}

// Signal feeds one raw event in. Lock-ish signals arm the debounce timer;
// wake-ish signals cancel it. A brief blur/focus flap therefore never logs
// anyone out.
func (w *Watcher) Signal(sig LockSignal) {
	switch sig {
	case SignalHidden, SignalBlur, SignalPageHide:
		w.arm()
	case SignalVisible, SignalFocus, SignalPageShow:
		w.disarm()
	}
}

func (w *Watcher) arm() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		return // already counting down
	}
	w.timer = time.AfterFunc(w.debounce, w.fire)
}

func (w *Watcher) disarm() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

func (w *Watcher) fire() {
	w.mu.Lock()
	w.timer = nil
	w.mu.Unlock()

	if !w.gate.AutoLogoutOnScreenOff() {
		return
	}
	if w.gate.AuthenticatedProfile() == nil {
		return
	}
	w.logger.Info("screen locked, dropping pin session")
	w.gate.Logout()
}

// Stop cancels any pending logout.
func (w *Watcher) Stop() {
	w.disarm()
}
