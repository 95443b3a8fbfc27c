// Package pin implements the shared-tablet profile gate. It is a purely
// local convenience layer in front of an already-established backend
// session: authenticating a profile never touches the network, and logging
// a profile out never touches the primary OAuth session.
package pin

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/thibaultdory/foyer/internal/device"
	"github.com/thibaultdory/foyer/internal/model"
)

// State is the gate's position in the tablet-mode state machine.
type State string

const (
	StateDisabled      State = "disabled"
	StateNoProfile     State = "no_profile"
	StateAwaitingPin   State = "awaiting_pin"
	StateAuthenticated State = "authenticated"
)

var (
	// ErrLocked means PIN entry is in its cool-down window.
	ErrLocked = errors.New("pin entry locked")
	// ErrUnknownProfile means the profile id is not on this device.
	ErrUnknownProfile = errors.New("unknown pin profile")
	// ErrPinTooShort rejects codes below the minimum length.
	ErrPinTooShort = errors.New("pin too short")
	// ErrTabletDisabled means tablet mode is off; profiles persist across a
	// disable but cannot be selected or authenticated until re-enabled.
	ErrTabletDisabled = errors.New("tablet mode disabled")
)

const (
	defaultMaxAttempts = 3
	defaultCooldown    = 30 * time.Second
	defaultPinLength   = 4

	parentDefaultPin = "0000"
	childDefaultPin  = "1234"
)

var profileColors = []string{"#e67e22", "#3498db", "#2ecc71", "#9b59b6", "#e74c3c", "#1abc9c"}

// Config tunes the gate. Zero values take the defaults above.
type Config struct {
	MaxAttempts int
	Cooldown    time.Duration
	PinLength   int
}

// Gate owns the in-memory tablet state and writes every change through to
// the device store.
type Gate struct {
	store  *device.Store
	cfg    Config
	logger *slog.Logger
	now    func() time.Time

	mu          sync.Mutex
	tablet      model.TabletConfig
	selected    string
	current     *model.PinProfile
	attempts    map[string]int
	lockedUntil map[string]time.Time
}

// NewGate loads the persisted tablet configuration and builds the gate.
func NewGate(store *device.Store, cfg Config, logger *slog.Logger) (*Gate, error) {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = defaultCooldown
	}
	if cfg.PinLength <= 0 {
		cfg.PinLength = defaultPinLength
	}

	tablet, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load tablet config: %w", err)
	}

	return &Gate{
		store:       store,
		cfg:         cfg,
		logger:      logger,
		now:         time.Now,
		tablet:      tablet,
		attempts:    make(map[string]int),
		lockedUntil: make(map[string]time.Time),
	}, nil
}

// PinLength is the fixed code length; the UI auto-submits once this many
// digits are entered.
func (g *Gate) PinLength() int {
	return g.cfg.PinLength
}

// State reports the current gate state.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	switch {
	case !g.tablet.Enabled:
		return StateDisabled
	case g.current != nil:
		return StateAuthenticated
	case g.selected != "":
		return StateAwaitingPin
	default:
		return StateNoProfile
	}
}

// Enabled reports whether tablet mode is on.
func (g *Gate) Enabled() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.tablet.Enabled
}

// AutoLogoutOnScreenOff reports the screen-lock auto-logout option.
func (g *Gate) AutoLogoutOnScreenOff() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.tablet.AutoLogoutOnScreenOff
}

// Profiles returns the configured profiles.
func (g *Gate) Profiles() []model.PinProfile {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]model.PinProfile, len(g.tablet.Profiles))
	copy(out, g.tablet.Profiles)
	return out
}

// Enable turns tablet mode on and persists it. If no profiles exist yet,
// one is provisioned per family member with the default PIN (0000 for
// parents, 1234 for children), which a parent is expected to change.
func (g *Gate) Enable(family []model.User) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	cfg, err := g.store.Update(func(c *model.TabletConfig) error {
		c.Enabled = true
		if len(c.Profiles) > 0 {
			return nil
		}
		if len(family) == 0 {
			return errors.New("no family members to provision")
		}
		for i, u := range family {
			code := childDefaultPin
			if u.IsParent {
				code = parentDefaultPin
			}
			c.Profiles = append(c.Profiles, model.PinProfile{
				ID:       uuid.NewString(),
				UserID:   u.ID,
				Name:     u.Name,
				Pin:      code,
				IsParent: u.IsParent,
				Avatar:   u.ProfilePicture,
				Color:    profileColors[i%len(profileColors)],
			})
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("enable tablet mode: %w", err)
	}

	g.tablet = cfg
	g.logger.Warn("tablet mode enabled with default pins; change them in settings",
		"profiles", len(cfg.Profiles))
	return nil
}

// Disable turns tablet mode off, keeping profiles for a later re-enable.
func (g *Gate) Disable() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	cfg, err := g.store.Update(func(c *model.TabletConfig) error {
		c.Enabled = false
		return nil
	})
	if err != nil {
		return fmt.Errorf("disable tablet mode: %w", err)
	}
	g.tablet = cfg
	g.selected = ""
	g.current = nil
	return nil
}

// SetAutoLogoutOnScreenOff persists the screen-lock auto-logout option.
func (g *Gate) SetAutoLogoutOnScreenOff(on bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	cfg, err := g.store.Update(func(c *model.TabletConfig) error {
		c.AutoLogoutOnScreenOff = on
		return nil
	})
	if err != nil {
		return err
	}
	g.tablet = cfg
	return nil
}

// SelectProfile moves the gate to awaiting-pin for the given profile.
func (g *Gate) SelectProfile(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.tablet.Enabled {
		return ErrTabletDisabled
	}
	if g.tablet.Profile(id) == nil {
		return ErrUnknownProfile
	}
	g.selected = id
	return nil
}

// ClearSelection returns to the profile picker.
func (g *Gate) ClearSelection() {
	g.mu.Lock()
	g.selected = ""
	g.mu.Unlock()
}

// Authenticate checks code against the stored profile PIN. It returns
// (true, nil) on a match, (false, nil) on a mismatch that counts toward
// the lockout, and (false, ErrLocked) while the cool-down window is open.
// This is a pure local-state transition: no network is involved.
func (g *Gate) Authenticate(profileID, code string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.tablet.Enabled {
		return false, ErrTabletDisabled
	}

	profile := g.tablet.Profile(profileID)
	if profile == nil {
		return false, ErrUnknownProfile
	}

	if until, locked := g.lockedUntil[profileID]; locked {
		if g.now().Before(until) {
			return false, ErrLocked
		}
		// Cool-down elapsed: attempts reset and entry reopens.
		delete(g.lockedUntil, profileID)
		g.attempts[profileID] = 0
	}

	if code != profile.Pin {
		g.attempts[profileID]++
		if g.attempts[profileID] >= g.cfg.MaxAttempts {
			g.lockedUntil[profileID] = g.now().Add(g.cfg.Cooldown)
			g.logger.Warn("pin entry locked", "profile", profile.Name, "cooldown", g.cfg.Cooldown)
		}
		return false, nil
	}

	g.attempts[profileID] = 0
	delete(g.lockedUntil, profileID)
	p := *profile
	g.current = &p
	g.selected = ""
	g.logger.Info("pin authenticated", "profile", profile.Name, "parent", profile.IsParent)
	return true, nil
}

// AttemptsRemaining reports how many wrong codes remain before lockout.
func (g *Gate) AttemptsRemaining(profileID string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	left := g.cfg.MaxAttempts - g.attempts[profileID]
	if left < 0 {
		return 0
	}
	return left
}

// LockedUntil reports the end of the cool-down window, if one is open.
func (g *Gate) LockedUntil(profileID string) (time.Time, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	until, ok := g.lockedUntil[profileID]
	if !ok || !g.now().Before(until) {
		return time.Time{}, false
	}
	return until, true
}

// Logout drops the PIN authentication only; the primary session stays.
func (g *Gate) Logout() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.current != nil {
		g.logger.Info("pin logout", "profile", g.current.Name)
	}
	g.current = nil
	g.selected = ""
}

// AuthenticatedProfile returns the PIN-authenticated profile, or nil. It
// satisfies session.DelegationSource.
func (g *Gate) AuthenticatedProfile() *model.PinProfile {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.current == nil {
		return nil
	}
	p := *g.current
	return &p
}

// SetPin changes a profile's PIN. Codes shorter than the configured length
// are rejected.
func (g *Gate) SetPin(profileID, newPin string) error {
	if len(newPin) < g.cfg.PinLength {
		return ErrPinTooShort
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	cfg, err := g.store.Update(func(c *model.TabletConfig) error {
		p := c.Profile(profileID)
		if p == nil {
			return ErrUnknownProfile
		}
		p.Pin = newPin
		return nil
	})
	if err != nil {
		return err
	}
	g.tablet = cfg
	if g.current != nil && g.current.ID == profileID {
		g.current.Pin = newPin
	}
	return nil
}

// ForceExit wipes all device-local tablet state. It is the emergency path
// for a device left unusable by failed provisioning; the caller reloads
// the UI afterwards.
func (g *Gate) ForceExit() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.store.Reset(); err != nil {
		return fmt.Errorf("force exit: %w", err)
	}
	g.tablet = model.TabletConfig{}
	g.selected = ""
	g.current = nil
	g.attempts = make(map[string]int)
	g.lockedUntil = make(map[string]time.Time)
	g.logger.Warn("tablet state force-cleared")
	return nil
}
