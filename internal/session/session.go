// Package session resolves who is acting. Two identity layers exist: the
// primary Google-account session established against the backend, and an
// optional device-local PIN delegation layered on top of it. Authorization
// checks must always go through the effective identity, never the primary
// one: a parent's tablet can be handed to a child without a new OAuth
// login.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/thibaultdory/foyer/internal/api"
	"github.com/thibaultdory/foyer/internal/model"
)

// Identity is the resolved acting identity. Via is non-nil when the
// identity was reached through a PIN profile (delegated) rather than the
// primary session.
type Identity struct {
	User model.User
	Via  *model.PinProfile
}

// Delegated reports whether this identity came from a PIN profile.
func (id Identity) Delegated() bool {
	return id.Via != nil
}

// DelegationSource is the PIN gate's view into the session: it yields the
// currently PIN-authenticated profile, if any.
type DelegationSource interface {
	AuthenticatedProfile() *model.PinProfile
}

// Manager holds the primary identity and the family roster, and resolves
// the effective identity against an optional delegation source.
type Manager struct {
	client   *api.Client
	logger   *slog.Logger
	delegate DelegationSource

	mu      sync.RWMutex
	primary *model.User
	family  []model.User
}

func NewManager(client *api.Client, logger *slog.Logger) *Manager {
	return &Manager{client: client, logger: logger}
}

// SetDelegationSource wires the PIN gate in. Nil disables delegation.
func (m *Manager) SetDelegationSource(src DelegationSource) {
	m.mu.Lock()
	m.delegate = src
	m.mu.Unlock()
}

// Bootstrap resolves the primary identity once at startup. An anonymous
// session is not an error: the manager just stays unauthenticated.
func (m *Manager) Bootstrap(ctx context.Context) error {
	user, err := m.client.Me(ctx)
	if err != nil {
		return fmt.Errorf("resolve session: %w", err)
	}
	if user == nil {
		m.logger.Info("no active session")
		return nil
	}

	family, err := m.client.Family(ctx)
	if err != nil {
		return fmt.Errorf("fetch family: %w", err)
	}

	m.mu.Lock()
	m.primary = user
	m.family = family
	m.mu.Unlock()
	m.logger.Info("session resolved", "user", user.Name, "parent", user.IsParent, "family_size", len(family))
	return nil
}

// Logout ends the backend session and resets to the unauthenticated state.
// The local state is cleared even if the server call fails.
func (m *Manager) Logout(ctx context.Context) error {
	err := m.client.Logout(ctx)

	m.mu.Lock()
	m.primary = nil
	m.family = nil
	m.mu.Unlock()

	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// LoginURL is the OAuth redirect target for the browser.
func (m *Manager) LoginURL() string {
	return m.client.LoginURL()
}

// PrimaryUser returns the primary authenticated user, or nil.
func (m *Manager) PrimaryUser() *model.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.primary == nil {
		return nil
	}
	u := *m.primary
	return &u
}

// Family returns the family roster resolved at bootstrap.
func (m *Manager) Family() []model.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.User, len(m.family))
	copy(out, m.family)
	return out
}

// FamilyMember returns the roster entry with the given id, or nil.
func (m *Manager) FamilyMember(id string) *model.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.family {
		if m.family[i].ID == id {
			u := m.family[i]
			return &u
		}
	}
	return nil
}

// EffectiveUser resolves the acting identity: the PIN-authenticated
// profile's linked user when PIN delegation is active, otherwise the
// primary user, otherwise nil.
func (m *Manager) EffectiveUser() *Identity {
	m.mu.RLock()
	delegate := m.delegate
	primary := m.primary
	m.mu.RUnlock()

	if delegate != nil {
		if profile := delegate.AuthenticatedProfile(); profile != nil {
			if user := m.FamilyMember(profile.UserID); user != nil {
				return &Identity{User: *user, Via: profile}
			}
			// Profile points at someone no longer in the roster; fall
			// back to a synthetic user from the profile itself so the
			// gate still works offline.
			return &Identity{
				User: model.User{ID: profile.UserID, Name: profile.Name, IsParent: profile.IsParent},
				Via:  profile,
			}
		}
	}

	if primary == nil {
		return nil
	}
	return &Identity{User: *primary}
}

// IsActingParent reports whether the effective identity is a parent.
func (m *Manager) IsActingParent() bool {
	id := m.EffectiveUser()
	return id != nil && id.User.IsParent
}
