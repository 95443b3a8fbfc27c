package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/thibaultdory/foyer/internal/bridge"
	"github.com/thibaultdory/foyer/internal/pin"
)

// profileView is a PinProfile as exposed to the UI: the code itself never
// leaves the agent.
type profileView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsParent bool   `json:"isParent"`
	Avatar   string `json:"avatar,omitempty"`
	Color    string `json:"color,omitempty"`
}

type statusView struct {
	Authenticated bool          `json:"authenticated"`
	User          *userView     `json:"user,omitempty"`
	LoginURL      string        `json:"loginUrl"`
	Pin           pinStatusView `json:"pin"`
}

type userView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsParent  bool   `json:"isParent"`
	Delegated bool   `json:"delegated"`
}

type pinStatusView struct {
	State     string        `json:"state"`
	Enabled   bool          `json:"enabled"`
	PinLength int           `json:"pinLength"`
	Profiles  []profileView `json:"profiles"`
}

// handleStatus answers everything the UI needs to bootstrap: the effective
// identity, the OAuth login URL, and the PIN gate state.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	view := statusView{
		LoginURL: s.sessions.LoginURL(),
		Pin: pinStatusView{
			State:     string(s.gate.State()),
			Enabled:   s.gate.Enabled(),
			PinLength: s.gate.PinLength(),
			Profiles:  []profileView{},
		},
	}
	for _, p := range s.gate.Profiles() {
		view.Pin.Profiles = append(view.Pin.Profiles, profileView{
			ID: p.ID, Name: p.Name, IsParent: p.IsParent, Avatar: p.Avatar, Color: p.Color,
		})
	}
	if id := s.sessions.EffectiveUser(); id != nil {
		view.Authenticated = true
		view.User = &userView{
			ID:        id.User.ID,
			Name:      id.User.Name,
			IsParent:  id.User.IsParent,
			Delegated: id.Delegated(),
		}
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleTabletEnable(w http.ResponseWriter, r *http.Request) {
	if err := s.gate.Enable(s.sessions.Family()); err != nil {
		s.logger.Error("enable tablet mode", "error", err)
		writeError(w, http.StatusConflict, "tablet provisioning failed; use force-exit to recover")
		return
	}
	s.hub.Broadcast(bridge.PinChanged())
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleTabletDisable(w http.ResponseWriter, r *http.Request) {
	if err := s.gate.Disable(); err != nil {
		writeError(w, http.StatusInternalServerError, "could not persist tablet state")
		return
	}
	s.hub.Broadcast(bridge.PinChanged())
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleAutoLogout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Enabled bool `json:"enabled"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.gate.SetAutoLogoutOnScreenOff(req.Enabled); err != nil {
		writeError(w, http.StatusInternalServerError, "could not persist tablet state")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handlePinSelect(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProfileID string `json:"profileId"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := s.gate.SelectProfile(req.ProfileID); err != nil {
		if errors.Is(err, pin.ErrTabletDisabled) {
			writeError(w, http.StatusConflict, "tablet mode disabled")
			return
		}
		writeError(w, http.StatusNotFound, "unknown profile")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type authenticateResponse struct {
	OK                bool   `json:"ok"`
	AttemptsRemaining int    `json:"attemptsRemaining"`
	LockedUntil       string `json:"lockedUntil,omitempty"`
}

func (s *Server) handlePinAuthenticate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProfileID string `json:"profileId"`
		Code      string `json:"code"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	ok, err := s.gate.Authenticate(req.ProfileID, req.Code)
	switch {
	case errors.Is(err, pin.ErrTabletDisabled):
		writeError(w, http.StatusConflict, "tablet mode disabled")
		return
	case errors.Is(err, pin.ErrUnknownProfile):
		writeError(w, http.StatusNotFound, "unknown profile")
		return
	case errors.Is(err, pin.ErrLocked):
		resp := authenticateResponse{OK: false}
		if until, locked := s.gate.LockedUntil(req.ProfileID); locked {
			resp.LockedUntil = until.Format(time.RFC3339)
		}
		writeJSON(w, http.StatusTooManyRequests, resp)
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "pin check failed")
		return
	}

	resp := authenticateResponse{OK: ok, AttemptsRemaining: s.gate.AttemptsRemaining(req.ProfileID)}
	if until, locked := s.gate.LockedUntil(req.ProfileID); locked {
		resp.LockedUntil = until.Format(time.RFC3339)
	}
	if ok {
		s.hub.Broadcast(bridge.PinChanged())
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePinLogout(w http.ResponseWriter, r *http.Request) {
	s.gate.Logout()
	s.hub.Broadcast(bridge.PinChanged())
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handlePinChange(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProfileID string `json:"profileId"`
		Pin       string `json:"pin"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	// Only a parent-effective identity may change codes.
	if !s.sessions.IsActingParent() {
		writeError(w, http.StatusForbidden, "parent required")
		return
	}
	if err := s.gate.SetPin(req.ProfileID, req.Pin); err != nil {
		switch {
		case errors.Is(err, pin.ErrPinTooShort):
			writeError(w, http.StatusBadRequest, "pin too short")
		case errors.Is(err, pin.ErrUnknownProfile):
			writeError(w, http.StatusNotFound, "unknown profile")
		default:
			writeError(w, http.StatusInternalServerError, "could not persist pin")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// handleForceExit is the emergency path: wipe all tablet state so a device
// broken by failed provisioning becomes usable again. The UI reloads after
// calling it.
func (s *Server) handleForceExit(w http.ResponseWriter, r *http.Request) {
	if err := s.gate.ForceExit(); err != nil {
		writeError(w, http.StatusInternalServerError, "could not clear tablet state")
		return
	}
	s.hub.Broadcast(bridge.PinChanged())
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleScreenSignal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Signal string `json:"signal"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	s.watcher.Signal(pin.LockSignal(req.Signal))
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
