// Package server is the agent's local HTTP surface: a status endpoint for
// UI bootstrap, the WebSocket bridge, and the PIN gate operations the
// browser UI cannot perform in-process.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/thibaultdory/foyer/internal/bridge"
	"github.com/thibaultdory/foyer/internal/cache"
	"github.com/thibaultdory/foyer/internal/middleware"
	"github.com/thibaultdory/foyer/internal/pin"
	"github.com/thibaultdory/foyer/internal/service"
	"github.com/thibaultdory/foyer/internal/session"
)

type Server struct {
	sessions *session.Manager
	services *service.Registry
	data     *cache.Cache
	gate     *pin.Gate
	watcher  *pin.Watcher
	hub      *bridge.Hub
	logger   *slog.Logger
}

func New(sessions *session.Manager, services *service.Registry, data *cache.Cache, gate *pin.Gate, watcher *pin.Watcher, hub *bridge.Hub, logger *slog.Logger) *Server {
	return &Server{
		sessions: sessions,
		services: services,
		data:     data,
		gate:     gate,
		watcher:  watcher,
		hub:      hub,
		logger:   logger,
	}
}

// Router builds the agent's route table.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.Handle("GET /ws", bridge.Handler(s.hub))
	mux.HandleFunc("POST /logout", s.handleLogout)

	mux.HandleFunc("POST /tablet/enable", s.handleTabletEnable)
	mux.HandleFunc("POST /tablet/disable", s.handleTabletDisable)
	mux.HandleFunc("POST /tablet/auto-logout", s.handleAutoLogout)
	mux.HandleFunc("POST /pin/select", s.handlePinSelect)
	mux.HandleFunc("POST /pin/authenticate", s.handlePinAuthenticate)
	mux.HandleFunc("POST /pin/logout", s.handlePinLogout)
	mux.HandleFunc("POST /pin/change", s.handlePinChange)
	mux.HandleFunc("POST /pin/force-exit", s.handleForceExit)
	mux.HandleFunc("POST /screen/signal", s.handleScreenSignal)

	return middleware.RequestLogger(s.logger)(mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleLogout ends the backend session and clears every local cache. The
// PIN gate is dropped too: with no primary session there is nothing to
// delegate.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	err := s.sessions.Logout(r.Context())
	s.gate.Logout()
	s.data.Clear()
	s.services.Wallets.Forget()
	if err != nil {
		s.logger.Error("logout", "error", err)
		writeError(w, http.StatusBadGateway, "logout failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}
