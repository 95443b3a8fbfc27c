package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/thibaultdory/foyer/internal/api"
	"github.com/thibaultdory/foyer/internal/bridge"
	"github.com/thibaultdory/foyer/internal/cache"
	"github.com/thibaultdory/foyer/internal/device"
	"github.com/thibaultdory/foyer/internal/pin"
	"github.com/thibaultdory/foyer/internal/service"
	"github.com/thibaultdory/foyer/internal/session"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestAgent wires a full agent against a fake backend and returns its
// HTTP surface.
func newTestAgent(t *testing.T) (*httptest.Server, *pin.Gate) {
	t.Helper()

	backend := http.NewServeMux()
	backend.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"parent-1","name":"Claire","isParent":true,"birthDate":"1984-05-12"}`))
	})
	backend.HandleFunc("GET /api/users/family", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id":"parent-1","name":"Claire","isParent":true,"birthDate":"1984-05-12"},
			{"id":"child-1","name":"Léo","isParent":false,"birthDate":"2015-09-30"}
		]`))
	})
	backendSrv := httptest.NewServer(backend)
	t.Cleanup(backendSrv.Close)

	client := api.NewClient(backendSrv.URL)
	services := service.NewRegistry(client, testLogger())
	sessions := session.NewManager(client, testLogger())
	if err := sessions.Bootstrap(context.Background()); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	store, err := device.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	gate, err := pin.NewGate(store, pin.Config{}, testLogger())
	if err != nil {
		t.Fatalf("new gate: %v", err)
	}
	sessions.SetDelegationSource(gate)

	data := cache.New(services, testLogger())
	t.Cleanup(data.Close)
	watcher := pin.NewWatcher(gate, time.Second, testLogger())
	t.Cleanup(watcher.Stop)
	hub := bridge.NewHub(testLogger())

	srv := New(sessions, services, data, gate, watcher, hub, testLogger())
	agent := httptest.NewServer(srv.Router())
	t.Cleanup(agent.Close)
	return agent, gate
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func getStatus(t *testing.T, agent *httptest.Server) statusView {
	t.Helper()
	resp, err := http.Get(agent.URL + "/status")
	if err != nil {
		t.Fatalf("GET /status: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var view statusView
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	return view
}

func TestStatusBeforeTabletMode(t *testing.T) {
	agent, _ := newTestAgent(t)

	view := getStatus(t, agent)
	if !view.Authenticated {
		t.Error("expected an authenticated primary session")
	}
	if view.User == nil || view.User.ID != "parent-1" || view.User.Delegated {
		t.Errorf("user = %+v", view.User)
	}
	if view.Pin.State != "disabled" || view.Pin.Enabled {
		t.Errorf("pin = %+v", view.Pin)
	}
	if view.LoginURL == "" {
		t.Error("missing login url")
	}
}

func TestTabletEnableAndPinFlow(t *testing.T) {
	agent, _ := newTestAgent(t)

	if resp := postJSON(t, agent.URL+"/tablet/enable", `{}`); resp.StatusCode != http.StatusOK {
		t.Fatalf("enable = %d", resp.StatusCode)
	}

	view := getStatus(t, agent)
	if view.Pin.State != "no_profile" {
		t.Fatalf("state = %s", view.Pin.State)
	}
	if len(view.Pin.Profiles) != 2 {
		t.Fatalf("profiles = %d, want 2", len(view.Pin.Profiles))
	}

	var child profileView
	for _, p := range view.Pin.Profiles {
		if !p.IsParent {
			child = p
		}
	}
	if child.ID == "" {
		t.Fatal("no child profile provisioned")
	}

	if resp := postJSON(t, agent.URL+"/pin/select", `{"profileId":"`+child.ID+`"}`); resp.StatusCode != http.StatusOK {
		t.Fatalf("select = %d", resp.StatusCode)
	}
	if getStatus(t, agent).Pin.State != "awaiting_pin" {
		t.Fatal("selection did not move the gate to awaiting_pin")
	}

	resp := postJSON(t, agent.URL+"/pin/authenticate", `{"profileId":"`+child.ID+`","code":"1234"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("authenticate = %d", resp.StatusCode)
	}
	var auth authenticateResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !auth.OK {
		t.Fatal("default child pin rejected")
	}

	view = getStatus(t, agent)
	if view.Pin.State != "authenticated" {
		t.Errorf("state = %s", view.Pin.State)
	}
	if view.User == nil || view.User.ID != "child-1" || !view.User.Delegated {
		t.Errorf("effective user = %+v, want delegated child", view.User)
	}

	if resp := postJSON(t, agent.URL+"/pin/logout", `{}`); resp.StatusCode != http.StatusOK {
		t.Fatalf("pin logout = %d", resp.StatusCode)
	}
	view = getStatus(t, agent)
	if view.User == nil || view.User.ID != "parent-1" || view.User.Delegated {
		t.Errorf("user after pin logout = %+v, want primary parent", view.User)
	}
}

func TestPinLockoutOverHTTP(t *testing.T) {
	agent, gate := newTestAgent(t)
	if resp := postJSON(t, agent.URL+"/tablet/enable", `{}`); resp.StatusCode != http.StatusOK {
		t.Fatalf("enable = %d", resp.StatusCode)
	}
	var childID string
	for _, p := range gate.Profiles() {
		if !p.IsParent {
			childID = p.ID
		}
	}

	body := `{"profileId":"` + childID + `","code":"9999"}`
	for i := 0; i < 3; i++ {
		resp := postJSON(t, agent.URL+"/pin/authenticate", body)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("attempt %d = %d", i+1, resp.StatusCode)
		}
		var auth authenticateResponse
		json.NewDecoder(resp.Body).Decode(&auth)
		if auth.OK {
			t.Fatal("wrong code accepted")
		}
	}

	resp := postJSON(t, agent.URL+"/pin/authenticate", body)
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("locked attempt = %d, want 429", resp.StatusCode)
	}
	var auth authenticateResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if auth.LockedUntil == "" {
		t.Error("missing lockedUntil on 429")
	}
	if _, err := time.Parse(time.RFC3339, auth.LockedUntil); err != nil {
		t.Errorf("lockedUntil not RFC3339: %v", err)
	}

	if resp := postJSON(t, agent.URL+"/pin/authenticate", `{"profileId":"nope","code":"1234"}`); resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown profile = %d, want 404", resp.StatusCode)
	}
}

func TestPinChangeRequiresParent(t *testing.T) {
	agent, gate := newTestAgent(t)
	if resp := postJSON(t, agent.URL+"/tablet/enable", `{}`); resp.StatusCode != http.StatusOK {
		t.Fatalf("enable = %d", resp.StatusCode)
	}
	var parentID, childID string
	for _, p := range gate.Profiles() {
		if p.IsParent {
			parentID = p.ID
		} else {
			childID = p.ID
		}
	}

	// The child is holding the tablet: changing codes must be refused even
	// though the primary session belongs to a parent.
	if ok, err := gate.Authenticate(childID, "1234"); err != nil || !ok {
		t.Fatalf("child auth = %v, %v", ok, err)
	}
	if resp := postJSON(t, agent.URL+"/pin/change", `{"profileId":"`+childID+`","pin":"5678"}`); resp.StatusCode != http.StatusForbidden {
		t.Errorf("child change = %d, want 403", resp.StatusCode)
	}

	gate.Logout()
	if ok, err := gate.Authenticate(parentID, "0000"); err != nil || !ok {
		t.Fatalf("parent auth = %v, %v", ok, err)
	}
	if resp := postJSON(t, agent.URL+"/pin/change", `{"profileId":"`+childID+`","pin":"5678"}`); resp.StatusCode != http.StatusOK {
		t.Errorf("parent change = %d, want 200", resp.StatusCode)
	}
	if resp := postJSON(t, agent.URL+"/pin/change", `{"profileId":"`+childID+`","pin":"1"}`); resp.StatusCode != http.StatusBadRequest {
		t.Errorf("short pin = %d, want 400", resp.StatusCode)
	}

	gate.Logout()
	if ok, _ := gate.Authenticate(childID, "5678"); !ok {
		t.Error("changed pin rejected")
	}
}

func TestForceExitRecoversDevice(t *testing.T) {
	agent, gate := newTestAgent(t)
	if resp := postJSON(t, agent.URL+"/tablet/enable", `{}`); resp.StatusCode != http.StatusOK {
		t.Fatalf("enable = %d", resp.StatusCode)
	}

	if resp := postJSON(t, agent.URL+"/pin/force-exit", `{}`); resp.StatusCode != http.StatusOK {
		t.Fatalf("force exit = %d", resp.StatusCode)
	}
	if gate.Enabled() || len(gate.Profiles()) != 0 {
		t.Error("tablet state survived force exit")
	}
	if getStatus(t, agent).Pin.State != "disabled" {
		t.Error("gate not disabled after force exit")
	}
}

func TestHealthz(t *testing.T) {
	agent, _ := newTestAgent(t)
	resp, err := http.Get(agent.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("healthz = %d", resp.StatusCode)
	}
}
