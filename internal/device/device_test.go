package device

import (
	"errors"
	"testing"

	"github.com/thibaultdory/foyer/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestLoadEmptyYieldsZeroConfig(t *testing.T) {
	store := newTestStore(t)

	cfg, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Enabled || cfg.AutoLogoutOnScreenOff || len(cfg.Profiles) != 0 {
		t.Errorf("expected zero config, got %+v", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)

	in := model.TabletConfig{
		Enabled:               true,
		AutoLogoutOnScreenOff: true,
		Profiles: []model.PinProfile{
			{ID: "p1", UserID: "u1", Name: "Claire", Pin: "0000", IsParent: true, Color: "#e67e22"},
			{ID: "p2", UserID: "u2", Name: "Léo", Pin: "1234", Color: "#3498db"},
		},
	}
	if err := store.Save(in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !out.Enabled || !out.AutoLogoutOnScreenOff {
		t.Errorf("flags lost: %+v", out)
	}
	if len(out.Profiles) != 2 {
		t.Fatalf("profiles = %d, want 2", len(out.Profiles))
	}
	if out.Profiles[0].Pin != "0000" || out.Profiles[1].Name != "Léo" {
		t.Errorf("profile data mangled: %+v", out.Profiles)
	}
}

func TestSaveOverwrites(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save(model.TabletConfig{Enabled: true}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save(model.TabletConfig{Enabled: false}); err != nil {
		t.Fatalf("second save: %v", err)
	}
	cfg, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Enabled {
		t.Error("old value survived overwrite")
	}
}

func TestUpdateReadModifyWrite(t *testing.T) {
	store := newTestStore(t)

	cfg, err := store.Update(func(c *model.TabletConfig) error {
		c.Enabled = true
		c.Profiles = append(c.Profiles, model.PinProfile{ID: "p1", Name: "Claire"})
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !cfg.Enabled || len(cfg.Profiles) != 1 {
		t.Errorf("returned config wrong: %+v", cfg)
	}

	// A second update sees the first one's result.
	cfg, err = store.Update(func(c *model.TabletConfig) error {
		if len(c.Profiles) != 1 {
			t.Errorf("update saw %d profiles, want 1", len(c.Profiles))
		}
		c.Profiles[0].Pin = "4321"
		return nil
	})
	if err != nil {
		t.Fatalf("second update: %v", err)
	}
	if cfg.Profiles[0].Pin != "4321" {
		t.Errorf("pin = %s, want 4321", cfg.Profiles[0].Pin)
	}
}

func TestUpdateErrorLeavesStateUntouched(t *testing.T) {
	store := newTestStore(t)
	if err := store.Save(model.TabletConfig{Enabled: true}); err != nil {
		t.Fatalf("save: %v", err)
	}

	boom := errors.New("boom")
	if _, err := store.Update(func(c *model.TabletConfig) error {
		c.Enabled = false
		return boom
	}); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}

	cfg, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Enabled {
		t.Error("failed update was persisted")
	}
}

func TestReset(t *testing.T) {
	store := newTestStore(t)
	if err := store.Save(model.TabletConfig{Enabled: true}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	cfg, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Enabled {
		t.Error("state survived reset")
	}
}
