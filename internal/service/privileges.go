package service

import (
	"context"
	"log/slog"

	"github.com/thibaultdory/foyer/internal/api"
	"github.com/thibaultdory/foyer/internal/model"
)

// Privileges is the privilege service. Mutations are parent-only server-side.
type Privileges struct {
	client   *api.Client
	notifier Notifier
	logger   *slog.Logger
}

func NewPrivileges(client *api.Client, logger *slog.Logger) *Privileges {
	return &Privileges{client: client, logger: logger}
}

func (s *Privileges) Subscribe(fn func()) func() {
	return s.notifier.Subscribe(fn)
}

func (s *Privileges) List(ctx context.Context, params api.ListParams) (api.Page[model.Privilege], error) {
	return s.client.Privileges(ctx, params)
}

func (s *Privileges) ListForUser(ctx context.Context, userID string, params api.ListParams) (api.Page[model.Privilege], error) {
	return s.client.UserPrivileges(ctx, userID, params)
}

func (s *Privileges) ListByDate(ctx context.Context, day model.Date) ([]model.Privilege, error) {
	return s.client.PrivilegesByDate(ctx, day)
}

func (s *Privileges) Create(ctx context.Context, in model.PrivilegeCreate) (*model.Privilege, error) {
	priv, err := s.client.CreatePrivilege(ctx, in)
	if err != nil {
		return nil, err
	}
	s.notifier.Notify()
	return priv, nil
}

func (s *Privileges) Update(ctx context.Context, id string, in model.PrivilegeUpdate) (*model.Privilege, error) {
	priv, err := s.client.UpdatePrivilege(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.notifier.Notify()
	return priv, nil
}

func (s *Privileges) Delete(ctx context.Context, id string) error {
	if err := s.client.DeletePrivilege(ctx, id); err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}
