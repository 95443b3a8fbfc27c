package service

import (
	"context"
	"log/slog"

	"github.com/thibaultdory/foyer/internal/api"
	"github.com/thibaultdory/foyer/internal/model"
)

// Contracts is the contract service.
type Contracts struct {
	client   *api.Client
	notifier Notifier
	logger   *slog.Logger
}

func NewContracts(client *api.Client, logger *slog.Logger) *Contracts {
	return &Contracts{client: client, logger: logger}
}

func (s *Contracts) Subscribe(fn func()) func() {
	return s.notifier.Subscribe(fn)
}

func (s *Contracts) List(ctx context.Context, params api.ListParams) (api.Page[model.Contract], error) {
	return s.client.Contracts(ctx, params)
}

func (s *Contracts) ListForChild(ctx context.Context, childID string, params api.ListParams) (api.Page[model.Contract], error) {
	return s.client.ChildContracts(ctx, childID, params)
}

func (s *Contracts) Get(ctx context.Context, id string) (*model.Contract, error) {
	return s.client.Contract(ctx, id)
}

func (s *Contracts) Create(ctx context.Context, in model.ContractCreate) (*model.Contract, error) {
	contract, err := s.client.CreateContract(ctx, in)
	if err != nil {
		return nil, err
	}
	s.logger.Info("contract created", "id", contract.ID, "child", contract.ChildID)
	s.notifier.Notify()
	return contract, nil
}

func (s *Contracts) Update(ctx context.Context, id string, in model.ContractUpdate) (*model.Contract, error) {
	contract, err := s.client.UpdateContract(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.notifier.Notify()
	return contract, nil
}

// Deactivate ends the contract; daily rewards stop but history remains.
func (s *Contracts) Deactivate(ctx context.Context, id string) (*model.Contract, error) {
	contract, err := s.client.DeactivateContract(ctx, id)
	if err != nil {
		return nil, err
	}
	s.notifier.Notify()
	return contract, nil
}

// Delete removes the contract entirely. Wallet transactions it generated
// are preserved server-side.
func (s *Contracts) Delete(ctx context.Context, id string) error {
	if err := s.client.DeleteContract(ctx, id); err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}
