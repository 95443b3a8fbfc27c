package service

import (
	"context"
	"log/slog"

	"github.com/thibaultdory/foyer/internal/api"
	"github.com/thibaultdory/foyer/internal/model"
)

// Rules is the rule service. Deactivate is the delete operation: rules are
// soft-deleted so violations and contracts keep valid references.
type Rules struct {
	client   *api.Client
	notifier Notifier
	logger   *slog.Logger
}

func NewRules(client *api.Client, logger *slog.Logger) *Rules {
	return &Rules{client: client, logger: logger}
}

func (s *Rules) Subscribe(fn func()) func() {
	return s.notifier.Subscribe(fn)
}

func (s *Rules) List(ctx context.Context, params api.ListParams) (api.Page[model.Rule], error) {
	return s.client.Rules(ctx, params)
}

func (s *Rules) Get(ctx context.Context, id string) (*model.Rule, error) {
	return s.client.Rule(ctx, id)
}

func (s *Rules) Create(ctx context.Context, in model.RuleCreate) (*model.Rule, error) {
	rule, err := s.client.CreateRule(ctx, in)
	if err != nil {
		return nil, err
	}
	s.notifier.Notify()
	return rule, nil
}

func (s *Rules) Update(ctx context.Context, id string, in model.RuleUpdate) (*model.Rule, error) {
	rule, err := s.client.UpdateRule(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.notifier.Notify()
	return rule, nil
}

func (s *Rules) Deactivate(ctx context.Context, id string) error {
	if err := s.client.DeactivateRule(ctx, id); err != nil {
		return err
	}
	s.logger.Info("rule deactivated", "id", id)
	s.notifier.Notify()
	return nil
}
