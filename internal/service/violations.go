package service

import (
	"context"
	"log/slog"

	"github.com/thibaultdory/foyer/internal/api"
	"github.com/thibaultdory/foyer/internal/model"
)

// Violations is the rule-violation service.
type Violations struct {
	client   *api.Client
	notifier Notifier
	logger   *slog.Logger
}

func NewViolations(client *api.Client, logger *slog.Logger) *Violations {
	return &Violations{client: client, logger: logger}
}

func (s *Violations) Subscribe(fn func()) func() {
	return s.notifier.Subscribe(fn)
}

func (s *Violations) List(ctx context.Context, params api.ListParams) (api.Page[model.RuleViolation], error) {
	return s.client.RuleViolations(ctx, params)
}

func (s *Violations) ListForChild(ctx context.Context, childID string, params api.ListParams) (api.Page[model.RuleViolation], error) {
	return s.client.ChildRuleViolations(ctx, childID, params)
}

func (s *Violations) ListByDate(ctx context.Context, day model.Date) ([]model.RuleViolation, error) {
	return s.client.RuleViolationsByDate(ctx, day)
}

func (s *Violations) Create(ctx context.Context, in model.RuleViolationCreate) (*model.RuleViolation, error) {
	v, err := s.client.CreateRuleViolation(ctx, in)
	if err != nil {
		return nil, err
	}
	s.logger.Info("violation recorded", "id", v.ID, "rule", v.RuleID, "child", v.ChildID)
	s.notifier.Notify()
	return v, nil
}

func (s *Violations) Delete(ctx context.Context, id string) error {
	if err := s.client.DeleteRuleViolation(ctx, id); err != nil {
		return err
	}
	s.notifier.Notify()
	return nil
}
