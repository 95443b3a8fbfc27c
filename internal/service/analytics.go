package service

import (
	"context"
	"log/slog"

	"github.com/thibaultdory/foyer/internal/api"
	"github.com/thibaultdory/foyer/internal/model"
)

// Analytics is the monthly-stats service. It is read-only: stats are
// recomputed server-side on every request, so there is no notifier and
// nothing to cache.
type Analytics struct {
	client *api.Client
	logger *slog.Logger
}

func NewAnalytics(client *api.Client, logger *slog.Logger) *Analytics {
	return &Analytics{client: client, logger: logger}
}

// Monthly returns a child's stats for month ("YYYY-MM", empty for the
// current month) with the previous month for comparison.
func (s *Analytics) Monthly(ctx context.Context, childID, month string) (*model.MonthlyAnalytics, error) {
	return s.client.MonthlyAnalytics(ctx, childID, month)
}
