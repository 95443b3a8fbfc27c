package api

import (
	"context"
	"net/url"

	"github.com/thibaultdory/foyer/internal/model"
)

// MonthlyAnalytics fetches a child's aggregated stats for one month with
// the previous month alongside. month is "YYYY-MM"; an empty month means
// the current one, an empty childID means the authenticated user. Querying
// another child is parents only, enforced server-side.
func (c *Client) MonthlyAnalytics(ctx context.Context, childID, month string) (*model.MonthlyAnalytics, error) {
	q := url.Values{}
	if childID != "" {
		q.Set("child_id", childID)
	}
	if month != "" {
		q.Set("month", month)
	}
	var out model.MonthlyAnalytics
	if err := c.get(ctx, "/analytics/monthly", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
