package api

import (
	"context"
	"net/url"

	"github.com/thibaultdory/foyer/internal/model"
)

// RuleViolations lists all recorded violations (parents only).
func (c *Client) RuleViolations(ctx context.Context, params ListParams) (Page[model.RuleViolation], error) {
	return list[model.RuleViolation](ctx, c, "/rule-violations", params)
}

// ChildRuleViolations lists the violations recorded for one child.
func (c *Client) ChildRuleViolations(ctx context.Context, childID string, params ListParams) (Page[model.RuleViolation], error) {
	return list[model.RuleViolation](ctx, c, "/rule-violations/child/"+url.PathEscape(childID), params)
}

// RuleViolationsByDate lists violations for a single day.
func (c *Client) RuleViolationsByDate(ctx context.Context, day model.Date) ([]model.RuleViolation, error) {
	var violations []model.RuleViolation
	if err := c.get(ctx, "/rule-violations/date/"+day.String(), nil, &violations); err != nil {
		return nil, err
	}
	return violations, nil
}

// CreateRuleViolation records a violation (parents only).
func (c *Client) CreateRuleViolation(ctx context.Context, in model.RuleViolationCreate) (*model.RuleViolation, error) {
	var v model.RuleViolation
	if err := c.post(ctx, "/rule-violations", in, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// DeleteRuleViolation removes a violation (parents only).
func (c *Client) DeleteRuleViolation(ctx context.Context, id string) error {
	return c.delete(ctx, "/rule-violations/"+url.PathEscape(id), nil)
}
