package api

import (
	"context"
	"net/url"

	"github.com/thibaultdory/foyer/internal/model"
)

// Rules lists all active rules.
func (c *Client) Rules(ctx context.Context, params ListParams) (Page[model.Rule], error) {
	return list[model.Rule](ctx, c, "/rules", params)
}

// Rule fetches a single rule by id, active or not.
func (c *Client) Rule(ctx context.Context, id string) (*model.Rule, error) {
	var rule model.Rule
	if err := c.get(ctx, "/rules/"+url.PathEscape(id), nil, &rule); err != nil {
		return nil, err
	}
	return &rule, nil
}

// CreateRule creates a rule (parents only).
func (c *Client) CreateRule(ctx context.Context, in model.RuleCreate) (*model.Rule, error) {
	var rule model.Rule
	if err := c.post(ctx, "/rules", in, &rule); err != nil {
		return nil, err
	}
	return &rule, nil
}

// UpdateRule applies a partial update (parents only).
func (c *Client) UpdateRule(ctx context.Context, id string, in model.RuleUpdate) (*model.Rule, error) {
	var rule model.Rule
	if err := c.put(ctx, "/rules/"+url.PathEscape(id), in, &rule); err != nil {
		return nil, err
	}
	return &rule, nil
}

// DeactivateRule soft-deletes a rule: it stays referenced by violations and
// contracts but no longer lists as active.
func (c *Client) DeactivateRule(ctx context.Context, id string) error {
	return c.delete(ctx, "/rules/"+url.PathEscape(id), nil)
}
