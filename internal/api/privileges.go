package api

import (
	"context"
	"net/url"

	"github.com/thibaultdory/foyer/internal/model"
)

// Privileges lists all privileges (parents only).
func (c *Client) Privileges(ctx context.Context, params ListParams) (Page[model.Privilege], error) {
	return list[model.Privilege](ctx, c, "/privileges", params)
}

// UserPrivileges lists the privileges granted to one user.
func (c *Client) UserPrivileges(ctx context.Context, userID string, params ListParams) (Page[model.Privilege], error) {
	return list[model.Privilege](ctx, c, "/privileges/user/"+url.PathEscape(userID), params)
}

// PrivilegesByDate lists privileges for a single day.
func (c *Client) PrivilegesByDate(ctx context.Context, day model.Date) ([]model.Privilege, error) {
	var privs []model.Privilege
	if err := c.get(ctx, "/privileges/date/"+day.String(), nil, &privs); err != nil {
		return nil, err
	}
	return privs, nil
}

// CreatePrivilege creates a privilege (parents only).
func (c *Client) CreatePrivilege(ctx context.Context, in model.PrivilegeCreate) (*model.Privilege, error) {
	var priv model.Privilege
	if err := c.post(ctx, "/privileges", in, &priv); err != nil {
		return nil, err
	}
	return &priv, nil
}

// UpdatePrivilege applies a partial update (parents only).
func (c *Client) UpdatePrivilege(ctx context.Context, id string, in model.PrivilegeUpdate) (*model.Privilege, error) {
	var priv model.Privilege
	if err := c.put(ctx, "/privileges/"+url.PathEscape(id), in, &priv); err != nil {
		return nil, err
	}
	return &priv, nil
}

// DeletePrivilege removes a privilege (parents only).
func (c *Client) DeletePrivilege(ctx context.Context, id string) error {
	return c.delete(ctx, "/privileges/"+url.PathEscape(id), nil)
}
