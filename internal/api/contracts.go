package api

import (
	"context"
	"net/url"

	"github.com/thibaultdory/foyer/internal/model"
)

// Contracts lists all contracts (parents only).
func (c *Client) Contracts(ctx context.Context, params ListParams) (Page[model.Contract], error) {
	return list[model.Contract](ctx, c, "/contracts", params)
}

// ChildContracts lists the contracts for one child.
func (c *Client) ChildContracts(ctx context.Context, childID string, params ListParams) (Page[model.Contract], error) {
	return list[model.Contract](ctx, c, "/contracts/child/"+url.PathEscape(childID), params)
}

// Contract fetches a single contract.
func (c *Client) Contract(ctx context.Context, id string) (*model.Contract, error) {
	var contract model.Contract
	if err := c.get(ctx, "/contracts/"+url.PathEscape(id), nil, &contract); err != nil {
		return nil, err
	}
	return &contract, nil
}

// CreateContract creates a contract with its embedded rules (parents only).
func (c *Client) CreateContract(ctx context.Context, in model.ContractCreate) (*model.Contract, error) {
	var contract model.Contract
	if err := c.post(ctx, "/contracts", in, &contract); err != nil {
		return nil, err
	}
	return &contract, nil
}

// UpdateContract applies a partial update (parents only).
func (c *Client) UpdateContract(ctx context.Context, id string, in model.ContractUpdate) (*model.Contract, error) {
	var contract model.Contract
	if err := c.put(ctx, "/contracts/"+url.PathEscape(id), in, &contract); err != nil {
		return nil, err
	}
	return &contract, nil
}

// DeactivateContract ends a contract while preserving its history.
func (c *Client) DeactivateContract(ctx context.Context, id string) (*model.Contract, error) {
	var contract model.Contract
	if err := c.put(ctx, "/contracts/"+url.PathEscape(id)+"/deactivate", nil, &contract); err != nil {
		return nil, err
	}
	return &contract, nil
}

// DeleteContract removes a contract. Wallet transactions already derived
// from it are kept server-side.
func (c *Client) DeleteContract(ctx context.Context, id string) error {
	return c.delete(ctx, "/contracts/"+url.PathEscape(id), nil)
}
