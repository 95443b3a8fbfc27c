package api

import (
	"context"
	"net/url"

	"github.com/thibaultdory/foyer/internal/model"
)

type convertRequest struct {
	Amount float64 `json:"amount"`
}

// Wallet fetches a child's wallet with its transactions. The server creates
// an empty wallet on first access.
func (c *Client) Wallet(ctx context.Context, childID string) (*model.Wallet, error) {
	var wallet model.Wallet
	if err := c.get(ctx, "/wallets/"+url.PathEscape(childID), nil, &wallet); err != nil {
		return nil, err
	}
	return &wallet, nil
}

// WalletTransactions fetches a child's transaction history.
func (c *Client) WalletTransactions(ctx context.Context, childID string) ([]model.WalletTransaction, error) {
	var txs []model.WalletTransaction
	if err := c.get(ctx, "/wallets/"+url.PathEscape(childID)+"/transactions", nil, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// ConvertWallet debits amount from the child's wallet as a real-money
// conversion (parents only) and returns the refreshed wallet.
func (c *Client) ConvertWallet(ctx context.Context, childID string, amount float64) (*model.Wallet, error) {
	var wallet model.Wallet
	if err := c.post(ctx, "/wallets/"+url.PathEscape(childID)+"/convert", convertRequest{Amount: amount}, &wallet); err != nil {
		return nil, err
	}
	return &wallet, nil
}
