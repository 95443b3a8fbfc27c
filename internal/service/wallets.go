package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/thibaultdory/foyer/internal/api"
	"github.com/thibaultdory/foyer/internal/model"
)

var (
	// ErrInvalidAmount rejects conversions of zero or negative amounts.
	ErrInvalidAmount = errors.New("conversion amount must be positive")
	// ErrInsufficientBalance rejects conversions above the last known balance.
	ErrInsufficientBalance = errors.New("conversion amount exceeds wallet balance")
)

// Wallets is the wallet service. It mirrors the last fetched balance per
// child so conversions can be validated before any network call; the
// balance itself is always server-computed.
type Wallets struct {
	client   *api.Client
	notifier Notifier
	logger   *slog.Logger

	mu       sync.Mutex
	balances map[string]float64
}

func NewWallets(client *api.Client, logger *slog.Logger) *Wallets {
	return &Wallets{
		client:   client,
		logger:   logger,
		balances: make(map[string]float64),
	}
}

func (s *Wallets) Subscribe(fn func()) func() {
	return s.notifier.Subscribe(fn)
}

// Get fetches a child's wallet and records its balance.
func (s *Wallets) Get(ctx context.Context, childID string) (*model.Wallet, error) {
	wallet, err := s.client.Wallet(ctx, childID)
	if err != nil {
		return nil, err
	}
	s.remember(wallet)
	return wallet, nil
}

func (s *Wallets) Transactions(ctx context.Context, childID string) ([]model.WalletTransaction, error) {
	return s.client.WalletTransactions(ctx, childID)
}

// CachedBalance returns the last fetched balance for childID, if any.
func (s *Wallets) CachedBalance(childID string) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bal, ok := s.balances[childID]
	return bal, ok
}

// ConvertToRealMoney debits amount from the child's wallet. Amounts that are
// not positive, or that exceed the cached balance, are rejected locally
// without touching the network. When no balance is cached yet the wallet is
// fetched first so the guard always runs against fresh data.
func (s *Wallets) ConvertToRealMoney(ctx context.Context, childID string, amount float64) (*model.Wallet, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	balance, ok := s.CachedBalance(childID)
	if !ok {
		wallet, err := s.Get(ctx, childID)
		if err != nil {
			return nil, fmt.Errorf("fetch wallet before conversion: %w", err)
		}
		balance = wallet.Balance
	}
	if amount > balance {
		return nil, ErrInsufficientBalance
	}

	wallet, err := s.client.ConvertWallet(ctx, childID, amount)
	if err != nil {
		return nil, err
	}
	s.remember(wallet)
	s.logger.Info("wallet converted", "child", childID, "amount", amount, "balance", wallet.Balance)
	s.notifier.Notify()
	return wallet, nil
}

func (s *Wallets) remember(w *model.Wallet) {
	s.mu.Lock()
	s.balances[w.ChildID] = w.Balance
	s.mu.Unlock()
}

// Forget drops all cached balances, e.g. on logout.
func (s *Wallets) Forget() {
	s.mu.Lock()
	s.balances = make(map[string]float64)
	s.mu.Unlock()
}
