package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/thibaultdory/foyer/internal/model"
)

// walletBackend is an in-memory stand-in for the wallet endpoints that
// counts how often the convert endpoint is hit.
type walletBackend struct {
	mu           sync.Mutex
	wallet       model.Wallet
	convertCalls int
}

func newWalletBackend(childID string, balance float64) (*walletBackend, *http.ServeMux) {
	b := &walletBackend{wallet: model.Wallet{ChildID: childID, Balance: balance}}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/wallets/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		json.NewEncoder(w).Encode(b.wallet)
	})
	mux.HandleFunc("POST /api/wallets/{id}/convert", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Amount float64 `json:"amount"`
		}
		json.NewDecoder(r.Body).Decode(&req)

		b.mu.Lock()
		defer b.mu.Unlock()
		b.convertCalls++
		if req.Amount <= 0 || req.Amount > b.wallet.Balance {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"detail":"Invalid amount"}`))
			return
		}
		b.wallet.Balance -= req.Amount
		b.wallet.Transactions = append(b.wallet.Transactions, model.WalletTransaction{
			ID:      "tx1",
			ChildID: b.wallet.ChildID,
			Amount:  -req.Amount,
			Date:    time.Now().UTC(),
			Reason:  "Conversion en euros réels",
		})
		json.NewEncoder(w).Encode(b.wallet)
	})
	return b, mux
}

func TestConvertRejectsNonPositiveAmount(t *testing.T) {
	backend, mux := newWalletBackend("child-1", 2.00)
	svc := NewWallets(newTestClient(t, mux), testLogger())

	for _, amount := range []float64{0, -1.50} {
		_, err := svc.ConvertToRealMoney(context.Background(), "child-1", amount)
		if !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("convert %v: err = %v, want ErrInvalidAmount", amount, err)
		}
	}
	if backend.convertCalls != 0 {
		t.Errorf("convert endpoint hit %d times, want 0", backend.convertCalls)
	}
}

func TestConvertRejectsOverBalanceWithoutNetworkCall(t *testing.T) {
	backend, mux := newWalletBackend("child-1", 2.00)
	svc := NewWallets(newTestClient(t, mux), testLogger())

	// Balance is cached by the fetch the UI already made.
	if _, err := svc.Get(context.Background(), "child-1"); err != nil {
		t.Fatalf("get wallet: %v", err)
	}

	var fired int
	svc.Subscribe(func() { fired++ })

	_, err := svc.ConvertToRealMoney(context.Background(), "child-1", 3.00)
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("err = %v, want ErrInsufficientBalance", err)
	}
	if backend.convertCalls != 0 {
		t.Errorf("convert endpoint hit %d times, want 0", backend.convertCalls)
	}
	if fired != 0 {
		t.Errorf("listener invoked %d times after local rejection, want 0", fired)
	}
}

func TestConvertDebitsWallet(t *testing.T) {
	backend, mux := newWalletBackend("child-1", 2.00)
	svc := NewWallets(newTestClient(t, mux), testLogger())

	if _, err := svc.Get(context.Background(), "child-1"); err != nil {
		t.Fatalf("get wallet: %v", err)
	}

	var fired int
	svc.Subscribe(func() { fired++ })

	wallet, err := svc.ConvertToRealMoney(context.Background(), "child-1", 1.50)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if wallet.Balance != 0.50 {
		t.Errorf("balance = %v, want 0.50", wallet.Balance)
	}
	if len(wallet.Transactions) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(wallet.Transactions))
	}
	tx := wallet.Transactions[0]
	if tx.Amount != -1.50 {
		t.Errorf("transaction amount = %v, want -1.50", tx.Amount)
	}
	if tx.Reason != "Conversion en euros réels" {
		t.Errorf("transaction reason = %q", tx.Reason)
	}
	if backend.convertCalls != 1 {
		t.Errorf("convert endpoint hit %d times, want 1", backend.convertCalls)
	}
	if fired != 1 {
		t.Errorf("listener invoked %d times, want 1", fired)
	}

	// The cached balance followed the server's answer.
	if bal, ok := svc.CachedBalance("child-1"); !ok || bal != 0.50 {
		t.Errorf("cached balance = (%v, %v), want (0.50, true)", bal, ok)
	}
}

func TestConvertFetchesWalletWhenUncached(t *testing.T) {
	_, mux := newWalletBackend("child-1", 2.00)
	svc := NewWallets(newTestClient(t, mux), testLogger())

	// No prior Get: the guard fetches the wallet first, then rejects.
	_, err := svc.ConvertToRealMoney(context.Background(), "child-1", 5.00)
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("err = %v, want ErrInsufficientBalance", err)
	}
}

func TestForgetDropsCachedBalances(t *testing.T) {
	_, mux := newWalletBackend("child-1", 2.00)
	svc := NewWallets(newTestClient(t, mux), testLogger())

	if _, err := svc.Get(context.Background(), "child-1"); err != nil {
		t.Fatalf("get wallet: %v", err)
	}
	svc.Forget()
	if _, ok := svc.CachedBalance("child-1"); ok {
		t.Error("balance still cached after Forget")
	}
}
