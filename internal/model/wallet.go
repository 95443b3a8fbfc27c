package model

import "time"

// WalletTransaction is one signed movement on a child's wallet. Positive
// amounts are credits (daily contract rewards), negative are debits
// (conversion to real money).
type WalletTransaction struct {
	ID         string    `json:"id"`
	ChildID    string    `json:"childId"`
	Amount     float64   `json:"amount"`
	Date       time.Time `json:"date"`
	Reason     string    `json:"reason"`
	ContractID *string   `json:"contractId"`
}

// Wallet is a child's virtual balance with its transaction history. The
// balance is server-computed; the client never derives it locally.
type Wallet struct {
	ChildID      string              `json:"childId"`
	Balance      float64             `json:"balance"`
	Transactions []WalletTransaction `json:"transactions"`
}
