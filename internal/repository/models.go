package repository

import "time"

type TransactionType string

const (
	TypeSend    TransactionType = "SEND"
	TypeReceive TransactionType = "RECEIVE"
)

type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusConfirmed TransactionStatus = "CONFIRMED"
	StatusFailed    TransactionStatus = "FAILED"
)

// User is a wallet-holder record. ID and Address are the lowercased wallet
// address and never change after creation; Nonce is the current single-use
// login challenge.
type User struct {
	ID        string    `json:"id"`
	Address   string    `json:"address"`
	Nonce     string    `json:"nonce"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u User) Key() string { return u.ID }

// Transaction is a recorded transfer owned by the user that created it. Hash
// is set once the transfer is seen on chain.
type Transaction struct {
	ID        string            `json:"id"`
	UserID    string            `json:"userId"`
	Type      TransactionType   `json:"type"`
	Amount    string            `json:"amount"`
	From      string            `json:"from"`
	To        string            `json:"to"`
	Hash      string            `json:"hash,omitempty"`
	Status    TransactionStatus `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
}

func (t Transaction) Key() string { return t.ID }
