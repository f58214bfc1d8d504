package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"xft/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrTransactionNotFound error = errors.New("transaction not found")
var ErrNotTransactionOwner error = errors.New("not the transaction owner")
var ErrMissingField error = errors.New("recipient and amount are required")
var ErrInvalidStatusTransition error = errors.New("invalid status transition")

// TransactionService is the ledger of recorded transfers. Transfers are
// recorded, not broadcast; chain confirmation happens elsewhere and reports
// back through MarkStatus.
type TransactionService struct {
	logs         *zap.SugaredLogger
	transactions TransactionStore
}

func NewTransactionService(logger *zap.SugaredLogger, transactions TransactionStore) *TransactionService {
	return &TransactionService{
		logs:         logger,
		transactions: transactions,
	}
}

// List returns the caller's transactions, most recent first.
func (s *TransactionService) List(ctx context.Context, ident Identity) ([]repository.Transaction, error) {
	transactions, err := s.transactions.ListByUser(ctx, ident.UserID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return transactions, nil
}

// Create records a pending outgoing transfer owned by the caller.
func (s *TransactionService) Create(ctx context.Context, ident Identity, recipient, amount string) (repository.Transaction, error) {
	if recipient == "" || amount == "" {
		return repository.Transaction{}, ErrMissingField
	}

	tx := repository.Transaction{
		ID:        uuid.NewString(),
		UserID:    ident.UserID,
		Type:      repository.TypeSend,
		Amount:    amount,
		From:      ident.Address,
		To:        recipient,
		Status:    repository.StatusPending,
		Timestamp: time.Now().UTC(),
	}

	saved, err := s.transactions.Save(ctx, tx)
	if err != nil {
		return repository.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}

	s.logs.Infow("transaction recorded", "id", saved.ID, "userId", saved.UserID, "amount", saved.Amount)
	return saved, nil
}

// GetByID fetches one transaction. A transaction owned by someone else yields
// ErrNotTransactionOwner, distinct from ErrTransactionNotFound.
func (s *TransactionService) GetByID(ctx context.Context, ident Identity, id string) (repository.Transaction, error) {
	tx, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			return repository.Transaction{}, ErrTransactionNotFound
		}
		return repository.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}

	if tx.UserID != ident.UserID {
		return repository.Transaction{}, ErrNotTransactionOwner
	}
	return tx, nil
}

// MarkStatus records the outcome of chain confirmation. Status only ever
// moves PENDING -> CONFIRMED or PENDING -> FAILED.
func (s *TransactionService) MarkStatus(ctx context.Context, id string, status repository.TransactionStatus, hash string) (repository.Transaction, error) {
	tx, err := s.transactions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			return repository.Transaction{}, ErrTransactionNotFound
		}
		return repository.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}

	if tx.Status != repository.StatusPending {
		return repository.Transaction{}, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, tx.Status, status)
	}
	if status != repository.StatusConfirmed && status != repository.StatusFailed {
		return repository.Transaction{}, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, tx.Status, status)
	}

	tx.Status = status
	if hash != "" {
		tx.Hash = hash
	}

	saved, err := s.transactions.Save(ctx, tx)
	if err != nil {
		return repository.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}

	s.logs.Infow("transaction status updated", "id", saved.ID, "status", saved.Status)
	return saved, nil
}
