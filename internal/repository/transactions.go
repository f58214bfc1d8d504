package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"xft/internal/store"
)

var ErrTransactionNotFound error = errors.New("transaction not found")

const transactionsCollection = "transactions"

type TransactionRepository struct {
	transactions *store.Collection[Transaction]
}

func NewTransactionRepository(s *store.Store) *TransactionRepository {
	return &TransactionRepository{
		transactions: store.NewCollection[Transaction](s, transactionsCollection),
	}
}

// ListByUser returns the user's transactions, most recent first. Records with
// equal timestamps keep their insertion order.
func (r *TransactionRepository) ListByUser(ctx context.Context, userID string) ([]Transaction, error) {
	all, err := r.transactions.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("read transactions: %w", err)
	}

	owned := make([]Transaction, 0, len(all))
	for _, tx := range all {
		if tx.UserID == userID {
			owned = append(owned, tx)
		}
	}

	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].Timestamp.After(owned[j].Timestamp)
	})

	return owned, nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id string) (Transaction, error) {
	tx, ok, err := r.transactions.ReadOne(ctx, id)
	if err != nil {
		return Transaction{}, fmt.Errorf("read transaction: %w", err)
	}
	if !ok {
		return Transaction{}, ErrTransactionNotFound
	}
	return tx, nil
}

func (r *TransactionRepository) Save(ctx context.Context, tx Transaction) (Transaction, error) {
	saved, err := r.transactions.Save(ctx, tx)
	if err != nil {
		return Transaction{}, fmt.Errorf("save transaction: %w", err)
	}
	return saved, nil
}
