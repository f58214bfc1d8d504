package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"xft/internal/repository"

	"go.uber.org/zap"
)

var ErrNotProfileOwner error = errors.New("not the profile owner")

// UserService serves user profiles and on-chain balances.
type UserService struct {
	logs    *zap.SugaredLogger
	users   UserStore
	balance BalanceService
}

func NewUserService(logger *zap.SugaredLogger, users UserStore, balance BalanceService) *UserService {
	return &UserService{
		logs:    logger,
		users:   users,
		balance: balance,
	}
}

// GetProfile returns a user's profile, nonce withheld. Callers may only read
// their own profile.
func (s *UserService) GetProfile(ctx context.Context, ident Identity, address string) (Profile, error) {
	addr := strings.ToLower(address)
	if ident.Address != addr {
		return Profile{}, ErrNotProfileOwner
	}

	user, err := s.users.GetByAddress(ctx, addr)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return Profile{}, ErrUserNotFound
		}
		return Profile{}, fmt.Errorf("get user: %w", err)
	}

	return Profile{
		ID:        user.ID,
		Address:   user.Address,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}, nil
}

// GetBalance returns the on-chain token balance for any address; it requires
// no authentication and touches no local state.
func (s *UserService) GetBalance(ctx context.Context, address string) (Balance, error) {
	balance, err := s.balance.GetBalance(ctx, address)
	if err != nil {
		return Balance{}, fmt.Errorf("fetch balance: %w", err)
	}

	return Balance{
		Address: address,
		Balance: balance,
	}, nil
}
