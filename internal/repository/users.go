package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"xft/internal/store"
)

var ErrUserNotFound error = errors.New("user not found")

const usersCollection = "users"

type UserRepository struct {
	users *store.Collection[User]
}

func NewUserRepository(s *store.Store) *UserRepository {
	return &UserRepository{
		users: store.NewCollection[User](s, usersCollection),
	}
}

// GetByAddress looks a user up by wallet address, case-insensitively.
func (r *UserRepository) GetByAddress(ctx context.Context, address string) (User, error) {
	user, ok, err := r.users.ReadOne(ctx, strings.ToLower(address))
	if err != nil {
		return User{}, fmt.Errorf("read user: %w", err)
	}
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (r *UserRepository) Save(ctx context.Context, user User) (User, error) {
	saved, err := r.users.Save(ctx, user)
	if err != nil {
		return User{}, fmt.Errorf("save user: %w", err)
	}
	return saved, nil
}
