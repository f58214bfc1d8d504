package core

import (
	"context"

	"xft/internal/repository"
	tokenIssuer "xft/pkg/jwt"

	"github.com/golang-jwt/jwt"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

//counterfeiter:generate -o fake -fake-name UserStore . UserStore
type UserStore interface {
	GetByAddress(ctx context.Context, address string) (repository.User, error)
	Save(ctx context.Context, user repository.User) (repository.User, error)
}

//counterfeiter:generate -o fake -fake-name TransactionStore . TransactionStore
type TransactionStore interface {
	ListByUser(ctx context.Context, userID string) ([]repository.Transaction, error)
	GetByID(ctx context.Context, id string) (repository.Transaction, error)
	Save(ctx context.Context, tx repository.Transaction) (repository.Transaction, error)
}

//counterfeiter:generate -o fake -fake-name JWTIssuer . JWTIssuer
type JWTIssuer interface {
	Generate(data tokenIssuer.TokenInfo) *jwt.Token
	Sign(token *jwt.Token) (string, error)
	Validate(token string) (jwt.MapClaims, error)
}

//counterfeiter:generate -o fake -fake-name SignatureVerifier . SignatureVerifier
type SignatureVerifier interface {
	Verify(address, message, signature string) bool
}

//counterfeiter:generate -o fake -fake-name BalanceService . BalanceService
type BalanceService interface {
	GetBalance(ctx context.Context, address string) (string, error)
}
