package handler

import (
	"context"
	"net/http"

	"xft/internal/core"
	"xft/internal/repository"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

//counterfeiter:generate -o fake -fake-name AuthService . AuthService
type AuthService interface {
	IssueNonce(ctx context.Context, address string) (core.NonceChallenge, error)
	Login(ctx context.Context, address, signature string) (core.AuthResult, error)
}

//counterfeiter:generate -o fake -fake-name UserService . UserService
type UserService interface {
	GetProfile(ctx context.Context, ident core.Identity, address string) (core.Profile, error)
	GetBalance(ctx context.Context, address string) (core.Balance, error)
}

//counterfeiter:generate -o fake -fake-name TransactionService . TransactionService
type TransactionService interface {
	List(ctx context.Context, ident core.Identity) ([]repository.Transaction, error)
	Create(ctx context.Context, ident core.Identity, recipient, amount string) (repository.Transaction, error)
	GetByID(ctx context.Context, ident core.Identity, id string) (repository.Transaction, error)
}

//counterfeiter:generate -o fake -fake-name RequestValidator . RequestValidator
type RequestValidator interface {
	DecodeAndValidateJSONPayload(r *http.Request, object any) error
}
