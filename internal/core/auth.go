package core

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"xft/internal/repository"
	tokenIssuer "xft/pkg/jwt"

	"go.uber.org/zap"
)

var ErrInvalidSignature error = errors.New("invalid signature")
var ErrUserNotFound error = errors.New("user not found")

const signMessagePrefix = "Sign this message to authenticate with XFT App: "

// The challenge keyspace matches what existing wallets already sign. It is
// small; see the hardening notes in DESIGN.md.
const nonceKeyspace = 1000000

// AuthService owns the nonce lifecycle and the login flow.
type AuthService struct {
	logs     *zap.SugaredLogger
	users    UserStore
	verifier SignatureVerifier
	issuer   JWTIssuer
}

func NewAuthService(logger *zap.SugaredLogger, users UserStore, verifier SignatureVerifier, issuer JWTIssuer) *AuthService {
	return &AuthService{
		logs:     logger,
		users:    users,
		verifier: verifier,
		issuer:   issuer,
	}
}

// SignMessage is the exact string a wallet must sign for the given nonce.
func SignMessage(nonce string) string {
	return signMessagePrefix + nonce
}

// IssueNonce returns the current challenge for an address, creating the user
// record on first contact. Issuing is idempotent: the nonce only changes on a
// successful login.
func (s *AuthService) IssueNonce(ctx context.Context, address string) (NonceChallenge, error) {
	user, err := s.fetchOrCreate(ctx, address)
	if err != nil {
		return NonceChallenge{}, err
	}

	return NonceChallenge{
		Nonce:   user.Nonce,
		Message: SignMessage(user.Nonce),
	}, nil
}

// Login authenticates an address. An address seen for the first time is
// trusted without a signature check; from the second login onward the caller
// must sign the current nonce. The nonce is rotated and persisted before the
// token is returned, so a captured signature can never authenticate twice.
func (s *AuthService) Login(ctx context.Context, address, signature string) (AuthResult, error) {
	addr := strings.ToLower(address)

	user, err := s.users.GetByAddress(ctx, addr)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return s.register(ctx, addr)
		}
		return AuthResult{}, fmt.Errorf("get user: %w", err)
	}

	if !s.verifier.Verify(addr, SignMessage(user.Nonce), signature) {
		return AuthResult{}, ErrInvalidSignature
	}

	firstLogin := user.UpdatedAt.Equal(user.CreatedAt)

	nonce, err := generateNonce()
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate nonce: %w", err)
	}
	user.Nonce = nonce
	user.UpdatedAt = time.Now().UTC()

	user, err = s.users.Save(ctx, user)
	if err != nil {
		return AuthResult{}, fmt.Errorf("rotate nonce: %w", err)
	}

	token, err := s.mint(user)
	if err != nil {
		return AuthResult{}, err
	}

	s.logs.Infow("user logged in", "address", user.Address)

	return AuthResult{
		Token:      token,
		User:       user,
		FirstLogin: firstLogin,
	}, nil
}

// register handles trust-on-first-use: an unknown address gets a credential
// by merely presenting itself. The security guarantee of this protocol starts
// with the second login.
func (s *AuthService) register(ctx context.Context, addr string) (AuthResult, error) {
	user, err := s.fetchOrCreate(ctx, addr)
	if err != nil {
		return AuthResult{}, err
	}

	token, err := s.mint(user)
	if err != nil {
		return AuthResult{}, err
	}

	s.logs.Infow("user registered on first login", "address", user.Address)

	return AuthResult{
		Token:      token,
		User:       user,
		FirstLogin: true,
	}, nil
}

func (s *AuthService) fetchOrCreate(ctx context.Context, address string) (repository.User, error) {
	addr := strings.ToLower(address)

	user, err := s.users.GetByAddress(ctx, addr)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return repository.User{}, fmt.Errorf("get user: %w", err)
	}

	nonce, err := generateNonce()
	if err != nil {
		return repository.User{}, fmt.Errorf("generate nonce: %w", err)
	}

	now := time.Now().UTC()
	user = repository.User{
		ID:        addr,
		Address:   addr,
		Nonce:     nonce,
		CreatedAt: now,
		UpdatedAt: now,
	}

	saved, err := s.users.Save(ctx, user)
	if err != nil {
		return repository.User{}, fmt.Errorf("create user: %w", err)
	}

	s.logs.Infow("user created", "address", addr)
	return saved, nil
}

func (s *AuthService) mint(user repository.User) (string, error) {
	token := s.issuer.Generate(tokenIssuer.TokenInfo{
		Subject: user.ID,
		Address: user.Address,
	})

	signed, err := s.issuer.Sign(token)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

func generateNonce() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(nonceKeyspace))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
