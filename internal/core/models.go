package core

import (
	"time"

	"xft/internal/repository"
)

// Identity is the authenticated caller as asserted by a session token.
type Identity struct {
	UserID  string
	Address string
}

// NonceChallenge is what a wallet must sign to log in.
type NonceChallenge struct {
	Nonce   string `json:"nonce"`
	Message string `json:"message"`
}

// AuthResult is a successful login. FirstLogin is true when this address has
// never authenticated before.
type AuthResult struct {
	Token      string
	User       repository.User
	FirstLogin bool
}

// Profile is a user record with the nonce withheld.
type Profile struct {
	ID        string    `json:"id"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Balance struct {
	Address string `json:"address"`
	Balance string `json:"balance"`
}
