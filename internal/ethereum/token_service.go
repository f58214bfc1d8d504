package ethereum

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

const defaultDecimals uint8 = 18

const erc20ABI = `[
	{"constant":true,"inputs":[{"name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"type":"function"},
	{"constant":true,"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"type":"function"},
	{"constant":true,"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"type":"function"}
]`

// TokenService reads XFT token state from the chain. It never submits
// transactions.
type TokenService struct {
	client   EthClient
	contract common.Address
	abi      abi.ABI

	mu       sync.Mutex
	decimals uint8
	loaded   bool
}

func NewTokenService(client EthClient, contractAddress string) (*TokenService, error) {
	parsed, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		return nil, fmt.Errorf("parse erc20 abi: %w", err)
	}

	return &TokenService{
		client:   client,
		contract: common.HexToAddress(contractAddress),
		abi:      parsed,
	}, nil
}

// GetBalance returns the token balance of address as a decimal string scaled
// by the token's decimals.
func (s *TokenService) GetBalance(ctx context.Context, address string) (string, error) {
	raw, err := s.call(ctx, "balanceOf", common.HexToAddress(address))
	if err != nil {
		return "", fmt.Errorf("call balanceOf: %w", err)
	}

	out, err := s.abi.Unpack("balanceOf", raw)
	if err != nil {
		return "", fmt.Errorf("unpack balanceOf result: %w", err)
	}

	balance, ok := out[0].(*big.Int)
	if !ok {
		return "", errors.New("balanceOf result is not an integer")
	}

	return formatUnits(balance, s.tokenDecimals(ctx)), nil
}

// tokenDecimals fetches and caches the token's decimals, falling back to the
// common default when the contract does not answer.
func (s *TokenService) tokenDecimals(ctx context.Context) uint8 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return s.decimals
	}

	raw, err := s.call(ctx, "decimals")
	if err != nil {
		return defaultDecimals
	}
	out, err := s.abi.Unpack("decimals", raw)
	if err != nil {
		return defaultDecimals
	}
	decimals, ok := out[0].(uint8)
	if !ok {
		return defaultDecimals
	}

	s.decimals = decimals
	s.loaded = true
	return decimals
}

func (s *TokenService) call(ctx context.Context, method string, args ...any) ([]byte, error) {
	data, err := s.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}

	return s.client.CallContract(ctx, ethereum.CallMsg{
		To:   &s.contract,
		Data: data,
	}, nil)
}

// formatUnits renders a raw token amount as a decimal string, trimming
// trailing fractional zeros.
func formatUnits(amount *big.Int, decimals uint8) string {
	if decimals == 0 {
		return amount.String()
	}

	div := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	whole, frac := new(big.Int).QuoRem(amount, div, new(big.Int))

	if frac.Sign() == 0 {
		return whole.String()
	}

	fracStr := frac.String()
	for len(fracStr) < int(decimals) {
		fracStr = "0" + fracStr
	}
	fracStr = strings.TrimRight(fracStr, "0")

	return whole.String() + "." + fracStr
}
