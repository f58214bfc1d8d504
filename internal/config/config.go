package config

import (
	"errors"
	"fmt"
	"os"
)

var errEnvVarNotFound error = errors.New("environment variable not found")

const (
	apiPortEnvKey   = "API_PORT"
	rpcURLEnvKey    = "RPC_URL"
	contractEnvKey  = "CONTRACT_ADDRESS"
	jwtSecretEnvKey = "JWT_SECRET"
	dataDirEnvKey   = "DATA_DIR"
)

const (
	defaultPort    = "3000"
	defaultDataDir = "data"
)

type App struct {
	Port            string
	RPCURL          string
	ContractAddress string
	JWTSecret       string
	DataDir         string
}

func NewApp() (App, error) {

	jwtSecret, ok := os.LookupEnv(jwtSecretEnvKey)
	if !ok {
		return App{}, fmt.Errorf("%w: %s", errEnvVarNotFound, jwtSecretEnvKey)
	}

	rpcURL, ok := os.LookupEnv(rpcURLEnvKey)
	if !ok {
		return App{}, fmt.Errorf("%w: %s", errEnvVarNotFound, rpcURLEnvKey)
	}

	contractAddress, ok := os.LookupEnv(contractEnvKey)
	if !ok {
		return App{}, fmt.Errorf("%w: %s", errEnvVarNotFound, contractEnvKey)
	}

	port, ok := os.LookupEnv(apiPortEnvKey)
	if !ok {
		port = defaultPort
	}

	dataDir, ok := os.LookupEnv(dataDirEnvKey)
	if !ok {
		dataDir = defaultDataDir
	}

	return App{
		Port:            port,
		RPCURL:          rpcURL,
		ContractAddress: contractAddress,
		JWTSecret:       jwtSecret,
		DataDir:         dataDir,
	}, nil
}
