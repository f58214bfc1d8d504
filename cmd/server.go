package cmd

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"xft/internal/config"
	"xft/internal/core"
	"xft/internal/ethereum"
	"xft/internal/http/handler"
	"xft/internal/http/handler/middleware"
	"xft/internal/http/payload"
	"xft/internal/http/server"
	"xft/internal/repository"
	"xft/internal/store"
	"xft/pkg/jwt"
	"xft/pkg/log"

	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap/zapcore"
)

func Start() error {
	logger := log.NewZapLogger("xft", zapcore.InfoLevel)

	config, err := config.NewApp()
	if err != nil {
		logger.Errorw("failed to create config", "error", err)
		return err
	}

	fileStore, err := store.NewStore(config.DataDir)
	if err != nil {
		logger.Errorw("failed to open data directory", "error", err)
		return err
	}

	// jwt service
	jwtService := jwt.NewJWTService([]byte(config.JWTSecret))

	// repositories
	users := repository.NewUserRepository(fileStore)
	transactions := repository.NewTransactionRepository(fileStore)

	client, err := ethclient.Dial(config.RPCURL)
	if err != nil {
		logger.Errorw("rpc node connection failed", "error", err)
		return err
	}

	tokenService, err := ethereum.NewTokenService(client, config.ContractAddress)
	if err != nil {
		logger.Errorw("failed to create token service", "error", err)
		return err
	}

	// domain services
	authService := core.NewAuthService(logger, users, ethereum.Verifier{}, jwtService)
	userService := core.NewUserService(logger, users, tokenService)
	transactionService := core.NewTransactionService(logger, transactions)

	// handler
	xftHlr := handler.NewXFTHandler(
		logger,
		payload.DecodeValidator{},
		authService,
		userService,
		transactionService)

	authMw := middleware.NewAuthMiddleware(logger, jwtService)

	// register routes
	mux := http.NewServeMux()
	mux.HandleFunc(handler.Health, xftHlr.HandleHealth)
	mux.HandleFunc(handler.GetNonce, xftHlr.HandleGetNonce)
	mux.HandleFunc(handler.Login, xftHlr.HandleLogin)
	mux.HandleFunc(handler.GetBalance, xftHlr.HandleGetBalance)
	mux.Handle(handler.GetUser, authMw.RequireAuth(http.HandlerFunc(xftHlr.HandleGetUser)))
	mux.Handle(handler.GetTransactions, authMw.RequireAuth(http.HandlerFunc(xftHlr.HandleGetTransactions)))
	mux.Handle(handler.CreateTransaction, authMw.RequireAuth(http.HandlerFunc(xftHlr.HandleCreateTransaction)))
	mux.Handle(handler.GetTransaction, authMw.RequireAuth(http.HandlerFunc(xftHlr.HandleGetTransaction)))

	// middleware
	hdlr := middleware.NewLoggingMiddleware(logger).Logging(mux)
	hdlr = middleware.NewCORSMiddleware().CORS(hdlr)
	hdlr = middleware.NewRequestIDMiddleware().RequestID(hdlr)

	srv := server.NewHTTP(logger, hdlr, config.Port)
	return run(srv)
}

func run(server *server.HTTPServer) error {
	// expect a signal to gracefully shutdown the server
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	errChan := server.Run()

	var err error
	select {
	case <-sig:
	case err = <-errChan:
	}

	sdErr := server.Shutdown()
	if err == http.ErrServerClosed && sdErr != nil {
		return fmt.Errorf("server shutdown: %w", sdErr)
	}

	return err
}
