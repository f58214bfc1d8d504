package handler

import (
	"encoding/json"
	"net/http"

	"xft/internal/core"
	"xft/internal/http/handler/middleware"

	"go.uber.org/zap"
)

var (
	Health            = "GET /health"
	GetNonce          = "GET /api/v1/auth/nonce/{address}"
	Login             = "POST /api/v1/auth/login"
	GetUser           = "GET /api/v1/users/{address}"
	GetBalance        = "GET /api/v1/users/{address}/balance"
	GetTransactions   = "GET /api/v1/transactions"
	CreateTransaction = "POST /api/v1/transactions"
	GetTransaction    = "GET /api/v1/transactions/{id}"
)

type XFTHandler struct {
	logs             *zap.SugaredLogger
	requestValidator RequestValidator
	auth             AuthService
	users            UserService
	transactions     TransactionService
}

func NewXFTHandler(
	logger *zap.SugaredLogger,
	requestValidator RequestValidator,
	authService AuthService,
	userService UserService,
	transactionService TransactionService,
) *XFTHandler {
	return &XFTHandler{
		logs:             logger,
		requestValidator: requestValidator,
		auth:             authService,
		users:            userService,
		transactions:     transactionService,
	}
}

func (h *XFTHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.respond(w, map[string]string{"status": "ok"}, http.StatusOK, requestID(r))
}

func (h *XFTHandler) respond(w http.ResponseWriter, resp any, code int, requestId string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, oopsErr, http.StatusInternalServerError)
		h.logs.Errorw("failed to encode response",
			"error", err,
			"request_id", requestId)
	}
}

func requestID(r *http.Request) string {
	if v, ok := r.Context().Value(middleware.RequestIDKey).(string); ok {
		return v
	}
	return ""
}

// identity pulls the authenticated caller from the request context; a missing
// identity means the route was wired without the auth middleware.
func (h *XFTHandler) identity(w http.ResponseWriter, r *http.Request, requestId string) (core.Identity, bool) {
	ident, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		h.respond(w, Response{
			Error: "Authentication required",
		}, http.StatusUnauthorized, requestId)
	}
	return ident, ok
}
