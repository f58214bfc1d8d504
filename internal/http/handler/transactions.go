package handler

import (
	"errors"
	"net/http"

	"xft/internal/core"
	"xft/internal/http/payload"
	"xft/internal/repository"
)

func (h *XFTHandler) HandleGetTransactions(w http.ResponseWriter, r *http.Request) {
	requestId := requestID(r)

	ident, ok := h.identity(w, r, requestId)
	if !ok {
		return
	}

	transactions, err := h.transactions.List(r.Context(), ident)
	if err != nil {
		h.respond(w, Response{
			Error: "Failed to fetch transactions",
		}, http.StatusInternalServerError, requestId)
		h.logs.Errorw("failed to list transactions",
			"error", err,
			"handler", GetTransactions,
			"request_id", requestId)
		return
	}

	h.respond(w, Response{
		Success: true,
		Data: map[string][]repository.Transaction{
			"transactions": transactions,
		},
	}, http.StatusOK, requestId)
}

func (h *XFTHandler) HandleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	requestId := requestID(r)

	ident, ok := h.identity(w, r, requestId)
	if !ok {
		return
	}

	var body payload.CreateTransactionRequest
	if err := h.requestValidator.DecodeAndValidateJSONPayload(r, &body); err != nil {
		h.respond(w, Response{
			Error: "Recipient address and amount are required",
		}, http.StatusBadRequest, requestId)
		h.logs.Errorw("failed to decode and validate transaction payload",
			"error", err,
			"handler", CreateTransaction,
			"request_id", requestId)
		return
	}

	transaction, err := h.transactions.Create(r.Context(), ident, body.Recipient, body.Amount)
	if err != nil {
		resp := Response{
			Error: "Failed to create transaction",
		}
		httpCode := http.StatusInternalServerError
		if errors.Is(err, core.ErrMissingField) {
			httpCode = http.StatusBadRequest
			resp.Error = "Recipient address and amount are required"
		}

		h.respond(w, resp, httpCode, requestId)
		h.logs.Errorw("failed to create transaction",
			"error", err,
			"handler", CreateTransaction,
			"request_id", requestId)
		return
	}

	h.respond(w, Response{
		Success: true,
		Data: map[string]repository.Transaction{
			"transaction": transaction,
		},
	}, http.StatusCreated, requestId)
}

func (h *XFTHandler) HandleGetTransaction(w http.ResponseWriter, r *http.Request) {
	requestId := requestID(r)

	ident, ok := h.identity(w, r, requestId)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		h.respond(w, Response{
			Error: "Transaction ID is required",
		}, http.StatusBadRequest, requestId)
		return
	}

	transaction, err := h.transactions.GetByID(r.Context(), ident, id)
	if err != nil {
		resp := Response{
			Error: "Failed to fetch transaction",
		}
		httpCode := http.StatusInternalServerError
		if errors.Is(err, core.ErrTransactionNotFound) {
			httpCode = http.StatusNotFound
			resp.Error = "Transaction not found"
		} else if errors.Is(err, core.ErrNotTransactionOwner) {
			httpCode = http.StatusForbidden
			resp.Error = "Unauthorized to access this transaction"
		}

		h.respond(w, resp, httpCode, requestId)
		h.logs.Errorw("failed to get transaction",
			"error", err,
			"handler", GetTransaction,
			"request_id", requestId)
		return
	}

	h.respond(w, Response{
		Success: true,
		Data: map[string]repository.Transaction{
			"transaction": transaction,
		},
	}, http.StatusOK, requestId)
}
