package handler

import (
	"errors"
	"net/http"

	"xft/internal/core"
)

func (h *XFTHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	requestId := requestID(r)

	ident, ok := h.identity(w, r, requestId)
	if !ok {
		return
	}

	address := r.PathValue("address")
	if address == "" {
		h.respond(w, Response{
			Error: "Address is required",
		}, http.StatusBadRequest, requestId)
		return
	}

	profile, err := h.users.GetProfile(r.Context(), ident, address)
	if err != nil {
		resp := Response{
			Error: "Failed to fetch user",
		}
		httpCode := http.StatusInternalServerError
		if errors.Is(err, core.ErrNotProfileOwner) {
			httpCode = http.StatusForbidden
			resp.Error = "Unauthorized to access this profile"
		} else if errors.Is(err, core.ErrUserNotFound) {
			httpCode = http.StatusNotFound
			resp.Error = "User not found"
		}

		h.respond(w, resp, httpCode, requestId)
		h.logs.Errorw("failed to get user profile",
			"error", err,
			"handler", GetUser,
			"request_id", requestId)
		return
	}

	h.respond(w, Response{
		Success: true,
		Data:    profile,
	}, http.StatusOK, requestId)
}

func (h *XFTHandler) HandleGetBalance(w http.ResponseWriter, r *http.Request) {
	requestId := requestID(r)

	address := r.PathValue("address")
	if address == "" {
		h.respond(w, Response{
			Error: "Address is required",
		}, http.StatusBadRequest, requestId)
		return
	}

	balance, err := h.users.GetBalance(r.Context(), address)
	if err != nil {
		h.respond(w, Response{
			Error: "Failed to fetch balance",
		}, http.StatusBadGateway, requestId)
		h.logs.Errorw("failed to fetch balance",
			"error", err,
			"handler", GetBalance,
			"request_id", requestId)
		return
	}

	h.respond(w, Response{
		Success: true,
		Data:    balance,
	}, http.StatusOK, requestId)
}
