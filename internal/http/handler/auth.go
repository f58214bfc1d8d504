package handler

import (
	"errors"
	"net/http"

	"xft/internal/core"
	"xft/internal/http/payload"
	"xft/internal/repository"
)

type loginData struct {
	Token string          `json:"token"`
	User  repository.User `json:"user"`
}

func (h *XFTHandler) HandleGetNonce(w http.ResponseWriter, r *http.Request) {
	requestId := requestID(r)

	address := r.PathValue("address")
	if address == "" {
		h.respond(w, Response{
			Error: "Address is required",
		}, http.StatusBadRequest, requestId)
		return
	}

	challenge, err := h.auth.IssueNonce(r.Context(), address)
	if err != nil {
		h.respond(w, Response{
			Error: "Failed to get authentication nonce",
		}, http.StatusInternalServerError, requestId)
		h.logs.Errorw("failed to issue nonce",
			"error", err,
			"handler", GetNonce,
			"request_id", requestId)
		return
	}

	h.respond(w, Response{
		Success: true,
		Data:    challenge,
	}, http.StatusOK, requestId)
}

func (h *XFTHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	requestId := requestID(r)

	var body payload.LoginRequest
	if err := h.requestValidator.DecodeAndValidateJSONPayload(r, &body); err != nil {
		h.respond(w, Response{
			Error: "Address and signature are required",
		}, http.StatusBadRequest, requestId)
		h.logs.Errorw("failed to decode and validate login payload",
			"error", err,
			"handler", Login,
			"request_id", requestId)
		return
	}

	result, err := h.auth.Login(r.Context(), body.Address, body.Signature)
	if err != nil {
		resp := Response{
			Error: "Authentication failed",
		}
		httpCode := http.StatusInternalServerError
		if errors.Is(err, core.ErrInvalidSignature) {
			httpCode = http.StatusUnauthorized
			resp.Error = "Invalid signature"
		}

		h.respond(w, resp, httpCode, requestId)
		h.logs.Errorw("login failed",
			"error", err,
			"handler", Login,
			"request_id", requestId)
		return
	}

	httpCode := http.StatusOK
	if result.FirstLogin {
		httpCode = http.StatusCreated
	}

	h.respond(w, Response{
		Success: true,
		Data: loginData{
			Token: result.Token,
			User:  result.User,
		},
	}, httpCode, requestId)
}
