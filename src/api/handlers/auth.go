package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"classtrade/src/schemas"
)

const sessionDuration = 24 * time.Hour

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	var req schemas.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	account, err := h.Controller.RegisterTeacher(ctx, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	token, err := h.issueToken(account.ID, string(account.Role))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, &schemas.TokenResponse{
		Token:     token,
		AccountID: account.ID,
		Role:      string(account.Role),
	}, http.StatusCreated)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	var req schemas.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	account, err := h.Controller.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	token, err := h.issueToken(account.ID, string(account.Role))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, &schemas.TokenResponse{
		Token:     token,
		AccountID: account.ID,
		Role:      string(account.Role),
	}, http.StatusOK)
}

func (h *Handler) issueToken(accountID, role string) (string, error) {
	now := time.Now().UTC()
	_, token, err := h.TokenAuth.Encode(map[string]interface{}{
		"sub":  accountID,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(sessionDuration).Unix(),
	})
	return token, err
}
