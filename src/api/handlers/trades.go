package handlers

import (
	"encoding/json"
	"net/http"

	"classtrade/src/schemas"
)

func (h *Handler) ExecuteTrade(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	actor, err := h.identity(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	var req schemas.TradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.Controller.ExecuteTrade(ctx, actor.AccountID, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, result, http.StatusOK)
}
