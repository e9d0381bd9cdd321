package handlers

import (
	"net/http"
)

func (h *Handler) EvaluateAchievements(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	actor, err := h.identity(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	result, err := h.Controller.EvaluateAchievements(ctx, actor.AccountID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, result, http.StatusOK)
}
