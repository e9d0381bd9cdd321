package handlers

import (
	"context"
	"net/http"
	"time"

	"classtrade/src/utils"
)

// RefreshQuotes triggers a quote snapshot refresh outside the cron schedule.
func (h *Handler) RefreshQuotes(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(utils.WithLogger(r.Context(), h.Logger), 30*time.Second)
	defer cancel()

	count, err := h.Controller.RefreshQuoteSnapshot(ctx)
	if err != nil {
		utils.WriteError(w, utils.InternalServerError(err.Error()))
		return
	}
	h.respond(w, r, map[string]int{"symbols": count}, http.StatusOK)
}
