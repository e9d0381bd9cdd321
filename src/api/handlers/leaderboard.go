package handlers

import (
	"net/http"

	"classtrade/src/schemas"
)

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	actor, err := h.identity(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	scope := schemas.LeaderboardScope(r.URL.Query().Get("scope"))
	if scope == "" {
		scope = schemas.ScopeGlobal
	}

	board, err := h.Controller.GetLeaderboard(ctx, actor, scope)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, board, http.StatusOK)
}

func (h *Handler) ExportLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	actor, err := h.identity(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	file, err := h.Controller.ExportLeaderboard(ctx, actor)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="leaderboard.xlsx"`)
	if err := file.Write(w); err != nil {
		h.Logger.Errorf("failed to stream leaderboard export: %v", err)
	}
}
