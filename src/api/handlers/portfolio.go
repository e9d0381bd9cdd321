package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	actor, err := h.identity(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	portfolio, err := h.Controller.GetPortfolio(ctx, actor, "")
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, portfolio, http.StatusOK)
}

// GetStudentPortfolio lets a teacher read a roster student's portfolio.
func (h *Handler) GetStudentPortfolio(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	actor, err := h.identity(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	portfolio, err := h.Controller.GetPortfolio(ctx, actor, chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, portfolio, http.StatusOK)
}

func (h *Handler) GetTradeHistory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	actor, err := h.identity(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, _ = strconv.Atoi(limitStr)
	}

	history, err := h.Controller.GetTradeHistory(ctx, actor.AccountID, limit)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, history, http.StatusOK)
}
