package handlers

import (
	"encoding/json"
	"net/http"

	"classtrade/src/schemas"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) AddStudent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	actor, err := h.identity(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	var req schemas.AddStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	student, err := h.Controller.AddStudent(ctx, actor, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, student, http.StatusCreated)
}

func (h *Handler) RemoveStudent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	actor, err := h.identity(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	if err := h.Controller.RemoveStudent(ctx, actor, chi.URLParam(r, "id")); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, map[string]bool{"success": true}, http.StatusOK)
}

func (h *Handler) AdjustStudentCash(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	actor, err := h.identity(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	var req schemas.AdjustCashRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.Controller.AdjustStudentCash(ctx, actor, chi.URLParam(r, "id"), req.Delta)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, result, http.StatusOK)
}

func (h *Handler) UpdateStudentCredentials(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	actor, err := h.identity(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	var req schemas.UpdateCredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Controller.UpdateStudentCredentials(ctx, actor, chi.URLParam(r, "id"), req.Password); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, map[string]bool{"success": true}, http.StatusOK)
}
