package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hr-payroll/internal/model"
	"hr-payroll/internal/service"
)

type DesignationHandler struct {
	service *service.DesignationService
}

func NewDesignationHandler(service *service.DesignationService) *DesignationHandler {
	return &DesignationHandler{service: service}
}

func (h *DesignationHandler) List(w http.ResponseWriter, r *http.Request) {
	designations, err := h.service.List(r.Context(), tenantID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, designations, nil)
}

func (h *DesignationHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.service.Get(r.Context(), tenantID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, g, nil)
}

func (h *DesignationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload model.DesignationRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	g, err := h.service.Create(r.Context(), actorFromRequest(r), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, g, nil)
}

func (h *DesignationHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload model.DesignationRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	g, err := h.service.Update(r.Context(), actorFromRequest(r), chi.URLParam(r, "id"), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, g, nil)
}

func (h *DesignationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), actorFromRequest(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Designation deleted successfully")
}
