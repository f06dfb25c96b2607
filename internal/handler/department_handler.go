package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hr-payroll/internal/model"
	"hr-payroll/internal/service"
)

type DepartmentHandler struct {
	service *service.DepartmentService
}

func NewDepartmentHandler(service *service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{service: service}
}

func (h *DepartmentHandler) List(w http.ResponseWriter, r *http.Request) {
	departments, err := h.service.List(r.Context(), tenantID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, departments, nil)
}

func (h *DepartmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	dept, err := h.service.Get(r.Context(), tenantID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, dept, nil)
}

func (h *DepartmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload model.DepartmentRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	dept, err := h.service.Create(r.Context(), actorFromRequest(r), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, dept, nil)
}

func (h *DepartmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload model.DepartmentRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	dept, err := h.service.Update(r.Context(), actorFromRequest(r), chi.URLParam(r, "id"), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, dept, nil)
}

func (h *DepartmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), actorFromRequest(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Department deleted successfully")
}
