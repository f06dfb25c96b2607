package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hr-payroll/internal/model"
	"hr-payroll/internal/service"
)

type EmployeeHandler struct {
	service *service.EmployeeService
}

func NewEmployeeHandler(service *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.service.List(r.Context(), tenantID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, employees, nil)
}

func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	emp, err := h.service.Get(r.Context(), tenantID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, emp, nil)
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload model.CreateEmployeeRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	emp, err := h.service.Create(r.Context(), actorFromRequest(r), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, emp, nil)
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload model.UpdateEmployeeRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	emp, err := h.service.Update(r.Context(), actorFromRequest(r), chi.URLParam(r, "id"), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, emp, nil)
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), actorFromRequest(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Employee deleted successfully")
}
