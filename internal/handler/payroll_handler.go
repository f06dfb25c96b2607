package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hr-payroll/internal/model"
	"hr-payroll/internal/service"
)

type PayrollHandler struct {
	service *service.PayrollService
}

func NewPayrollHandler(service *service.PayrollService) *PayrollHandler {
	return &PayrollHandler{service: service}
}

func (h *PayrollHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	payrolls, err := h.service.List(r.Context(), tenantID(r), model.PayrollFilter{
		Month:      query.Get("month"),
		EmployeeID: query.Get("employeeId"),
		Status:     query.Get("status"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if payrolls == nil {
		payrolls = []model.Payroll{}
	}
	writeSuccess(w, http.StatusOK, payrolls, nil)
}

func (h *PayrollHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var payload model.PayrollRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	payroll, err := h.service.Generate(r.Context(), actorFromRequest(r), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, payroll, nil)
}

func (h *PayrollHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var payload model.PayrollStatusRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	payroll, err := h.service.UpdateStatus(r.Context(), actorFromRequest(r), chi.URLParam(r, "id"), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, payroll, nil)
}

func (h *PayrollHandler) Payslip(w http.ResponseWriter, r *http.Request) {
	slip, err := h.service.Payslip(r.Context(), tenantID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, slip, nil)
}
