package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hr-payroll/internal/model"
	"hr-payroll/internal/service"
)

type LeaveHandler struct {
	service *service.LeaveService
}

func NewLeaveHandler(service *service.LeaveService) *LeaveHandler {
	return &LeaveHandler{service: service}
}

func (h *LeaveHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	leaves, err := h.service.List(r.Context(), tenantID(r), service.LeaveQuery{
		Status:     query.Get("status"),
		EmployeeID: query.Get("employeeId"),
		StartDate:  query.Get("startDate"),
		EndDate:    query.Get("endDate"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if leaves == nil {
		leaves = []model.Leave{}
	}
	writeSuccess(w, http.StatusOK, leaves, nil)
}

func (h *LeaveHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload model.LeaveRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	leave, err := h.service.Create(r.Context(), actorFromRequest(r), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, leave, nil)
}

func (h *LeaveHandler) Review(w http.ResponseWriter, r *http.Request) {
	var payload model.LeaveStatusRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	leave, err := h.service.Review(r.Context(), actorFromRequest(r), chi.URLParam(r, "id"), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, leave, nil)
}

func (h *LeaveHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), actorFromRequest(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Leave deleted successfully")
}
