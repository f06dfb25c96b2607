package handler

import (
	"net/http"

	"hr-payroll/internal/model"
	"hr-payroll/internal/service"
)

type AttendanceHandler struct {
	service *service.AttendanceService
}

func NewAttendanceHandler(service *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: service}
}

type attendanceDay struct {
	Date        string             `json:"date"`
	Attendances []model.Attendance `json:"attendances"`
}

type attendanceRecorded struct {
	Message    string           `json:"message"`
	Attendance model.Attendance `json:"attendance"`
}

func (h *AttendanceHandler) List(w http.ResponseWriter, r *http.Request) {
	records, day, err := h.service.ListDay(r.Context(), tenantID(r), r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, err)
		return
	}
	if records == nil {
		records = []model.Attendance{}
	}
	writeSuccess(w, http.StatusOK, attendanceDay{Date: day, Attendances: records}, nil)
}

// Record answers 201 when the call opened the day's record and 200 when it
// updated an existing one.
func (h *AttendanceHandler) Record(w http.ResponseWriter, r *http.Request) {
	var payload model.AttendanceRequest
	if !decodeJSON(w, r, &payload) {
		return
	}

	record, created, err := h.service.Record(r.Context(), actorFromRequest(r), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeSuccess(w, status, attendanceRecorded{Message: service.ActionMessage(payload.Action), Attendance: record}, nil)
}
