package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"hr-payroll/internal/model"
	"hr-payroll/pkg/apierror"
)

const maxBodyBytes = 1 << 20

// writeSuccess encodes the envelope before writing the status, so a value
// that cannot be encoded becomes a 500 instead of an empty success.
func writeSuccess(w http.ResponseWriter, status int, data any, meta *model.Meta) {
	body, err := json.Marshal(model.APIResponse{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
	if err != nil {
		writeError(w, fmt.Errorf("encode response: %w", err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeSuccess(w, status, model.MessageData{Message: message}, nil)
}

var notFound = []struct {
	err     error
	message string
}{
	{model.ErrUserNotFound, "User not found"},
	{model.ErrTenantNotFound, "Tenant not found"},
	{model.ErrDepartmentNotFound, "Department not found"},
	{model.ErrDesignationNotFound, "Designation not found"},
	{model.ErrEmployeeNotFound, "Employee not found"},
	{model.ErrAttendanceNotFound, "Attendance not found"},
	{model.ErrLeaveNotFound, "Leave not found"},
	{model.ErrPayrollNotFound, "Payroll not found"},
	{model.ErrPayslipNotFound, "Payslip not found"},
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := &model.APIError{
		Code:    "INTERNAL_ERROR",
		Message: "Internal server error",
	}

	var apiErr *apierror.APIError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatus
		body.Code = apiErr.Code
		body.Message = apiErr.Message
		body.Details = apiErr.Details
	case errors.Is(err, model.ErrDuplicate):
		status = http.StatusBadRequest
		body.Code = "BAD_REQUEST"
		body.Message = "Record already exists"
	case errors.Is(err, model.ErrTenantMissing):
		status = http.StatusBadRequest
		body.Code = "BAD_REQUEST"
		body.Message = "Tenant ID required"
	case errors.Is(err, model.ErrInvalidInput):
		status = http.StatusBadRequest
		body.Code = "BAD_REQUEST"
		body.Message = "Invalid input"
	case errors.Is(err, model.ErrUnauthorized):
		status = http.StatusUnauthorized
		body.Code = "UNAUTHORIZED"
		body.Message = "Unauthorized"
	case errors.Is(err, model.ErrForbidden):
		status = http.StatusForbidden
		body.Code = "FORBIDDEN"
		body.Message = "Insufficient permissions"
	default:
		matched := false
		for _, nf := range notFound {
			if errors.Is(err, nf.err) {
				status = http.StatusNotFound
				body.Code = "NOT_FOUND"
				body.Message = nf.message
				matched = true
				break
			}
		}
		if !matched {
			slog.Error("unhandled error in writeError", "error", err.Error())
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error:   body,
	})
}

// decodeJSON reads a JSON body into dst. An empty body leaves dst untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	defer r.Body.Close()

	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}

	writeError(w, apierror.BadRequest("Invalid JSON body", err.Error()))
	return false
}

func parseIntOrDefault(raw string, fallback int) int {
	if strings.TrimSpace(raw) == "" {
		return fallback
	}

	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}

	return v
}
