package handler

import (
	"net/http"

	"hr-payroll/internal/model"
	"hr-payroll/internal/repository"
	"hr-payroll/internal/service"
)

type AuditHandler struct {
	service *service.AuditService
}

func NewAuditHandler(service *service.AuditService) *AuditHandler {
	return &AuditHandler{service: service}
}

func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntOrDefault(r.URL.Query().Get("limit"), repository.DefaultAuditLimit)
	if limit <= 0 {
		limit = repository.DefaultAuditLimit
	}
	if limit > repository.MaxAuditLimit {
		limit = repository.MaxAuditLimit
	}

	logs, err := h.service.List(r.Context(), tenantID(r), limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, logs, &model.Meta{Limit: limit, Total: len(logs)})
}
