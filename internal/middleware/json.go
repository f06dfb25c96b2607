package middleware

import (
	"encoding/json"
	"net/http"

	"hr-payroll/internal/model"
)

// errorBody is the failure envelope the API answers with.
func errorBody(code string, message string) []byte {
	body, _ := json.Marshal(model.APIResponse{
		Success: false,
		Error:   &model.APIError{Code: code, Message: message},
	})
	return body
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(errorBody(code, message), '\n'))
}
