package middleware

import (
	"net/http"
	"time"
)

const defaultRequestTimeout = 30 * time.Second

// Timeout answers 503 REQUEST_TIMEOUT in the API envelope when next runs past
// timeout. The handler's own headers win when it finishes in time.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	message := string(errorBody("REQUEST_TIMEOUT", "Request timed out"))

	return func(next http.Handler) http.Handler {
		guarded := http.TimeoutHandler(next, timeout, message)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			guarded.ServeHTTP(w, r)
		})
	}
}
