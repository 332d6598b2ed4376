package audit

import "net/http"

// Middleware records a MUTATION event for every write request. Reads
// are left to the request log to keep the audit stream small.
func Middleware(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost, http.MethodPut, http.MethodDelete:
				_ = logger.Record(r.Context(), EventMutation, r.Method, r.URL.Path, nil)
			}
			next.ServeHTTP(w, r)
		})
	}
}
