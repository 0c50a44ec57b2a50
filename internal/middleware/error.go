package middleware

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// RespondWithJSON sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// RespondWithInternalError sends a bare 500 with no body. Failures are not
// differentiated on the wire; the cause is only recorded server-side.
func RespondWithInternalError(w http.ResponseWriter) {
	w.WriteHeader(http.StatusInternalServerError)
}

// ErrorHandlingMiddleware catches panics and converts them to 500 errors
func ErrorHandlingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("Panic recovered",
						zap.Int("status", http.StatusInternalServerError),
						zap.String("errorType", "panic"),
						zap.Any("errorCause", err),
						zap.String("path", r.URL.Path),
						zap.String("method", r.Method),
					)

					RespondWithInternalError(w)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
