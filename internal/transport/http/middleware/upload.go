package middleware

import "net/http"

// MaxBodySize ограничивает размер тела запроса.
// Превышение лимита приводит к ошибке чтения тела в handler'е.
func MaxBodySize(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
