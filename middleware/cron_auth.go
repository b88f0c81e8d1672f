package middleware

import (
	"crypto/subtle"
	"log"
	"net/http"
	"os"
)

// CronAuth protects scheduler-only endpoints with a shared secret header,
// separate from the user JWT scheme. The external scheduler (or an
// operator's curl) must send X-Cron-Token matching CRON_TOKEN.
func CronAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expected := os.Getenv("CRON_TOKEN")
		if expected == "" {
			log.Println("[CronAuth] CRON_TOKEN not set, skipping protection")
			next.ServeHTTP(w, r)
			return
		}
		token := r.Header.Get("X-Cron-Token")
		if subtle.ConstantTimeCompare([]byte(token), []byte(expected)) != 1 {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
