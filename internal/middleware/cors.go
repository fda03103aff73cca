package middleware

import (
	"net/http"
	"strings"
)

// corsMethods lists the verbs this API actually serves.
const corsMethods = "GET,POST,PUT,DELETE,OPTIONS"

// CORS adds Access-Control headers for allowed origins and short-circuits
// OPTIONS preflight requests. Credentials are only allowed for explicitly
// listed origins; the wildcard origin cannot carry them.
func CORS(allowedOrigins []string, next http.Handler) http.Handler {
	allowAll := false
	listed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
			break
		}
		listed[strings.ToLower(origin)] = struct{}{}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" {
			_, known := listed[strings.ToLower(origin)]
			switch {
			case allowAll:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case known:
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Vary", "Origin")
			}
			if allowAll || known {
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				w.Header().Set("Access-Control-Allow-Methods", corsMethods)
			}
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
