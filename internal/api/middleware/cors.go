package middleware

import (
	"net/http"

	"venue-booking-backend/utils"
)

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	AllowCredentials bool
}

// resolveOrigin picks the Access-Control-Allow-Origin value for a request.
// A wildcard entry with credentials must echo the caller's origin, since
// browsers reject "*" on credentialed requests.
func (c CORSConfig) resolveOrigin(origin string) string {
	for _, o := range c.AllowedOrigins {
		switch {
		case o == "*" && c.AllowCredentials:
			return origin
		case o == "*":
			return "*"
		case o == origin:
			return o
		}
	}
	return ""
}

func CORS(config CORSConfig) Middleware {
	allowMethods := utils.StringJoin(config.AllowedMethods, ", ")
	allowHeaders := utils.StringJoin(config.AllowedHeaders, ", ")

	return func(f http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			allowed := config.resolveOrigin(r.Header.Get("Origin"))

			if allowed != "" {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", allowed)
				h.Set("Access-Control-Allow-Methods", allowMethods)
				h.Set("Access-Control-Allow-Headers", allowHeaders)
				if config.AllowCredentials {
					h.Set("Access-Control-Allow-Credentials", "true")
				}
			}

			if r.Method == http.MethodOptions {
				if allowed == "" {
					w.WriteHeader(http.StatusForbidden)
					return
				}
				w.WriteHeader(http.StatusOK)
				return
			}

			f(w, r)
		}
	}
}
