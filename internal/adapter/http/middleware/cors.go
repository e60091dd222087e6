package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// NewCORS returns a CORS middleware for the given origins. "*" allows any
// origin, in which case credentials are not allowed.
func NewCORS(origins []string) func(http.Handler) http.Handler {
	allowCredentials := true
	for _, o := range origins {
		if o == "*" {
			allowCredentials = false
		}
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", IdempotencyKeyHeader},
		ExposedHeaders:   []string{IdempotencyReplayHeader, "Content-Disposition"},
		AllowCredentials: allowCredentials,
		MaxAge:           300,
	})

	return c.Handler
}
