package middleware

import (
	"net/http"
	"slices"

	"github.com/rs/cors"
)

// Cors allows cross-origin calls from the listed origins, or from anywhere
// when the list is empty or holds "*".
func Cors(allowedOrigins []string) Middleware {
	options := cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}
	if len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*") {
		options.AllowOriginFunc = func(origin string) bool {
			return true
		}
	} else {
		options.AllowedOrigins = allowedOrigins
	}
	return cors.New(options).Handler
}
