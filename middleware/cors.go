package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// OriginSet builds the exact-match lookup set from configured origins,
// skipping blanks.
func OriginSet(origins []string) map[string]struct{} {
	set := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		if o != "" {
			set[o] = struct{}{}
		}
	}
	return set
}

// OriginAllowed reports whether origin exactly matches an entry in the
// allow-list. Requests without an Origin header never reach this predicate;
// the CORS layer passes them through as non-CORS traffic.
func OriginAllowed(allowed map[string]struct{}, origin string) bool {
	_, ok := allowed[origin]
	return ok
}

// CORS gates cross-origin requests against the configured allow-list.
func CORS(origins []string) gin.HandlerFunc {
	allowed := OriginSet(origins)
	return cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return OriginAllowed(allowed, origin)
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
