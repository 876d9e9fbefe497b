package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CORS allows browser requests from the configured origins. An entry is an
// exact origin, a prefix ending in "*" ("http://localhost*") or a wildcard
// subdomain ("https://*.vercel.app"). Requests without an Origin header pass
// through untouched; requests from any other origin are rejected with 403.
func CORS(allowed []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			if OriginAllowed(allowed, origin) {
				return true
			}
			logrus.WithField("origin", origin).Warn("CORS blocked request")
			return false
		},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// OriginAllowed reports whether origin matches any entry in allowed.
func OriginAllowed(allowed []string, origin string) bool {
	for _, pattern := range allowed {
		if matchOrigin(pattern, origin) {
			return true
		}
	}
	return false
}

func matchOrigin(pattern, origin string) bool {
	if pattern == "*" || pattern == origin {
		return true
	}

	if scheme, host, ok := strings.Cut(pattern, "://*."); ok {
		// https://*.vercel.app matches https://app.vercel.app but not
		// https://vercel.app
		rest, found := strings.CutPrefix(origin, scheme+"://")
		return found && strings.HasSuffix(rest, "."+host) && len(rest) > len(host)+1
	}

	if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
		return strings.HasPrefix(origin, prefix)
	}

	return false
}
