package middlewares

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
)

const corsMaxAge = "600"

// CORSMiddleware lets the listed browser origins call the API with a bearer token.
// A "*" entry admits any origin; cookies are never used, so credentials stay off.
// Preflight requests end here with 204.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	anyOrigin := slices.Contains(allowedOrigins, "*")

	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = struct{}{}
	}

	return func(ctx *gin.Context) {
		origin := ctx.GetHeader("Origin")

		_, listed := allowed[origin]
		if origin != "" && (anyOrigin || listed) {
			h := ctx.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
			h.Set("Access-Control-Allow-Methods", "GET,POST,PUT,PATCH,OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Authorization,Content-Type,X-Request-Id")
			h.Set("Access-Control-Expose-Headers", "X-Request-Id")
			h.Set("Access-Control-Max-Age", corsMaxAge)
		}

		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}

		ctx.Next()
	}
}
