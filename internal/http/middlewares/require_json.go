package middlewares

import (
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequireJSON answers 415 when a POST, PUT or PATCH carries a body that is not
// declared as JSON. "application/json" and "+json" suffix types are accepted.
// Writes without a body pass, since every write endpoint treats an empty body as {}.
func RequireJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			if c.Request.ContentLength != 0 && !isJSONMediaType(c.GetHeader("Content-Type")) {
				c.AbortWithStatusJSON(http.StatusUnsupportedMediaType, gin.H{
					"code":    "UNSUPPORTED-MEDIA-TYPE",
					"message": "Request bodies must be sent as application/json.",
				})
				return
			}
		}
		c.Next()
	}
}

func isJSONMediaType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return mediaType == "application/json" ||
		(strings.HasPrefix(mediaType, "application/") && strings.HasSuffix(mediaType, "+json"))
}
