package handlers

import (
	"log/slog"
	"net/http"

	"github.com/geocoder89/enrollhub/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

// Envelope is the body of every response.
type Envelope struct {
	Code    string    `json:"code"`
	Message string    `json:"message,omitempty"`
	Result  any       `json:"result,omitempty"`
	Error   *APIError `json:"error,omitempty"`
	Token   string    `json:"token,omitempty"`
}

// APIError never carries raw store errors; those stay in the server log under the same request id.
type APIError struct {
	Code      string `json:"code"`
	RequestID string `json:"requestId,omitempty"`
	Details   any    `json:"details,omitempty"`
}

func requestIDFrom(ctx *gin.Context) string {
	v, ok := ctx.Get(middlewares.CtxRequestID)

	if ok {
		s, ok := v.(string)
		if ok && s != "" {
			return s
		}
	}

	// fallback header
	return ctx.GetHeader("X-Request-Id")
}

func Respond(ctx *gin.Context, status int, code, message string, result any) {
	ctx.JSON(status, Envelope{
		Code:    code,
		Message: message,
		Result:  result,
	})
}

func RespondBadRequest(ctx *gin.Context, code, message string, details any) {
	body := Envelope{Code: code, Message: message}

	if details != nil {
		body.Error = &APIError{
			Code:      "invalid_request",
			RequestID: requestIDFrom(ctx),
			Details:   details,
		}
	}

	ctx.JSON(http.StatusBadRequest, body)
}

func RespondNotFound(ctx *gin.Context, code, message string) {
	Respond(ctx, http.StatusNotFound, code, message, nil)
}

func RespondForbidden(ctx *gin.Context, message string) {
	Respond(ctx, http.StatusForbidden, CodeForbidden, message, nil)
}

func RespondUnauthorized(ctx *gin.Context, message string) {
	Respond(ctx, http.StatusUnauthorized, CodeUnauthorized, message, nil)
}

// RespondInternal logs err with the request id and answers with an opaque 500.
func RespondInternal(ctx *gin.Context, code, message, op string, err error) {
	reqID := requestIDFrom(ctx)

	slog.Default().ErrorContext(ctx.Request.Context(), "request failed",
		"op", op,
		"code", code,
		"request_id", reqID,
		"err", err,
	)

	ctx.JSON(http.StatusInternalServerError, Envelope{
		Code:    code,
		Message: message,
		Error: &APIError{
			Code:      "internal_error",
			RequestID: reqID,
		},
	})
}
