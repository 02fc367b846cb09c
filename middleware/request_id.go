package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the correlation id on requests and responses.
const RequestIDHeader = "X-Request-ID"

// RequestIDKey is the gin context key set by RequestID.
const RequestIDKey = "request_id"

// RequestID attaches a correlation id to every request, reusing the caller's
// id when one is supplied.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		ctx.Set(RequestIDKey, id)
		ctx.Writer.Header().Set(RequestIDHeader, id)
		ctx.Next()
	}
}
