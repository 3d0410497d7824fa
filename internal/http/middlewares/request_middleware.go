package middlewares

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

// RequestID honors an inbound id so gateway traces line up, and mints one
// otherwise. The id rides on the gin context and the response header.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(requestIDHeader)

		if id == "" {
			id = uuid.NewString()
		}

		ctx.Writer.Header().Set(requestIDHeader, id)
		ctx.Set(CtxRequestID, id)

		ctx.Next()
	}
}

// RequestLogger writes one access line per request, levelled by the
// response status.
func RequestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		route := ctx.FullPath()
		if route == "" {
			route = ctx.Request.URL.Path // fallback (e.g. 404)
		}

		method := ctx.Request.Method

		ctx.Next()

		status := ctx.Writer.Status()

		attrs := []any{
			"method", method,
			"route", route,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"bytes", ctx.Writer.Size(),
			"ip", ctx.ClientIP(),
			"request_id", ctx.GetString(CtxRequestID),
		}

		if caller, ok := CallerFromContext(ctx); ok && caller != "" {
			attrs = append(attrs, "caller", caller)
		}

		log := slog.Default()
		lctx := ctx.Request.Context()

		switch {
		case status >= 500:
			log.ErrorContext(lctx, "http_request", attrs...)
		case status >= 400:
			log.WarnContext(lctx, "http_request", attrs...)
		default:
			log.InfoContext(lctx, "http_request", attrs...)
		}
	}
}
