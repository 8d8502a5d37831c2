package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracing returns otelgin followed by a middleware that tags its span with
// the request id and acting user and marks 5xx responses as errors.
// Disabled tracing yields an empty chain.
func Tracing(serviceName string, enabled bool) gin.HandlersChain {
	if !enabled {
		return nil
	}
	return gin.HandlersChain{otelgin.Middleware(serviceName), annotateSpan()}
}

// annotateSpan must run inside the otelgin span: otelgin ends the span and
// restores the original request once the chain returns
func annotateSpan() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}
		if requestID := GetRequestID(c); requestID != "" {
			span.SetAttributes(attribute.String("request_id", requestID))
		}
		if userID := c.GetString(UserIDKey); userID != "" {
			span.SetAttributes(attribute.String("user_id", userID))
		}
		if status := c.Writer.Status(); status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}
