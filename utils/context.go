package utils

import "context"

type contextKey string

// Request scoped values stored on context.Context by the HTTP layer
const (
	RequestIDKey contextKey = "request_id"
	EndpointKey  contextKey = "endpoint"
)

// RequestIDFromContext returns the request id the HTTP layer attached, or ""
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

func EndpointFromContext(ctx context.Context) string {
	endpoint, _ := ctx.Value(EndpointKey).(string)
	return endpoint
}
