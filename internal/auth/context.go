package auth

import "context"

type contextKey string

const (
	actorKey contextKey = "actor"
	ipKey    contextKey = "client_ip"
)

// WithActor stores the staff username and client address on ctx.
func WithActor(ctx context.Context, username, ip string) context.Context {
	ctx = context.WithValue(ctx, actorKey, username)
	return context.WithValue(ctx, ipKey, ip)
}

// ActorFromContext returns the staff username, or "anonymous" when login is disabled.
func ActorFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(actorKey).(string); ok && v != "" {
		return v
	}
	return "anonymous"
}

// ClientIPFromContext returns the client address recorded by WithActor.
func ClientIPFromContext(ctx context.Context) string {
	v, _ := ctx.Value(ipKey).(string)
	return v
}
