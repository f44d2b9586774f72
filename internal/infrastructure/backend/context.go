package backend

import "context"

type sessionIDKey struct{}

// WithSessionID tags a request context with the console session the call is
// made on behalf of. The transport uses it to pick the right credential.
func WithSessionID(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, sessionIDKey{}, sid)
}

// SessionIDFrom returns the tagged session id, or "" for anonymous calls.
func SessionIDFrom(ctx context.Context) string {
	sid, _ := ctx.Value(sessionIDKey{}).(string)
	return sid
}
