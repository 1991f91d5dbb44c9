package session

import "context"

type contextKey struct{}

// Session is the per-request view of the session store.
type Session struct {
	Token string
}

func (s Session) Authenticated() bool {
	return s.Token != ""
}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(contextKey{}).(Session)
	return s, ok
}
