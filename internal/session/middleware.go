package session

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sakif/internhub/internal/auth"
	"github.com/sakif/internhub/internal/latency"
	"github.com/sakif/internhub/internal/store"
)

type contextKey struct{}

// NewContext returns a copy of ctx carrying sess, its store and its latency
// group.
func NewContext(ctx context.Context, sess *Session) context.Context {
	ctx = context.WithValue(ctx, contextKey{}, sess)
	ctx = latency.NewContext(ctx, sess.Tasks)
	return store.NewContext(ctx, sess.Store)
}

// FromContext returns the session carried by ctx, if any.
func FromContext(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(contextKey{}).(*Session)
	return sess, ok && sess != nil
}

// MustFromContext is FromContext for handlers that are always mounted behind
// Middleware. It panics otherwise.
func MustFromContext(ctx context.Context) *Session {
	sess, ok := FromContext(ctx)
	if !ok {
		panic("session: no session in context (is the handler mounted behind session.Middleware?)")
	}
	return sess
}

// Middleware attaches the caller's session to the request context, starting a
// new one and setting the signed cookie when the request has no valid session.
func Middleware(m *Manager, tokens *auth.TokenService, secureCookie bool, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sess *Session
			if id, err := auth.SessionIDFromRequest(r, tokens); err == nil {
				sess, _ = m.Get(id)
			}

			if sess == nil {
				sess = m.Create()
				token, err := tokens.Generate(sess.ID)
				if err != nil {
					logger.Error("issuing session token failed", slog.String("error", err.Error()))
					m.End(sess.ID)
					writeInternalError(w)
					return
				}
				auth.SetSessionCookie(w, token, tokens.TTL(), secureCookie)
			}

			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), sess)))
		})
	}
}

// writeInternalError writes the same JSON body the handlers use for a 500.
func writeInternalError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(`{"error":"internal_error","message":"An internal error occurred"}` + "\n"))
}
