// Package service contains the business rules that sit between the HTTP
// handlers and a session's store.
//
// LAYERS:
//
//	Handler (HTTP layer)     → decodes requests, writes JSON, maps errors
//	Service (business layer) → validates forms, checks the session user, builds records
//	Store (state layer)      → applies total, silent mutations to one session's snapshot
//
// The store never fails: an unknown ID or an anonymous profile save is simply a
// no-op. Services are where those cases become errors the caller can see
// (apperror.NotFound, apperror.Unauthenticated, apperror.ValidationFailed).
//
// SESSION SCOPE:
// Services are stateless and shared by every session. Each method finds the
// caller's store in ctx (store.MustFromContext), and flows that carry simulated
// latency run through the session's latency.Group found in the same ctx. A
// test builds that context with store.NewContext and, optionally,
// latency.NewContext.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/internhub/internal/apperror"
	"github.com/sakif/internhub/internal/model"
	"github.com/sakif/internhub/internal/store"
)

// sessionStore returns the caller's store.
func sessionStore(ctx context.Context) *store.Store {
	return store.MustFromContext(ctx)
}

// requireUser returns the session user or an Unauthenticated error naming
// the action that needed one.
func requireUser(st *store.Store, action string) (model.User, error) {
	u, ok := st.CurrentUser()
	if !ok {
		return model.User{}, apperror.Unauthenticated(action)
	}
	return u, nil
}

// newXID returns a fresh globally unique, sortable ID.
func newXID() string {
	return xid.New().String()
}

// splitList splits a comma-separated form field, trimming each item and
// dropping blanks.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// clock is shared by services that stamp dates.
type clock func() time.Time
