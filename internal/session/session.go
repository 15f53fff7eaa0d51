// Package session binds one browser to one expense store. Each session is a
// mount: it owns the store, the form writing to it and the table reading it.
package session

import (
	"context"
	"errors"
	"time"

	"expensetracker/internal/form"
	"expensetracker/internal/store"
	"expensetracker/internal/table"
)

// ErrNoProvider is the panic value raised when session state is requested
// outside of a Provider.
var ErrNoProvider = errors.New("must be used within a session provider")

// Session is the state of one mount.
type Session struct {
	ID        string
	CreatedAt time.Time
	Store     *store.Store
	Form      *form.Form
	Table     *table.Table
}

func newSession(id, currency string, now func() time.Time) *Session {
	st := store.New()
	return &Session{
		ID:        id,
		CreatedAt: now(),
		Store:     st,
		Form:      form.New(st, form.WithClock(now)),
		Table:     table.New(context.Background(), st, currency),
	}
}

func (s *Session) close() {
	s.Table.Close()
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// From returns the session carried by ctx, if any.
func From(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok && s != nil
}

// MustFrom is From for callers that cannot work without a session. It panics
// with ErrNoProvider when ctx was not prepared by a Provider.
func MustFrom(ctx context.Context) *Session {
	s, ok := From(ctx)
	if !ok {
		panic(ErrNoProvider)
	}
	return s
}

// StoreFrom returns the store of the session carried by ctx and panics like
// MustFrom.
func StoreFrom(ctx context.Context) *store.Store {
	return MustFrom(ctx).Store
}
