package store

import (
	"context"

	"expensetracker/internal/core"
)

// Ports used by the components sharing a store.
type (
	// Writer is the only mutation path; the form depends on it.
	Writer interface {
		Add(ctx context.Context, e core.Expense)
	}

	// Reader exposes snapshots and change notifications; the table depends on it.
	Reader interface {
		All(ctx context.Context) []core.Expense
		Subscribe(fn Observer) (cancel func())
	}

	// Observer receives the store contents after every change.
	Observer func(snapshot []core.Expense)
)
