// Package table projects a store's expenses into display rows.
package table

import (
	"context"
	"sync"

	"expensetracker/internal/core"
	"expensetracker/internal/store"
)

const (
	// Notice replaces the whole table when there is nothing to show.
	Notice = "There are no expenses to display"

	// DateLayout renders dates like "Wed May 08 2024".
	DateLayout = "Mon Jan 02 2006"

	DefaultCurrency = "$"
)

// Headers in column order.
var Headers = []string{"Date", "Description", "Category", "Amount"}

type (
	Row struct {
		Date        string
		Description string
		Category    string
		Amount      string
	}

	View struct {
		Empty   bool
		Notice  string
		Headers []string
		Rows    []Row
	}

	// Table keeps the latest snapshot pushed by its store subscription and
	// never writes to the store.
	Table struct {
		currency string
		cancel   func()

		mu       sync.RWMutex
		snapshot []core.Expense
	}
)

// New subscribes to r and seeds the table with its current contents.
// Close must be called to drop the subscription.
func New(ctx context.Context, r store.Reader, currency string) *Table {
	if currency == "" {
		currency = DefaultCurrency
	}
	t := &Table{currency: currency}
	t.cancel = r.Subscribe(t.update)
	t.update(r.All(ctx))
	return t
}

// update keeps the longest snapshot seen; the store is append-only, so
// longer means newer even if notifications interleave with the seed read.
func (t *Table) update(snapshot []core.Expense) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(snapshot) >= len(t.snapshot) {
		t.snapshot = snapshot
	}
}

// Close cancels the store subscription.
func (t *Table) Close() {
	if t.cancel != nil {
		t.cancel()
	}
}

func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.snapshot)
}

func (t *Table) Empty() bool {
	return t.Len() == 0
}

// Rows returns one row per expense in insertion order.
func (t *Table) Rows() []Row {
	t.mu.RLock()
	defer t.mu.RUnlock()
	rows := make([]Row, 0, len(t.snapshot))
	for _, e := range t.snapshot {
		rows = append(rows, NewRow(e, t.currency))
	}
	return rows
}

func (t *Table) View() View {
	rows := t.Rows()
	if len(rows) == 0 {
		return View{Empty: true, Notice: Notice}
	}
	return View{Headers: Headers, Rows: rows}
}

func NewRow(e core.Expense, currency string) Row {
	return Row{
		Date:        FormatDate(e.Date),
		Description: e.Description,
		Category:    e.Category.String(),
		Amount:      core.FormatAmount(currency, e.Amount),
	}
}

func FormatDate(d core.Date) string {
	return d.Format(DateLayout)
}
