// Package form gathers one candidate expense, validates it and hands it to
// a store on success.
package form

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"expensetracker/internal/core"
	"expensetracker/internal/store"
)

// State of the form state machine. There is no terminal state.
type State int

const (
	Editing State = iota
	Submitting
)

const (
	LabelRecurring = "Recurring expense"
	LabelOneTime   = "One-time expense"
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	default:
		return "unknown"
	}
}

type (
	// Form owns the draft for one mount. Set, Update and Submit are
	// serialized, so a submission always completes validate, add and reset
	// before the next event is handled.
	Form struct {
		mu     sync.Mutex
		store  store.Writer
		now    func() time.Time
		draft  core.Draft
		errors core.FieldErrors
		state  State

		// set after a rejected submission; edits then revalidate the draft
		revalidate bool
	}

	// View is everything needed to render the form.
	View struct {
		Draft          core.Draft
		DateValue      string
		Errors         core.FieldErrors
		RecurringLabel string
		Categories     []core.CategoryOption
	}

	// Result of a submission. Errors is empty when OK.
	Result struct {
		OK      bool
		Expense core.Expense
		Errors  core.FieldErrors
	}

	Option func(*Form)
)

// WithClock overrides the time source used for date defaults.
func WithClock(now func() time.Time) Option {
	return func(f *Form) {
		if now != nil {
			f.now = now
		}
	}
}

// New returns a form writing accepted expenses to w.
func New(w store.Writer, opts ...Option) *Form {
	if w == nil {
		panic("form: nil store writer")
	}
	f := &Form{store: w, now: time.Now}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Set updates one draft field. Unknown fields are ignored and reported
// with false. The store is never touched.
func (f *Form) Set(field, value string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch field {
	case core.FieldDescription:
		f.draft.Description = value
	case core.FieldDate:
		f.draft.Date = value
	case core.FieldCategory:
		f.draft.Category = value
	case core.FieldAmount:
		f.draft.Amount = value
	case core.FieldRecurring:
		f.draft.Recurring = ParseToggle(value)
	default:
		return false
	}
	f.refreshErrorsLocked()
	return true
}

// Update replaces the whole draft, as when a browser posts every field.
func (f *Form) Update(d core.Draft) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = d
	f.refreshErrorsLocked()
}

// Draft returns a copy of the current draft.
func (f *Form) Draft() core.Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// State returns the current state; outside Submit it is always Editing.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// View returns the render model for the current draft.
func (f *Form) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()

	date := f.draft.Date
	if date == "" {
		date = f.now().Format(core.DateLayout)
	}
	return View{
		Draft:          f.draft,
		DateValue:      date,
		Errors:         append(core.FieldErrors(nil), f.errors...),
		RecurringLabel: RecurringLabel(f.draft),
		Categories:     core.Categories(),
	}
}

// Submit validates the draft. On failure the draft is kept and the field
// errors are returned; on success the normalized expense is added to the
// store and the draft is reset.
func (f *Form) Submit(ctx context.Context) Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitLocked(ctx)
}

// SubmitDraft replaces the draft with d and submits it as one step.
func (f *Form) SubmitDraft(ctx context.Context, d core.Draft) Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = d
	return f.submitLocked(ctx)
}

func (f *Form) submitLocked(ctx context.Context) Result {
	f.state = Submitting
	defer func() { f.state = Editing }()

	e, errs := core.Validate(f.draft, f.now())
	if len(errs) > 0 {
		f.errors = errs
		f.revalidate = true
		slog.DebugContext(ctx, "Expense draft rejected", "errors", errs.Error())
		return Result{Errors: errs}
	}

	f.store.Add(ctx, e)
	f.resetLocked()
	return Result{OK: true, Expense: e}
}

// Reset clears the draft and any field errors.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetLocked()
}

func (f *Form) resetLocked() {
	f.draft = core.Draft{}
	f.errors = nil
	f.revalidate = false
}

func (f *Form) refreshErrorsLocked() {
	if !f.revalidate {
		return
	}
	_, f.errors = core.Validate(f.draft, f.now())
}

// RecurringLabel derives the toggle label from the draft.
func RecurringLabel(d core.Draft) string {
	if d.Recurring {
		return LabelRecurring
	}
	return LabelOneTime
}

// ParseToggle interprets a checkbox value. Browsers send "on" for a checked
// box and omit unchecked ones.
func ParseToggle(v string) bool {
	v = strings.TrimSpace(strings.ToLower(v))
	if v == "on" || v == "yes" {
		return true
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}
