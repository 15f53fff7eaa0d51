package http

import (
	"errors"
	"net/http"

	"expensetracker/internal/log"
	"expensetracker/internal/session"
)

// handleDraft applies an edit to the session's draft and re-renders the form.
// A {field, value} body edits one field; otherwise the body is the whole form.
func (s *Server) handleDraft(w http.ResponseWriter, r *http.Request) {
	p, ok := s.parseBody(w, r)
	if !ok {
		return
	}
	sess := session.MustFrom(r.Context())

	if edit, ok := ParseFieldEdit(p); ok {
		if !sess.Form.Set(edit.Field, edit.Value) {
			BadRequestError("Unknown field").Write(w)
			return
		}
	} else {
		sess.Form.Update(ParseDraft(p))
	}

	s.render(w, r, NewHTMXResponse(), tmplForm, sess.Form.View())
}

// handleCreateExpense submits the posted form. Rejected drafts come back with
// inline errors and status 422, which the page swaps in; accepted ones yield a fresh form and
// triggers that refresh the table.
func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	p, ok := s.parseBody(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	sess := session.MustFrom(ctx)

	res := sess.Form.SubmitDraft(ctx, ParseDraft(p))
	if !res.OK {
		events(r).LogValidationFailed(ctx, sess.ID, fieldNames(res.Errors))
		b := NewHTMXResponse().
			Status(http.StatusUnprocessableEntity).
			TriggerErrorNotification("Please fix the highlighted fields")
		s.render(w, r, b, tmplForm, sess.Form.View())
		return
	}

	count := sess.Store.Len()
	e := res.Expense
	events(r).LogExpenseCreated(ctx, sess.ID, e.Description, e.Category.String(), e.Amount.String(), e.Recurring, count)

	b := NewHTMXResponse().
		TriggerExpenseCreated(count).
		TriggerFormReset().
		TriggerSuccessNotification("Expense added: " + e.Description)
	s.render(w, r, b, tmplForm, sess.Form.View())
}

func (s *Server) parseBody(w http.ResponseWriter, r *http.Request) (*RequestBodyParser, bool) {
	p := NewRequestBodyParser(w, r)
	if err := p.Parse(); err != nil {
		s.logger.WarnContext(r.Context(), "Parse request body failed",
			log.FieldError, err,
			log.FieldOperation, log.OpParse,
			log.FieldPath, r.URL.Path)
		if errors.Is(err, ErrBodyTooLarge) {
			ErrorResponse(http.StatusRequestEntityTooLarge, "Request too large").Write(w)
		} else {
			BadRequestError("Invalid request format").Write(w)
		}
		return nil, false
	}
	return p, true
}
