package http

import (
	"net/http"

	"expensetracker/internal/form"
	"expensetracker/internal/log"
	"expensetracker/internal/session"
	"expensetracker/internal/table"
)

// Template names.
const (
	tmplIndex = "index.html"
	tmplForm  = "form"
	tmplTable = "table"
)

type pageData struct {
	Form  form.View
	Table table.View
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	NewHTMXResponse().BodyJSON(map[string]string{"status": "ok"}).Write(w)
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		NewHTMXResponse().
			Status(http.StatusServiceUnavailable).
			BodyJSON(map[string]string{"status": "not ready", "reason": "templates not loaded"}).
			Write(w)
		return
	}
	m := s.tracer.GetMetrics()
	NewHTMXResponse().BodyJSON(map[string]any{
		"status":   "ready",
		"sessions": s.sessions.Count(),
		"requests": m.TotalRequests,
	}).Write(w)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess := session.MustFrom(r.Context())
	s.render(w, r, NewHTMXResponse(), tmplIndex, pageData{
		Form:  sess.Form.View(),
		Table: sess.Table.View(),
	})
}

func (s *Server) handleExpenseTable(w http.ResponseWriter, r *http.Request) {
	sess := session.MustFrom(r.Context())
	s.render(w, r, NewHTMXResponse(), tmplTable, sess.Table.View())
}

// render executes name into b and writes it, answering 500 when rendering
// fails.
func (s *Server) render(w http.ResponseWriter, r *http.Request, b *HTMXResponseBuilder, name string, data any) {
	if err := b.Render(s.templates, name, data); err != nil {
		events(r).LogError(r.Context(), "Template rendering failed", err,
			log.ComponentTemplate, log.OpRender, log.NewFields())
		InternalServerError("Unable to render page").Write(w)
		return
	}
	b.Write(w)
}
