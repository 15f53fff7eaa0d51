package session

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"expensetracker/internal/cache"
	"expensetracker/internal/log"
)

const (
	DefaultCookieName  = "expense_session"
	DefaultTTL         = 12 * time.Hour
	DefaultMaxSessions = 1000
)

// Config controls session lifetime and the cookie carrying the session ID.
type Config struct {
	CookieName   string
	TTL          time.Duration
	MaxSessions  int
	CookieSecure bool
	Currency     string
}

func (c Config) withDefaults() Config {
	if c.CookieName == "" {
		c.CookieName = DefaultCookieName
	}
	if c.TTL <= 0 {
		c.TTL = DefaultTTL
	}
	if c.MaxSessions <= 0 {
		c.MaxSessions = DefaultMaxSessions
	}
	return c
}

// Manager creates sessions on demand and forgets them after TTL of
// inactivity or when MaxSessions is exceeded, oldest first.
type Manager struct {
	cfg      Config
	sessions *cache.LRUCache[*Session]
	logger   *log.Logger
	newID    func() string
	now      func() time.Time
}

type Option func(*Manager)

// WithClock overrides the time source for sessions and their forms.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithIDGenerator overrides session ID generation.
func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) { m.newID = fn }
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

func NewManager(cfg Config, opts ...Option) *Manager {
	m := &Manager{
		cfg:    cfg.withDefaults(),
		newID:  uuid.NewString,
		now:    time.Now,
		logger: log.New(log.DefaultConfig()).WithComponent(log.ComponentSession),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.sessions = cache.NewLRUCache[*Session](m.cfg.MaxSessions, m.cfg.TTL,
		cache.WithSlidingExpiry[*Session](),
		cache.WithClock[*Session](m.now),
		cache.WithOnEvict(m.evicted),
	)
	return m
}

// Get returns a live session and refreshes its idle deadline.
func (m *Manager) Get(id string) (*Session, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}
	return m.sessions.Get(id)
}

// Create starts a new, empty session.
func (m *Manager) Create() *Session {
	s := newSession(m.newID(), m.cfg.Currency, m.now)
	m.sessions.Set(s.ID, s)
	m.logger.Debug("Session created", log.FieldSessionID, s.ID)
	return s
}

// Destroy drops a session immediately.
func (m *Manager) Destroy(id string) {
	m.sessions.Delete(id)
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	return m.sessions.Size()
}

// CleanExpired drops idle sessions. It satisfies cache.Cleaner so a
// cache.Manager can run it periodically.
func (m *Manager) CleanExpired() int {
	return m.sessions.CleanExpired()
}

func (m *Manager) evicted(id string, s *Session) {
	s.close()
	m.logger.Debug("Session ended",
		log.FieldSessionID, id,
		log.FieldOperation, log.OpEvict,
		log.FieldExpenseCount, s.Store.Len())
}

// Provider resolves the caller's session from its cookie, creating one when
// the cookie is missing or stale, and stores it in the request context.
func (m *Manager) Provider(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := m.resolve(w, r)
		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), s)))
	})
}

func (m *Manager) resolve(w http.ResponseWriter, r *http.Request) *Session {
	if c, err := r.Cookie(m.cfg.CookieName); err == nil {
		if s, ok := m.Get(c.Value); ok {
			return s
		}
	}
	s := m.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return s
}
