package handler

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"trainerweb/internal/logging"
	"trainerweb/internal/service"
)

const workspaceLocalKey = "workspace"

// Page keys for Workspace.settle and Workspace.settled.
const (
	pageCustomers = "customers"
	pageTrainings = "trainings"
)

// Workspace is one browser session's pair of views. Drafts, open dialogs and
// delete gates never leak between sessions.
type Workspace struct {
	Customers service.CustomerView
	Trainings service.TrainingView

	mu       sync.Mutex
	lastSeen time.Time
	fresh    map[string]bool
}

// settle marks page as just handled by a form post: the redirect that
// follows renders the view as it stands instead of reloading it again.
func (w *Workspace) settle(page string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fresh == nil {
		w.fresh = make(map[string]bool)
	}
	w.fresh[page] = true
}

// settled reports and clears the mark left by settle.
func (w *Workspace) settled(page string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	ok := w.fresh[page]
	delete(w.fresh, page)
	return ok
}

// Workspaces hands out one Workspace per session id and forgets sessions
// idle for longer than the idle timeout.
type Workspaces struct {
	newCustomers func() service.CustomerView
	newTrainings func() service.TrainingView
	idle         time.Duration
	now          func() time.Time

	mu        sync.Mutex
	items     map[string]*Workspace
	lastSweep time.Time
}

// NewWorkspaces builds views lazily with the given constructors. idle <= 0
// keeps workspaces for the life of the process.
func NewWorkspaces(newCustomers func() service.CustomerView, newTrainings func() service.TrainingView, idle time.Duration) *Workspaces {
	return &Workspaces{
		newCustomers: newCustomers,
		newTrainings: newTrainings,
		idle:         idle,
		now:          time.Now,
		items:        make(map[string]*Workspace),
	}
}

// Get returns the workspace of session id, creating it on first use.
func (ws *Workspaces) Get(id string) *Workspace {
	now := ws.now()

	ws.mu.Lock()
	defer ws.mu.Unlock()

	ws.sweep(now)
	w, ok := ws.items[id]
	if !ok {
		w = &Workspace{Customers: ws.newCustomers(), Trainings: ws.newTrainings()}
		ws.items[id] = w
	}
	w.mu.Lock()
	w.lastSeen = now
	w.mu.Unlock()
	return w
}

// Len is the number of live workspaces.
func (ws *Workspaces) Len() int {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return len(ws.items)
}

// sweep runs at most once per idle period. Caller holds ws.mu.
func (ws *Workspaces) sweep(now time.Time) {
	if ws.idle <= 0 || now.Sub(ws.lastSweep) < ws.idle {
		return
	}
	ws.lastSweep = now
	for id, w := range ws.items {
		w.mu.Lock()
		stale := now.Sub(w.lastSeen) > ws.idle
		w.mu.Unlock()
		if stale {
			delete(ws.items, id)
		}
	}
}

// NewSessionStore returns the cookie-backed session store used to key
// workspaces.
func NewSessionStore(idle time.Duration) *session.Store {
	return session.New(session.Config{
		Expiration:     idle,
		KeyLookup:      "cookie:trainerweb_session",
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
}

// Sessions resolves the caller's session, refreshing its cookie, and puts
// the matching Workspace into locals for the page handlers.
func Sessions(store *session.Store, ws *Workspaces, log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			log.Error(c.UserContext(), "session_load_failed", err, nil)
			return fiber.ErrInternalServerError
		}
		id := sess.ID()
		if err := sess.Save(); err != nil {
			log.Error(c.UserContext(), "session_save_failed", err, nil)
			return fiber.ErrInternalServerError
		}

		c.Locals(workspaceLocalKey, ws.Get(id))
		return c.Next()
	}
}

// workspaceFrom returns the Workspace stored by Sessions.
func workspaceFrom(c *fiber.Ctx) *Workspace {
	w, _ := c.Locals(workspaceLocalKey).(*Workspace)
	return w
}
