package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"trainerweb/internal/logging"
	"trainerweb/internal/ui"
)

// Pinger reports whether the REST backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators the routes are built from.
type Deps struct {
	Backend       Pinger
	HealthTimeout time.Duration
	// Workspaces holds the per-session views behind /customers and /trainings.
	Workspaces *Workspaces
	// Sessions keys Workspaces; nil uses NewSessionStore(0).
	Sessions *session.Store
	Pages    *ui.Renderer
	Log      *logging.Logger
	// Metrics is served on /metrics; nil skips the route.
	Metrics prometheus.Gatherer
}

// RegisterRoutes attaches the browser pages, their form actions and the
// operational endpoints to app.
func RegisterRoutes(app *fiber.App, d Deps) {
	if d.Log == nil {
		d.Log = logging.Default()
	}
	if d.Sessions == nil {
		d.Sessions = NewSessionStore(0)
	}

	app.Get("/health", HealthCheck(d.Backend, d.HealthTimeout))
	app.Get("/healthz", LivenessProbe())
	if d.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Metrics, promhttp.HandlerOpts{})))
	}

	app.Get("/", Home(d.Pages))

	withSession := Sessions(d.Sessions, d.Workspaces, d.Log)

	// Static paths first so they never reach the :id routes.
	customers := app.Group("/customers", withSession)
	customers.Get("", CustomersPage(d.Pages))
	customers.Post("", CreateCustomer(d.Log))
	customers.Post("/add", OpenAddCustomer())
	customers.Post("/add/cancel", CancelAddCustomer())
	customers.Post("/edit/cancel", CancelEditCustomer())
	customers.Post("/delete/cancel", CancelDeleteCustomer())
	customers.Post("/:id/edit", EditCustomer(d.Log))
	customers.Post("/:id/delete/confirm", ConfirmDeleteCustomer(d.Log))
	customers.Post("/:id/delete", RequestDeleteCustomer(d.Log))
	customers.Post("/:id", UpdateCustomer(d.Log))

	trainings := app.Group("/trainings", withSession)
	trainings.Get("", TrainingsPage(d.Pages))
	trainings.Post("", CreateTraining(d.Log))
	trainings.Post("/add", OpenAddTraining())
	trainings.Post("/add/cancel", CancelAddTraining())
	trainings.Post("/edit/cancel", CancelEditTraining())
	trainings.Post("/delete/cancel", CancelDeleteTraining())
	trainings.Post("/:id/edit", EditTraining(d.Log))
	trainings.Post("/:id/delete/confirm", ConfirmDeleteTraining(d.Log))
	trainings.Post("/:id/delete", RequestDeleteTraining(d.Log))
	trainings.Post("/:id", UpdateTraining(d.Log))
}

// HealthCheck reports backend reachability. A zero timeout means 2s.
func HealthCheck(backend Pinger, timeout time.Duration) fiber.Handler {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		if err := backend.Ping(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe answers 200 as long as the process serves requests.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// Home renders the welcome panel.
func Home(pages *ui.Renderer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return render(c, pages, fiber.StatusOK, ui.PageHome, ui.Page{Title: "Home", Active: ui.PageHome})
	}
}
