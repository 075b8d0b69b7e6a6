package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"trainerweb/internal/config"
	handlers "trainerweb/internal/http/handler"
	"trainerweb/internal/http/middleware"
	"trainerweb/internal/logging"
	"trainerweb/internal/otel"
	"trainerweb/internal/repository/rest"
	"trainerweb/internal/service"
	"trainerweb/internal/ui"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := cfg.Location()
	log := logging.New(os.Stdout, loc)
	ctx := context.Background()

	if err := run(ctx, cfg, loc, log); err != nil {
		log.Error(ctx, "server_failed", err, nil)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.AppConfig, loc *time.Location, log *logging.Logger) error {
	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Error(sctx, "tracing_shutdown_failed", err, nil)
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	httpMetrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return err
	}
	backendMetrics, err := rest.NewMetrics(reg)
	if err != nil {
		return err
	}

	// One client for both resources; its transport emits client spans.
	client, err := rest.NewClient(cfg.Backend.BaseURL,
		rest.WithTimeout(cfg.Backend.Timeout()),
		rest.WithMetrics(backendMetrics),
	)
	if err != nil {
		return err
	}

	pages, err := ui.New()
	if err != nil {
		return err
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(pages),
	})

	// Server span first so the request ID lands in a context that already
	// carries the trace.
	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == "/metrics"
	})))
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(loc))
	app.Use(httpMetrics.Handler())

	// Every browser session gets its own pair of views over the shared client.
	customerRepo := rest.NewCustomerREST(client)
	trainingRepo := rest.NewTrainingREST(client)
	workspaces := handlers.NewWorkspaces(
		func() service.CustomerView { return service.NewCustomerView(customerRepo, log) },
		func() service.TrainingView { return service.NewTrainingView(trainingRepo, log, loc) },
		cfg.SessionIdle(),
	)

	handlers.RegisterRoutes(app, handlers.Deps{
		Backend:       client,
		HealthTimeout: time.Duration(cfg.Backend.HealthTimeoutSec) * time.Second,
		Workspaces:    workspaces,
		Sessions:      handlers.NewSessionStore(cfg.SessionIdle()),
		Pages:         pages,
		Log:           log,
		Metrics:       reg,
	})

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		log.Info(ctx, "server_stopping", nil)
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error(ctx, "server_shutdown_failed", err, nil)
		}
	}()

	addr := ":" + cfg.Port
	log.Info(ctx, "server_starting", logging.Fields{
		"addr":     addr,
		"app_host": cfg.AppHost,
		"backend":  client.BaseURL(),
		"timezone": loc.String(),
	})
	return app.Listen(addr)
}
