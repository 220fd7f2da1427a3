package main

import (
	"context"
	"errors"
	"expvar"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dogparks/internal/observability"
	"dogparks/internal/parks"
	"dogparks/internal/ratelimiter"
	"dogparks/internal/ui"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type readinessChecker interface {
	Ping(ctx context.Context) error
}

type application struct {
	config      config
	logger      *zap.SugaredLogger
	store       readinessChecker
	parks       *parks.Service
	templates   map[string]*template.Template
	rateLimiter ratelimiter.Limiter
	metrics     *observability.Metrics
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	r.Use(app.metricsMiddleware)
	r.Use(app.RateLimiterMiddleware)

	//Set a timeout value on the request context (ctx), that will signal through ctx.Done() that the request has timed out and further processing should be stopped
	r.Use(middleware.Timeout(60 * time.Second))

	r.NotFound(app.notFoundHandler)
	r.MethodNotAllowed(app.notFoundHandler)

	r.Get("/healthz", app.healthCheckHandler)
	r.Get("/readyz", app.readinessHandler)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/debug/vars", expvar.Handler().ServeHTTP)

	r.Handle("/static/*", http.FileServerFS(ui.Files))

	r.Get("/", app.homeHandler)
	r.Get("/render-about", app.aboutHandler)
	r.Get("/render-results", app.renderResultsHandler)
	r.Post("/render-details", app.renderDetailsHandler)
	r.Post("/add-ratings", app.addRatingsHandler)

	return r
}

func (app *application) run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         app.config.listenAddr(),
		Handler:      mux,
		WriteTimeout: time.Second * 90,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	// Implementing graceful shutdown
	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", srv.Addr, "env", app.config.Env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", srv.Addr, "env", app.config.Env)

	return nil
}
