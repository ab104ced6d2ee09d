package apiserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/smartstow/move-planner/internal/config"
	"github.com/smartstow/move-planner/internal/events"
	handlers "github.com/smartstow/move-planner/internal/handlers/v1alpha1"
	"github.com/smartstow/move-planner/internal/service"
	"github.com/smartstow/move-planner/internal/store"
	"github.com/smartstow/move-planner/pkg/metrics"
	"github.com/smartstow/move-planner/pkg/middleware"
	"go.uber.org/zap"
)

const (
	gracefulShutdownTimeout = 5 * time.Second
)

type Server struct {
	cfg      *config.Config
	store    store.Store
	evWriter *events.EventProducer
	listener net.Listener
}

// New returns a new instance of a move-planner server.
func New(
	cfg *config.Config,
	store store.Store,
	ew *events.EventProducer,
	listener net.Listener,
) *Server {
	return &Server{
		cfg:      cfg,
		store:    store,
		evWriter: ew,
		listener: listener,
	}
}

// Handler builds the router with every middleware and route mounted.
func (s *Server) Handler() (http.Handler, error) {
	registry, err := service.NewReferenceRegistry(s.cfg.Service.Reference.File)
	if err != nil {
		return nil, err
	}
	if _, err := registry.Lookup(s.cfg.Service.Reference.Version); err != nil {
		return nil, err
	}

	router := chi.NewRouter()

	metricMiddleware := metrics.NewMiddleware("api_server")
	metricMiddleware.MustRegisterDefault()

	middlewares := []func(http.Handler) http.Handler{
		metricMiddleware.Handler,
		cors.Handler(cors.Options{
			AllowedOrigins: s.cfg.Service.CorsOrigins,
			AllowedMethods: []string{"GET", "PUT", "POST", "DELETE", "HEAD", "OPTIONS"},
			AllowedHeaders: []string{"*"},
			ExposedHeaders: []string{middleware.RequestIDHeader, "Content-Disposition"},
			MaxAge:         300,
		}),
		middleware.RequestID,
	}
	if s.cfg.Service.HTTPLogging {
		middlewares = append(middlewares, middleware.Logger())
	}
	middlewares = append(middlewares, chiMiddleware.Recoverer)
	router.Use(middlewares...)

	h := handlers.NewServiceHandler(
		service.NewEstimationService(registry, s.cfg.Service.Reference.Version),
		service.NewSnapshotService(s.store, s.evWriter),
		service.NewReportService(),
	)
	h.Register(router)

	return router, nil
}

func (s *Server) Run(ctx context.Context) error {
	zap.S().Named("api_server").Info("Initializing API server")

	handler, err := s.Handler()
	if err != nil {
		return err
	}

	if err := metrics.RegisterSnapshotStatsCollector(s.store); err != nil {
		zap.S().Named("api_server").Warnw("failed to register snapshot statistics collector", "error", err)
	}

	srv := http.Server{Addr: s.cfg.Service.Address, Handler: handler}

	go func() {
		<-ctx.Done()
		zap.S().Named("api_server").Infof("Shutdown signal received: %s", ctx.Err())
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		_ = srv.Shutdown(ctxTimeout)
		zap.S().Named("api_server").Info("api server terminated")
	}()

	zap.S().Named("api_server").Infof("Listening on %s...", s.listener.Addr().String())
	if err := srv.Serve(s.listener); err != nil && !errors.Is(err, net.ErrClosed) && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
