package node

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/fzft/go-resp/config"
	"github.com/fzft/go-resp/db"
	"github.com/fzft/go-resp/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const metricsShutdownTimeout = 5 * time.Second

type Server struct {
	cfg     config.Config
	db      *db.Store
	handler ReaderHandler
}

func NewServer(cfg config.Config) *Server {
	store := db.New()
	return &Server{
		cfg:     cfg,
		db:      store,
		handler: NewRESPHandler(store, cfg.MaxQueryBuffer),
	}
}

func (s *Server) SetHandler(handler ReaderHandler) {
	s.handler = handler
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		log.Logger.Error("listen error", zap.String("addr", s.cfg.Addr), zap.Error(err))
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve runs the event loop on ln until ctx is done. ln is closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	reactor, err := NewReactor(ln, s.cfg.MaxClients)
	if err != nil {
		ln.Close()
		return err
	}
	reactor.Handler(s.handler)

	if s.cfg.MetricsAddr != "" {
		stop := s.serveMetrics()
		defer stop()
	}

	log.Logger.Info("listening", zap.String("addr", ln.Addr().String()))
	// blocking
	reactor.Run(ctx)
	log.Logger.Info("shutting down server")
	return nil
}

// serveMetrics exposes /metrics on cfg.MetricsAddr and returns its shutdown
// func.
func (s *Server) serveMetrics() func() {
	RegisterMetrics()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              s.cfg.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Logger.Info("metrics listening", zap.String("addr", s.cfg.MetricsAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Logger.Error("metrics server error", zap.Error(err))
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Logger.Debug("metrics shutdown", zap.Error(err))
		}
	}
}
