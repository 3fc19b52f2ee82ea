package hook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"sigs.k8s.io/controller-runtime/pkg/healthz"
	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/metrics"

	mpiv1alpha1 "github.com/numtide/mpi-operator/api/v1alpha1"
)

const (
	// DefaultBindAddress is where the hook listens unless configured.
	DefaultBindAddress = ":80"

	// DefaultMaxRequestBytes bounds a sync request body. Observed children
	// are full objects, so this leaves room for large pod templates.
	DefaultMaxRequestBytes int64 = 8 << 20

	defaultShutdownTimeout   = 30 * time.Second
	defaultReadHeaderTimeout = 10 * time.Second
)

// Options configures the hook server.
type Options struct {
	// BindAddress is the TCP address to listen on.
	BindAddress string

	// ShutdownTimeout bounds how long in-flight requests may take once the
	// server is stopping.
	ShutdownTimeout time.Duration

	// MaxRequestBytes bounds the sync request body. Larger bodies are
	// answered with 413.
	MaxRequestBytes int64
}

// Server serves the sync hook together with metrics and health endpoints.
// It implements the controller-runtime Runnable interface.
type Server struct {
	handler *Handler
	opts    Options
}

// NewServer creates a Server for handler.
func NewServer(handler *Handler, opts Options) *Server {
	if opts.BindAddress == "" {
		opts.BindAddress = DefaultBindAddress
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultShutdownTimeout
	}
	if opts.MaxRequestBytes <= 0 {
		opts.MaxRequestBytes = DefaultMaxRequestBytes
	}
	return &Server{handler: handler, opts: opts}
}

// Router returns the HTTP routes of the server. Known paths called with the
// wrong method are answered with 405. Sync requests continue the trace
// propagated by the caller; probes and scrapes are not traced.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/", s.serveSync).Methods(http.MethodPost)
	r.HandleFunc("/sync", s.serveSync).Methods(http.MethodPost)

	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})).
		Methods(http.MethodGet)

	checks := &healthz.Handler{Checks: map[string]healthz.Checker{"ping": healthz.Ping}}
	r.PathPrefix("/healthz").Handler(http.StripPrefix("/healthz", checks)).Methods(http.MethodGet)
	r.PathPrefix("/readyz").Handler(http.StripPrefix("/readyz", checks)).Methods(http.MethodGet)

	return otelhttp.NewHandler(r, "mpi-operator",
		otelhttp.WithFilter(func(req *http.Request) bool {
			return req.Method == http.MethodPost
		}),
	)
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	logger := log.FromContext(ctx).WithName("hook-server")

	srv := &http.Server{
		Addr:              s.opts.BindAddress,
		Handler:           s.Router(),
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return log.IntoContext(context.WithoutCancel(ctx), logger)
		},
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting sync hook server", "address", s.opts.BindAddress)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("sync hook server failed: %w", err)
	case <-ctx.Done():
		logger.Info("Shutting down sync hook server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down sync hook server: %w", err)
		}
		return nil
	}
}

func (s *Server) serveSync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.FromContext(ctx)

	var req mpiv1alpha1.SyncRequest
	body := http.MaxBytesReader(w, r.Body, s.opts.MaxRequestBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			logger.Error(err, "Sync request too large", "limit", maxErr.Limit)
			http.Error(w, fmt.Sprintf("sync request exceeds %d bytes", maxErr.Limit),
				http.StatusRequestEntityTooLarge)
			return
		}
		logger.Error(err, "Malformed sync request")
		http.Error(w, fmt.Sprintf("malformed sync request: %v", err), http.StatusBadRequest)
		return
	}

	resp, err := s.handler.Sync(ctx, &req)
	if err != nil {
		logger.Error(err, "Sync failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error(err, "Failed to write sync response")
	}
}
