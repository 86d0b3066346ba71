package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/modamart/shop-analytics/internal/analytics"
)

// Config is the configuration for the http server
type Config struct {
	Port           string   `mapstructure:"port"`
	Address        string   `mapstructure:"address"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Server is the http server
type Server struct {
	hs   *http.Server
	c    *Config
	done chan struct{}
}

// New creates a new server
func New(config *Config) *Server {
	return &Server{
		c:    config,
		done: make(chan struct{}),
	}
}

// Done returns a channel that is closed when the http server exits
func (s *Server) Done() <-chan struct{} {
	return s.done
}

func newRouter(svc *analytics.Service, ping func(context.Context) error, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization"},
	}))

	h := &analyticsHandler{svc: svc}
	r.Route("/api", func(r chi.Router) {
		r.Get("/healthz", healthHandler(ping))
		r.Route("/analytics", func(r chi.Router) {
			r.Get("/", h.dashboard)
			r.Get("/metrics", h.metrics)
			r.Get("/revenue-chart", h.revenueChart)
			r.Get("/orders-chart", h.ordersChart)
			r.Get("/category-sales", h.categorySales)
			r.Get("/traffic-sources", h.trafficSources)
		})
	})
	return r
}

// Start starts the server and shuts it down when ctx is cancelled.
func (s *Server) Start(ctx context.Context, svc *analytics.Service, ping func(context.Context) error) error {
	listenerAddr := fmt.Sprintf("%s:%s", s.c.Address, s.c.Port)
	s.hs = &http.Server{
		Addr:    listenerAddr,
		Handler: newRouter(svc, ping, s.c.AllowedOrigins),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.hs.Shutdown(shutdownCtx); err != nil {
			slog.Default().Error("http server shutdown", "error", err.Error())
		}
	}()

	go func() {
		slog.Default().InfoContext(ctx, fmt.Sprintf("shop-analytics listening on http://%v", listenerAddr))
		err := s.hs.ListenAndServe()
		if err == http.ErrServerClosed {
			slog.Default().InfoContext(ctx, "http server returned")
		} else {
			slog.Default().ErrorContext(ctx, "http server exited with an error", "error", err.Error())
		}
		close(s.done)
	}()

	return nil
}
