package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/inference-sim/cpusim/sim"
)

// maxBodyBytes caps simulation request bodies.
const maxBodyBytes = 1 << 20

var (
	serveAddr     string
	serveLogLevel string
	serveDefaults = sim.DefaultRunConfig()
)

// Server exposes the simulator over a JSON HTTP API.
type Server struct {
	router   chi.Router
	defaults sim.RunConfig
}

// NewServer creates a Server whose requests start from defaults.
func NewServer(defaults sim.RunConfig) *Server {
	s := &Server{router: chi.NewRouter(), defaults: defaults}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := s.router
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/health", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/policies", s.handleListPolicies)
		r.Post("/simulate", s.handleSimulate)
		r.Post("/{policy}", s.handleSimulatePolicy)
	})
}

// APIError is the error member of the response envelope.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Response is the envelope wrapping every API reply.
type Response struct {
	RequestID string    `json:"request_id"`
	Status    string    `json:"status"`
	Data      any       `json:"data,omitempty"`
	Error     *APIError `json:"error,omitempty"`
}

type ctxKey string

const ctxKeyRequestID ctxKey = "request_id"

// requestIDFromContext extracts the request ID stored by requestIDMiddleware.
func requestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKeyRequestID).(string); ok {
		return id
	}
	return ""
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := "req_" + uuid.New().String()[:8]
		ctx := context.WithValue(r.Context(), ctxKeyRequestID, reqID)
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// loggingMiddleware logs method, path, status and duration of every request.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		logrus.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     sw.status,
			"duration":   time.Since(start).String(),
			"request_id": requestIDFromContext(r.Context()),
		}).Info("request")
	})
}

// statusWriter captures the response status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, data any, apiErr *APIError) {
	resp := Response{RequestID: requestIDFromContext(r.Context()), Status: "ok", Data: data, Error: apiErr}
	if apiErr != nil {
		resp.Status = "error"
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logrus.Warnf("writing response: %v", err)
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, code string, err error) {
	respondJSON(w, r, status, nil, &APIError{Code: code, Message: err.Error()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "healthy"}, nil)
}

func (s *Server) handleListPolicies(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, sim.AllSchedulerNames(), nil)
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	s.simulate(w, r, nil)
}

func (s *Server) handleSimulatePolicy(w http.ResponseWriter, r *http.Request) {
	policy := chi.URLParam(r, "policy")
	if !sim.IsValidScheduler(policy) {
		respondError(w, r, http.StatusNotFound, "unknown_policy", fmt.Errorf("unknown policy %q", policy))
		return
	}
	s.simulate(w, r, []string{policy})
}

// simulate decodes a workload bundle, overlays it on the server defaults and
// runs the requested policies. A non-nil only restricts the run to those policies.
func (s *Server) simulate(w http.ResponseWriter, r *http.Request, only []string) {
	var bundle sim.WorkloadBundle
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&bundle); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_body", fmt.Errorf("decoding workload: %w", err))
		return
	}
	if err := bundle.Validate(); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_workload", err)
		return
	}
	cfg := bundle.Apply(s.defaults)
	if only != nil {
		cfg.Policies = only
	}

	results, err := sim.RunAll(r.Context(), bundle.Processes, cfg)
	switch {
	case errors.Is(err, sim.ErrInvalidProcess), errors.Is(err, sim.ErrInvalidConfig):
		respondError(w, r, http.StatusBadRequest, "invalid_workload", err)
		return
	case err != nil:
		logrus.Errorf("simulation failed: %v", err)
		respondError(w, r, http.StatusInternalServerError, "simulation_failed", err)
		return
	}
	respondJSON(w, r, http.StatusOK, results, nil)
}

// serveCmd runs the HTTP simulation API until interrupted
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the scheduling simulation over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel(serveLogLevel)
		if err := serveDefaults.Validate(); err != nil {
			logrus.Fatalf("Invalid defaults: %v", err)
		}

		httpServer := &http.Server{
			Addr:              serveAddr,
			Handler:           NewServer(serveDefaults),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			logrus.Infof("server starting on %s", serveAddr)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logrus.Fatalf("server failed: %v", err)
			}
		}()

		<-ctx.Done()
		logrus.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logrus.Fatalf("shutdown error: %v", err)
		}
		logrus.Info("server stopped")
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":9095", "Listen address")
	serveCmd.Flags().IntVar(&serveDefaults.Quantum, "quantum", serveDefaults.Quantum, "Default Round Robin base time quantum (ticks)")
	serveCmd.Flags().IntVar(&serveDefaults.ContextSwitch, "context-switch", serveDefaults.ContextSwitch, "Default SJF context switching time (ticks)")
	serveCmd.Flags().Int64Var(&serveDefaults.Seed, "seed", serveDefaults.Seed, "Default seed for Round Robin aging keys")
	serveCmd.Flags().StringVar(&serveLogLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")

	rootCmd.AddCommand(serveCmd)
}
