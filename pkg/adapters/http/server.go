package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/acceptor/pkg/config"
	"github.com/aretw0/acceptor/pkg/domain"
	"github.com/aretw0/acceptor/pkg/ports"
	"github.com/aretw0/acceptor/pkg/schema"
)

// maxBodyBytes caps the size of a build request body.
const maxBodyBytes = 1 << 20

// Server exposes a Builder over HTTP.
type Server struct {
	Builder ports.Builder
	Logger  *slog.Logger
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

// NewHandler creates a new HTTP handler for the builder. If gatherer is not
// nil its metrics are served on /metrics.
func NewHandler(builder ports.Builder, gatherer prometheus.Gatherer, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{Builder: builder, Logger: logger}

	r := chi.NewRouter()
	r.Post("/v1/acceptors", s.Build)
	r.Get("/openapi.yaml", serveOpenAPI)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Build handles the POST /v1/acceptors request.
func (s *Server) Build(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&body); err != nil {
		s.Logger.Warn("Build: invalid request body", "err", err)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	req, err := config.DecodeRequest(body)
	if err != nil {
		s.writeError(w, err)
		return
	}

	g, err := s.Builder.Build(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		s.Logger.Error("Build failed", "err", err)
	} else {
		s.Logger.Debug("Build rejected", "status", status, "err", err)
	}

	resp := ErrorResponse{Error: err.Error()}
	for _, fe := range schema.ValidationErrors(err) {
		var ve *schema.ValidationError
		if errors.As(fe, &ve) {
			resp.Error = "validation failed"
			resp.Fields = append(resp.Fields, ve.Error())
		}
	}
	writeJSON(w, status, resp)
}

// StatusFor maps a build error to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrWordNotFound), errors.Is(err, domain.ErrAllophoneNotFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidConfig),
		errors.Is(err, domain.ErrUnknownTopology),
		errors.Is(err, domain.ErrMissingLexicon),
		errors.Is(err, domain.ErrMissingStateTying),
		errors.Is(err, domain.ErrEmptySequence),
		errors.Is(err, domain.ErrLabelOutOfRange),
		errors.Is(err, domain.ErrMalformedInput):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
