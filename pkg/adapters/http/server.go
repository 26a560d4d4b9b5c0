package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/aretw0/formation"
	"github.com/aretw0/formation/internal/logging"
	"github.com/aretw0/formation/pkg/domain"
	"github.com/aretw0/formation/pkg/geom"
	"github.com/aretw0/formation/pkg/observability"
	"github.com/aretw0/formation/pkg/samples"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxDocumentSize bounds PUT /document bodies.
const maxDocumentSize = 8 << 20

// Server serves one formation over HTTP. Queries share a read lock; role
// updates, training and document replacement take the write lock, since a
// Formation does not synchronize itself.
type Server struct {
	mu       sync.RWMutex
	f        *formation.Formation
	registry *formation.Registry
	opts     []formation.Option
	Streams  *StreamManager
	metrics  *observability.Metrics
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithRegistry sets the registry used to decode uploaded documents.
func WithRegistry(reg *formation.Registry) Option {
	return func(s *Server) { s.registry = reg }
}

// WithFormationOptions sets the options applied to formations decoded from uploads.
func WithFormationOptions(opts ...formation.Option) Option {
	return func(s *Server) { s.opts = opts }
}

// WithMetrics counts position queries in m.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithGatherer exposes g on GET /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates a server for f.
func NewServer(f *formation.Formation, opts ...Option) *Server {
	s := &Server{
		f:        f,
		registry: formation.DefaultRegistry(),
		Streams:  NewStreamManager(),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Formation returns the served formation. Callers must not mutate it.
func (s *Server) Formation() *formation.Formation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.f
}

// View calls fn with the served formation under the read lock.
func (s *Server) View(fn func(f *formation.Formation)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.f)
}

// Replace swaps in a new formation and notifies event subscribers.
func (s *Server) Replace(f *formation.Formation) {
	s.mu.Lock()
	s.f = f
	s.mu.Unlock()
	s.Streams.Broadcast(event("reload", f.MethodName()))
}

// NewHandler creates the HTTP handler for f.
func NewHandler(f *formation.Formation, opts ...Option) http.Handler {
	return NewServer(f, opts...).Handler()
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/roles", s.GetRoles)
	r.Put("/roles/{unum}", s.PutRole)
	r.Get("/positions", s.GetPositions)
	r.Get("/positions/{unum}", s.GetPosition)
	r.Post("/samples", s.PostSample)
	r.Post("/train", s.PostTrain)
	r.Get("/document", s.GetDocument)
	r.Put("/document", s.PutDocument)
	r.Get("/events", s.SubscribeEvents)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrFormat), errors.Is(err, domain.ErrUnknownType):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrTraining):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, samples.ErrTooNear), errors.Is(err, samples.ErrFull), errors.Is(err, samples.ErrInvalidPoint):
		status = http.StatusConflict
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

// focusParam reads the x and y query parameters; missing ones are zero.
func focusParam(r *http.Request) (geom.Vector2D, error) {
	var focus geom.Vector2D
	for _, p := range []struct {
		name string
		dst  *float64
	}{{"x", &focus.X}, {"y", &focus.Y}} {
		raw := r.URL.Query().Get(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return focus, fmt.Errorf("%w: query parameter %s=%q is not a number", domain.ErrValidation, p.name, raw)
		}
		*p.dst = v
	}
	if !focus.IsValid() {
		return focus, fmt.Errorf("%w: focus must be finite", domain.ErrValidation)
	}
	return focus, nil
}

func unumParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "unum")
	unum, err := strconv.Atoi(raw)
	if err != nil || !domain.ValidUnum(unum) {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidUnum, raw)
	}
	return unum, nil
}

func (s *Server) countQuery() {
	if s.metrics != nil {
		s.metrics.PositionQueries.WithLabelValues("http").Inc()
	}
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	method, version := s.f.MethodName(), s.f.Version()
	n := s.f.Samples().Len()
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"app":            "formation-http",
		"version":        formation.Version,
		"method":         method,
		"format_version": version,
		"samples":        n,
	})
}

// GetRoles handles the GET /roles request.
func (s *Server) GetRoles(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	roles := rolesOf(s.f)
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, roles)
}

// PutRole handles the PUT /roles/{unum} request.
func (s *Server) PutRole(w http.ResponseWriter, r *http.Request) {
	unum, err := unumParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var body UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body: %v", domain.ErrValidation, err))
		return
	}

	s.mu.Lock()
	err = s.f.UpdateRole(unum, body.Code, body.Name)
	roles := rolesOf(s.f)
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("PutRole: update rejected", "unum", unum, "err", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, roles[unum-1])
}

// GetPositions handles the GET /positions request.
func (s *Server) GetPositions(w http.ResponseWriter, r *http.Request) {
	focus, err := focusParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	s.countQuery()

	s.mu.RLock()
	resp := PositionsResponse{Method: s.f.MethodName(), Focus: focus, Positions: positionsOf(s.f, focus)}
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, resp)
}

// GetPosition handles the GET /positions/{unum} request.
func (s *Server) GetPosition(w http.ResponseWriter, r *http.Request) {
	unum, err := unumParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	focus, err := focusParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	s.countQuery()

	s.mu.RLock()
	p := s.f.Position(unum, focus)
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, Position{Unum: unum, X: p.X, Y: p.Y})
}

// PostSample handles the POST /samples request. The sample is appended to
// the attached corpus, which is created when missing.
func (s *Server) PostSample(w http.ResponseWriter, r *http.Request) {
	var sample samples.Sample
	if err := json.NewDecoder(r.Body).Decode(&sample); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body: %v", domain.ErrValidation, err))
		return
	}

	s.mu.Lock()
	ds := s.f.Samples()
	if ds == nil {
		ds = samples.New()
		s.f.SetSamples(ds)
	}
	err := ds.Add(sample)
	n := ds.Len()
	s.mu.Unlock()

	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int{"samples": n})
}

// PostTrain handles the POST /train request.
func (s *Server) PostTrain(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	err := s.f.Train()
	resp := TrainResponse{Method: s.f.MethodName(), Samples: s.f.Samples().Len()}
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("PostTrain: training failed", "err", err)
		writeError(w, err)
		return
	}
	s.Streams.Broadcast(event("train", resp.Method))
	writeJSON(w, http.StatusOK, resp)
}

// GetDocument handles the GET /document request.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	doc, err := s.f.Encode()
	s.mu.RUnlock()
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write(doc)
}

// PutDocument handles the PUT /document request. The body is decoded with
// the server's registry, so it may switch the formation method.
func (s *Server) PutDocument(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxDocumentSize))
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}
	f, err := s.registry.Decode(bytes.NewReader(body), s.opts...)
	if err != nil {
		s.logger.Warn("PutDocument: rejected", "err", err)
		writeError(w, err)
		return
	}
	s.Replace(f)
	writeJSON(w, http.StatusOK, map[string]string{"method": f.MethodName()})
}

func event(kind, method string) string {
	b, _ := json.Marshal(map[string]string{"event": kind, "method": method})
	return string(b)
}
