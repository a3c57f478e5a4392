package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/knitcalc"
	"github.com/aretw0/knitcalc/internal/dto"
	"github.com/aretw0/knitcalc/internal/logging"
	"github.com/aretw0/knitcalc/pkg/domain"
	"github.com/aretw0/knitcalc/pkg/locale"
	"github.com/aretw0/knitcalc/pkg/ports"
	"github.com/aretw0/knitcalc/pkg/presentation"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
)

//go:embed openapi.yaml
var specYAML []byte

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// Server exposes a Calculator over a JSON API.
type Server struct {
	engine   ports.Calculator
	catalog  *locale.Catalog
	mode     domain.Mode
	metrics  http.Handler
	logger   *slog.Logger
	requests int
	window   time.Duration
}

// Option configures the Server.
type Option func(*Server)

// WithDefaultMode sets the mode used when a request names none.
func WithDefaultMode(m domain.Mode) Option {
	return func(s *Server) {
		s.mode = m
	}
}

// WithMetrics mounts h on GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithRateLimit allows requests per window and client IP. Zero disables limiting.
func WithRateLimit(requests int, window time.Duration) Option {
	return func(s *Server) {
		s.requests = requests
		s.window = window
	}
}

// Spec returns the embedded OpenAPI document.
func Spec() []byte {
	return specYAML
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine ports.Calculator, catalog *locale.Catalog, opts ...Option) (http.Handler, error) {
	s := &Server{
		engine:  engine,
		catalog: catalog,
		mode:    domain.Decrease,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.catalog == nil {
		s.catalog = locale.Default()
	}

	router, err := loadRouter()
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(enableCORS)
	if s.requests > 0 {
		r.Use(rateLimit(s.requests, s.window))
	}

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.Write(specYAML)
	})
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}

	r.Group(func(r chi.Router) {
		r.Use(validateRequests(router))
		r.Get("/health", s.GetHealth)
		r.Get("/locales", s.ListLocales)
		r.Get("/distribute", s.GetDistribute)
		r.Post("/distribute", s.PostDistribute)
	})

	return r, nil
}

func loadRouter() (routers.Router, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(specYAML)
	if err != nil {
		return nil, fmt.Errorf("load openapi spec: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validate openapi spec: %w", err)
	}
	return legacy.NewRouter(doc)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": knitcalc.Version})
}

type localeInfo struct {
	Lang    string   `json:"lang"`
	Name    string   `json:"name"`
	Aliases []string `json:"aliases,omitempty"`
}

// ListLocales handles the GET /locales request.
func (s *Server) ListLocales(w http.ResponseWriter, r *http.Request) {
	tables := s.catalog.Tables()
	resp := make([]localeInfo, 0, len(tables))
	for _, t := range tables {
		resp = append(resp, localeInfo{Lang: t.Lang, Name: t.Name, Aliases: t.Aliases})
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetDistribute handles the GET /distribute request.
func (s *Server) GetDistribute(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	var (
		in     dto.DistributeInput
		mode   *string
		lang   *string
		expand *bool
	)
	for _, p := range []struct {
		name     string
		required bool
		dest     any
	}{
		{"stitches", true, &in.Stitches},
		{"changes", true, &in.Changes},
		{"mode", false, &mode},
		{"lang", false, &lang},
		{"expand", false, &expand},
	} {
		if err := runtime.BindQueryParameter("form", true, p.required, p.name, query, p.dest); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_parameter", err.Error())
			return
		}
	}
	if mode != nil {
		in.Mode = *mode
	}
	if lang != nil {
		in.Lang = *lang
	}
	if expand != nil {
		in.Expand = *expand
	}

	s.distribute(w, r, in)
}

// PostDistribute handles the POST /distribute request.
func (s *Server) PostDistribute(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", err.Error())
		s.logger.Warn("Distribute: Invalid request body", "error", err, "request_id", requestIDFrom(r.Context()))
		return
	}
	in, err := dto.DecodeInput(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}

	s.distribute(w, r, in)
}

func (s *Server) distribute(w http.ResponseWriter, r *http.Request, in dto.DistributeInput) {
	ctx := r.Context()
	req, res, err := dto.Evaluate(ctx, s.engine, in, s.mode)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "calculation_failed", err.Error())
		s.logger.Error("Distribute failed", "error", err, "request_id", requestIDFrom(ctx))
		return
	}

	tbl := s.resolveLocale(in.Lang, r.Header.Get("Accept-Language"))
	view := presentation.Render(presentation.Context{Mode: req.Mode, Locale: tbl}, res)

	s.logger.Debug("Distribute",
		"request_id", requestIDFrom(ctx),
		"stitches", req.Stitches,
		"changes", req.Changes,
		"mode", req.Mode,
		"outcome", res.Outcome,
		"lang", tbl.Lang,
	)
	writeJSON(w, http.StatusOK, dto.NewDistributeResponse(res, view, tbl.Lang, in.Expand))
}

func (s *Server) resolveLocale(lang, acceptLanguage string) *locale.Table {
	if lang != "" {
		return s.catalog.Lookup(lang)
	}
	return s.catalog.LookupAcceptLanguage(acceptLanguage)
}

// -- Middleware --

type requestIDKey struct{}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept-Language, "+RequestIDHeader)
		w.Header().Set("Access-Control-Expose-Headers", RequestIDHeader)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func rateLimit(requests int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
			writeError(w, http.StatusTooManyRequests, "rate_limit_exceeded", "Too many requests. Please try again later.")
		}),
	)
}

// validateRequests rejects requests that break the OpenAPI contract.
// Routes the contract does not describe are passed through untouched.
func validateRequests(router routers.Router) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route, pathParams, err := router.FindRoute(r)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			input := &openapi3filter.RequestValidationInput{
				Request:    r,
				PathParams: pathParams,
				Route:      route,
			}
			if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
				writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// -- Helpers --

type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	writeJSON(w, status, errorBody{Error: code, Detail: detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "error", err)
	}
}
