package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/nutshell"
	"github.com/aretw0/nutshell/internal/logging"
	"github.com/aretw0/nutshell/pkg/symmetry"
	"github.com/aretw0/nutshell/pkg/table"
)

// MaxBodyBytes bounds the size of a rule file accepted by POST /compile.
const MaxBodyBytes = 4 << 20

// ReportCache memoizes reports by rule file. pkg/adapters/redis implements it.
type ReportCache interface {
	Key(seed uint64, source []byte) string
	Get(ctx context.Context, key string) (nutshell.Report, bool, error)
	Set(ctx context.Context, key string, rep nutshell.Report) error
}

// Options configures the handler. The zero value is usable.
type Options struct {
	Seed           uint64
	OrbitCacheSize int
	Logger         *slog.Logger
	// Observer receives section statistics; it must be safe for concurrent use.
	Observer table.Observer
	// Gatherer is served on GET /metrics when set.
	Gatherer prometheus.Gatherer
	// Cache is optional. Cache failures are logged and otherwise ignored.
	Cache ReportCache
}

// Server compiles rule files over HTTP. Each request gets its own compiler;
// the symmetry registry is shared.
type Server struct {
	opts     Options
	registry *symmetry.Registry
}

// SymmetryClass is one entry of GET /symmetries/{neighborhood}.
type SymmetryClass struct {
	Name  string `json:"name"`
	Order int    `json:"order"`
}

// NewHandler creates the HTTP handler.
func NewHandler(opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	s := &Server{opts: opts, registry: symmetry.NewRegistry()}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Post("/compile", s.Compile)
	r.Get("/symmetries/{neighborhood}", s.Symmetries)
	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
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

func (s *Server) compiler() (*nutshell.Compiler, error) {
	opts := []nutshell.Option{
		nutshell.WithLogger(s.opts.Logger),
		nutshell.WithSeed(s.opts.Seed),
		nutshell.WithRegistry(s.registry),
		nutshell.WithOrbitCacheSize(s.opts.OrbitCacheSize),
	}
	if s.opts.Observer != nil {
		opts = append(opts, nutshell.WithObserver(s.opts.Observer))
	}
	return nutshell.New(opts...)
}

// Compile handles POST /compile. The body is a YAML rule file; the response
// is a nutshell.Report, with status 422 when any section failed.
func (s *Server) Compile(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.opts.Logger.Warn("Compile: invalid request body", "error", err)
		return
	}

	rep, err := s.report(r.Context(), data)
	if err != nil {
		http.Error(w, "Compiler unavailable", http.StatusInternalServerError)
		s.opts.Logger.Error("Compile: compiler init failed", "error", err)
		return
	}

	status := http.StatusOK
	if !rep.OK() {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, rep, s.opts.Logger)
}

func (s *Server) report(ctx context.Context, data []byte) (nutshell.Report, error) {
	var key string
	if s.opts.Cache != nil {
		key = s.opts.Cache.Key(s.opts.Seed, data)
		rep, ok, err := s.opts.Cache.Get(ctx, key)
		if err != nil {
			s.opts.Logger.Warn("report cache unavailable", "error", err)
		} else if ok {
			return rep, nil
		}
	}

	c, err := s.compiler()
	if err != nil {
		return nutshell.Report{}, err
	}
	results, err := c.CompileYAML(data)
	rep := nutshell.NewReport(results, err)

	if s.opts.Cache != nil {
		if err := s.opts.Cache.Set(ctx, key, rep); err != nil {
			s.opts.Logger.Warn("report cache unavailable", "error", err)
		}
	}
	return rep, nil
}

// Symmetries handles GET /symmetries/{neighborhood}.
func (s *Server) Symmetries(w http.ResponseWriter, r *http.Request) {
	c, err := s.compiler()
	if err != nil {
		http.Error(w, "Compiler unavailable", http.StatusInternalServerError)
		return
	}
	classes, err := c.Classes(chi.URLParam(r, "neighborhood"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	out := make([]SymmetryClass, 0, len(classes))
	for _, t := range classes {
		out = append(out, SymmetryClass{Name: t.Name(), Order: t.Order()})
	}
	writeJSON(w, http.StatusOK, out, s.opts.Logger)
}

func writeJSON(w http.ResponseWriter, status int, v any, log *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("response encode failed", "error", err)
	}
}
