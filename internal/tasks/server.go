package tasks

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/trace"

	"github.com/idilsaglam/bootcamp/internal/httpx"
)

// ServerOptions tunes NewServer. Zero values disable the optional pieces.
type ServerOptions struct {
	Token   string // bearer token required on /api/tasks
	Metrics *httpx.Metrics
	Tracer  trace.Tracer
}

// NewServer assembles the task API: routes, the JSON 404 fallback, /health,
// /metrics and the middleware stack.
func NewServer(store *Store, log *slog.Logger, opt ServerOptions) http.Handler {
	api := http.NewServeMux()
	NewHandler(store, log).Register(api)
	api.Handle("/", httpx.NotFound("Route not found"))

	// Only the task routes sit behind the token; other /api/ paths fall
	// through to the JSON 404 below.
	guarded := httpx.BearerAuth(opt.Token)(api)
	mux := http.NewServeMux()
	mux.Handle("/api/tasks", guarded)
	mux.Handle("/api/tasks/", guarded)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	if opt.Metrics != nil {
		mux.Handle("GET /metrics", opt.Metrics.Handler())
	}
	mux.Handle("/", httpx.NotFound("Route not found"))

	mws := []httpx.Middleware{httpx.RequestID, httpx.Logging(log)}
	if opt.Metrics != nil {
		mws = append(mws, opt.Metrics.Middleware)
	}
	if opt.Tracer != nil {
		mws = append(mws, httpx.Trace(opt.Tracer))
	}
	return httpx.Chain(mux, mws...)
}
