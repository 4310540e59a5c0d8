package preview

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"path"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/vale/internal/foundation/errors"
	"git.home.luguber.info/inful/vale/internal/logfields"
	"git.home.luguber.info/inful/vale/internal/metrics"
	"git.home.luguber.info/inful/vale/internal/site"
)

// BuildErrorHeader is set on page responses served while the latest rebuild
// is failing.
const BuildErrorHeader = "X-Vale-Build-Error"

// Server serves a dist directory. Extension-less paths map to
// <path>/index.html, everything else is served as a file.
type Server struct {
	router chi.Router
	dist   string
	status *BuildStatus
	errs   *errors.HTTPErrorAdapter
	log    *slog.Logger
}

// NewServer creates the dev server handler. reg may be nil, in which case
// /metrics is not mounted.
func NewServer(dist string, status *BuildStatus, reg *prom.Registry, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	if status == nil {
		status = &BuildStatus{}
		status.SetSuccess()
	}
	s := &Server{
		dist:   dist,
		status: status,
		errs:   errors.NewHTTPErrorAdapter(log),
		log:    log,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(requestLogger(log))

	r.Get("/health", s.handleHealth)
	if reg != nil {
		r.Method(http.MethodGet, "/metrics", metrics.HTTPHandler(reg))
	}
	r.Get("/*", s.handleStatic)
	r.Head("/*", s.handleStatic)

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

type healthResponse struct {
	Status    string `json:"status"`
	LastBuild string `json:"last_build,omitempty"`
	Error     string `json:"error,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	lastErr, at, _ := s.status.Snapshot()
	resp := healthResponse{Status: "ok"}
	if !at.IsZero() {
		resp.LastBuild = at.UTC().Format(time.RFC3339)
	}
	if lastErr != nil {
		resp.Status = "build_failed"
		resp.Error = lastErr.Error()
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	lastErr, _, hasGoodBuild := s.status.Snapshot()
	if lastErr != nil {
		if !hasGoodBuild {
			s.errs.WriteErrorResponse(w, r, lastErr)
			return
		}
		w.Header().Set(BuildErrorHeader, lastErr.Error())
	}

	p := path.Clean("/" + chi.URLParam(r, "*"))
	file := filepath.Join(s.dist, filepath.FromSlash(p))
	if path.Ext(p) == "" {
		file = filepath.Join(file, site.IndexFile)
	}
	http.ServeFile(w, r, file)
}

func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Debug("request",
				logfields.Method(r.Method),
				logfields.Path(r.URL.Path),
				logfields.Status(ww.Status()),
				logfields.DurationMS(float64(time.Since(start).Microseconds())/1000),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
