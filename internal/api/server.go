// Package api exposes the terrain composition engine over HTTP. Both
// endpoints are read-only; they never touch the geometry catalog.
package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/LuminariMUD/wildeditor-sub001/internal/config"
	"github.com/LuminariMUD/wildeditor-sub001/internal/httputil"
	"github.com/LuminariMUD/wildeditor-sub001/internal/wilderness"
)

// ANSI escape codes for access log colouring
const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

// BatchDeadline bounds a whole batch request; elapsed deadlines surface as a
// Timeout condition rather than partial results.
const BatchDeadline = 10 * time.Second

type Server struct {
	eval   *wilderness.Evaluator
	tuning *config.TuningConfig
}

func NewServer(eval *wilderness.Evaluator, tuning *config.TuningConfig) *Server {
	return &Server{eval: eval, tuning: tuning}
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 400:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	default:
		return strconv.Itoa(statusCode)
	}
}

// LoggingMiddleware logs method, path, query, status, and duration
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		log.Printf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/terrain", s.terrainAt)
	mux.HandleFunc("/api/terrain/batch", s.terrainBatch)
	mux.HandleFunc("/api/config", s.showConfig)
	return mux
}

// writeEngineError maps the engine's error taxonomy onto HTTP statuses.
// OutOfDomain and RequestTooLarge are caller errors; Timeout and
// UpstreamUnavailable are gateway conditions.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, wilderness.ErrOutOfDomain):
		httputil.BadRequest(w, err.Error())
	case errors.Is(err, wilderness.ErrRequestTooLarge):
		httputil.BadRequest(w, err.Error())
	case errors.Is(err, wilderness.ErrTimeout):
		httputil.WriteJSONError(w, http.StatusGatewayTimeout, err.Error())
	case errors.Is(err, wilderness.ErrUpstreamUnavailable):
		httputil.WriteJSONError(w, http.StatusBadGateway, err.Error())
	default:
		httputil.InternalServerError(w, err.Error())
	}
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, errors.New("missing parameter " + name)
	}
	return strconv.Atoi(raw)
}

func (s *Server) terrainAt(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	x, err := queryInt(r, "x")
	if err != nil {
		httputil.BadRequest(w, "invalid 'x' parameter")
		return
	}
	y, err := queryInt(r, "y")
	if err != nil {
		httputil.BadRequest(w, "invalid 'y' parameter")
		return
	}

	terrain, err := s.eval.TerrainAt(r.Context(), x, y)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	httputil.WriteJSONOK(w, terrain)
}

func (s *Server) terrainBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	var rect [4]int
	for i, name := range []string{"x_min", "y_min", "x_max", "y_max"} {
		v, err := queryInt(r, name)
		if err != nil {
			httputil.BadRequest(w, "invalid '"+name+"' parameter")
			return
		}
		rect[i] = v
	}

	ctx, cancel := context.WithTimeout(r.Context(), BatchDeadline)
	defer cancel()

	terrain, err := s.eval.TerrainBatch(ctx, rect[0], rect[1], rect[2], rect[3])
	if err != nil {
		writeEngineError(w, err)
		return
	}
	httputil.WriteJSONOK(w, terrain)
}

func (s *Server) showConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	httputil.WriteJSONOK(w, map[string]interface{}{
		"domain_min":       wilderness.DomainMin,
		"domain_max":       wilderness.DomainMax,
		"max_batch_points": s.tuning.GetMaxBatchPoints(),
		"worker_pool_size": s.tuning.GetWorkerPoolSize(),
		"cache_ttl":        s.tuning.GetCacheTTL().String(),
		"elevation_min":    s.tuning.GetElevationMin(),
		"elevation_max":    s.tuning.GetElevationMax(),
		"temperature_min":  s.tuning.GetTemperatureMin(),
		"temperature_max":  s.tuning.GetTemperatureMax(),
		"poll_interval":    s.tuning.GetPollInterval().String(),
	})
}
