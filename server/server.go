// Package server exposes dashboard data over HTTP for an external UI shell.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"catalog-dashboard/models"
	"catalog-dashboard/presentation"
	"catalog-dashboard/services"
	"catalog-dashboard/utils"
)

// Server wires the dataset store and insight service to HTTP handlers.
type Server struct {
	store    *services.Store
	insights *services.InsightService
	opts     presentation.Options
	logger   *utils.Logger
}

// New creates a Server.
func New(store *services.Store, insights *services.InsightService, opts presentation.Options, logger *utils.Logger) *Server {
	return &Server{store: store, insights: insights, opts: opts, logger: logger}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", s.health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/dashboard", s.dashboard)
		r.Get("/titles", s.titles)
		r.Get("/options", s.options)
		r.Post("/dataset/reload", s.reload)
	})
	return r
}

// ListenAndServe runs the HTTP server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("[server] Listening on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("[server] Shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

type apiError struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Missing []string `json:"missing,omitempty"`
}

type optionsResponse struct {
	Types        []string  `json:"types"`
	DefaultTypes []string  `json:"defaultTypes"`
	Years        []int     `json:"years"`
	Countries    []string  `json:"countries"`
	Source       string    `json:"source"`
	LoadedAt     time.Time `json:"loadedAt"`
	Records      int       `json:"records"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if !s.store.Loaded() {
		status = "not_loaded"
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": status})
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.dataset(w, r)
	if !ok {
		return
	}
	sel, err := parseSelection(r, ds)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_SELECTION", err.Error())
		return
	}

	report := s.insights.Generate(ds, sel)
	respondJSON(w, http.StatusOK, presentation.Build(report, s.opts))
}

func (s *Server) titles(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.dataset(w, r)
	if !ok {
		return
	}
	sel, err := parseSelection(r, ds)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_SELECTION", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, presentation.BuildTable(services.Apply(ds, sel).Titles()))
}

func (s *Server) options(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.dataset(w, r)
	if !ok {
		return
	}
	types := ds.DistinctTypes()
	respondJSON(w, http.StatusOK, optionsResponse{
		Types:        types,
		DefaultTypes: types,
		Years:        ds.ReleaseYears(),
		Countries:    ds.Countries(),
		Source:       ds.Source(),
		LoadedAt:     ds.LoadedAt(),
		Records:      ds.Len(),
	})
}

func (s *Server) reload(w http.ResponseWriter, r *http.Request) {
	ds, err := s.store.Reload(r.Context())
	if err != nil {
		respondLoadError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"records": ds.Len(), "loadedAt": ds.LoadedAt()})
}

func (s *Server) dataset(w http.ResponseWriter, r *http.Request) (*services.Dataset, bool) {
	ds, err := s.store.Dataset(r.Context())
	if err != nil {
		respondLoadError(w, err)
		return nil, false
	}
	return ds, true
}

// parseSelection reads repeated type, year and country query parameters.
// Without any type parameter every type is selected; type parameters that
// are all empty ("?type=") select no type at all.
func parseSelection(r *http.Request, ds *services.Dataset) (models.Selection, error) {
	q := r.URL.Query()
	sel := services.DefaultSelection(ds)

	if raw, ok := q["type"]; ok {
		sel.Types = nonEmpty(raw)
	}
	for _, v := range nonEmpty(q["year"]) {
		y, err := strconv.Atoi(v)
		if err != nil {
			return models.Selection{}, errors.New("year must be an integer: " + strconv.Quote(v))
		}
		sel.Years = append(sel.Years, y)
	}
	sel.Countries = nonEmpty(q["country"])
	return sel, nil
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func respondLoadError(w http.ResponseWriter, err error) {
	body := apiError{Code: "DATASET_UNAVAILABLE", Message: err.Error()}
	var le *services.LoadError
	if errors.As(err, &le) {
		body.Missing = le.Missing
	}
	respondJSON(w, http.StatusServiceUnavailable, map[string]apiError{"error": body})
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, map[string]apiError{"error": {Code: code, Message: message}})
}

// respondJSON sends a JSON response with proper headers.
func respondJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
