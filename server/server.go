// Package server exposes the operations over HTTP so gateway triggers
// (events, cron, pipeline steps) can run them.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pithecene-io/catalogi/dispatch"
	"github.com/pithecene-io/catalogi/lode"
	"github.com/pithecene-io/catalogi/log"
	"github.com/pithecene-io/catalogi/metrics"
	"github.com/pithecene-io/catalogi/operation"
	"github.com/pithecene-io/catalogi/resource"
	"github.com/pithecene-io/catalogi/schema"
	"github.com/pithecene-io/catalogi/types"
)

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 5 * time.Second

// Records lists action records. *resource.Store implements it.
type Records interface {
	Records() []resource.Record
}

// History lists journaled invocations. *lode.Journal implements it.
type History interface {
	List(ctx context.Context, f lode.Filter) ([]types.Invocation, error)
}

// Handler serves the HTTP API.
type Handler struct {
	dispatcher *dispatch.Dispatcher
	records    Records
	history    History
	metrics    *metrics.Collector
	logger     *log.Logger
}

// NewHandler creates a handler. history and collector may be nil.
func NewHandler(d *dispatch.Dispatcher, records Records, history History, collector *metrics.Collector, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Nop()
	}
	return &Handler{
		dispatcher: d,
		records:    records,
		history:    history,
		metrics:    collector,
		logger:     logger,
	}
}

// Router builds the route table.
func (h *Handler) Router() *mux.Router {
	router := mux.NewRouter()
	h.RegisterRoutes(router)
	return router
}

// RegisterRoutes registers all API routes on router.
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/healthz", h.health).Methods(http.MethodGet)

	router.HandleFunc("/actions", h.listActions).Methods(http.MethodGet)
	router.HandleFunc("/actions/{name}", h.describeAction).Methods(http.MethodGet)
	router.HandleFunc("/actions/{name}/run", h.runAction).Methods(http.MethodPost)

	router.HandleFunc("/resources", h.listResources).Methods(http.MethodGet)

	if h.history != nil {
		router.HandleFunc("/invocations", h.listInvocations).Methods(http.MethodGet)
	}
	if reg := h.metrics.Registry(); reg != nil {
		router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}
}

// ActionSummary is one entry of GET /actions.
type ActionSummary struct {
	Name      string   `json:"name"`
	Reference string   `json:"reference"`
	Action    string   `json:"action"`
	Title     string   `json:"title"`
	Required  []string `json:"required"`
}

// Summarize lists the registered operations.
func Summarize(reg *operation.Registry) []ActionSummary {
	ops := reg.List()
	out := make([]ActionSummary, 0, len(ops))
	for _, op := range ops {
		s := op.Configuration()
		out = append(out, ActionSummary{
			Name:      op.Name,
			Reference: op.Reference,
			Action:    op.Action,
			Title:     s.Title,
			Required:  s.Required,
		})
	}
	return out
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	h.respondJSON(w, map[string]any{
		"status":  "ok",
		"version": types.Version,
		"plugin":  types.PluginPackage,
	}, http.StatusOK)
}

func (h *Handler) listActions(w http.ResponseWriter, _ *http.Request) {
	actions := Summarize(h.dispatcher.Registry())
	h.respondJSON(w, map[string]any{
		"actions": actions,
		"count":   len(actions),
	}, http.StatusOK)
}

func (h *Handler) describeAction(w http.ResponseWriter, r *http.Request) {
	op, err := h.dispatcher.Registry().Get(mux.Vars(r)["name"])
	if err != nil {
		h.respondError(w, err.Error(), http.StatusNotFound)
		return
	}
	h.respondJSON(w, op.Configuration().Document(), http.StatusOK)
}

type runRequest struct {
	Data          types.Data `json:"data"`
	Configuration types.Data `json:"configuration,omitempty"`
}

type runResponse struct {
	InvocationID string        `json:"invocation_id"`
	Outcome      types.Outcome `json:"outcome"`
	Result       any           `json:"result"`
}

func (h *Handler) runAction(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	res, err := h.dispatcher.RunAction(r.Context(), mux.Vars(r)["name"], req.Data, req.Configuration)
	if err != nil {
		h.respondError(w, err.Error(), statusFor(err))
		return
	}
	h.respondJSON(w, runResponse{
		InvocationID: res.Invocation.ID,
		Outcome:      res.Invocation.Outcome,
		Result:       res.Value,
	}, http.StatusOK)
}

func (h *Handler) listResources(w http.ResponseWriter, _ *http.Request) {
	records := h.records.Records()
	h.respondJSON(w, map[string]any{
		"resources": records,
		"count":     len(records),
	}, http.StatusOK)
}

func (h *Handler) listInvocations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := lode.Filter{
		Operation: q.Get("operation"),
		Kind:      types.InvocationKind(q.Get("kind")),
		Outcome:   types.Outcome(q.Get("outcome")),
	}
	if limit := q.Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			h.respondError(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		f.Limit = n
	}

	invs, err := h.history.List(r.Context(), f)
	if err != nil {
		h.logger.Error("journal read failed", map[string]any{"error": err.Error()})
		h.respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if invs == nil {
		invs = []types.Invocation{}
	}
	h.respondJSON(w, map[string]any{
		"invocations": invs,
		"count":       len(invs),
	}, http.StatusOK)
}

// statusFor maps dispatch errors to HTTP status codes.
func statusFor(err error) int {
	var verr *schema.ValidationError
	switch {
	case errors.Is(err, operation.ErrUnknownOperation), errors.Is(err, resource.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &verr), errors.Is(err, resource.ErrPluginMismatch):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

func (h *Handler) respondJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("failed to encode response", map[string]any{"error": err.Error()})
	}
}

func (h *Handler) respondError(w http.ResponseWriter, message string, status int) {
	h.respondJSON(w, map[string]string{"error": message}, status)
}

// Serve listens on addr until ctx is done, then shuts down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler, logger *log.Logger) error {
	if logger == nil {
		logger = log.Nop()
	}
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", map[string]any{"addr": addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("http server shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
