package api

import (
	"Go2FlowTag/internal/model"
	"Go2FlowTag/internal/pipeline"
	"Go2FlowTag/internal/report"
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Runner is the part of pipeline.Runner the API depends on.
type Runner interface {
	Run(ctx context.Context) (*pipeline.Result, error)
}

// Handler serves the counts of the most recent pipeline run.
type Handler struct {
	runner   Runner
	gatherer prometheus.Gatherer

	mu     sync.RWMutex
	latest *pipeline.Result
}

// NewHandler creates a Handler. gatherer may be nil, in which case /metrics
// is not exposed.
func NewHandler(runner Runner, gatherer prometheus.Gatherer) *Handler {
	return &Handler{runner: runner, gatherer: gatherer}
}

// RunSummary is returned by the refresh endpoint.
type RunSummary struct {
	Timestamp      string   `json:"timestamp"`
	LookupEntries  int      `json:"lookup_entries"`
	AcceptedLines  uint64   `json:"accepted_lines"`
	MalformedLines uint64   `json:"malformed_lines"`
	Errors         []string `json:"errors,omitempty"`
}

// Refresh runs the pipeline and stores its result. Runs never overlap.
func (h *Handler) Refresh(ctx context.Context) (*pipeline.Result, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	result, err := h.runner.Run(ctx)
	if err != nil {
		return nil, err
	}
	h.latest = result
	return result, nil
}

// Router builds the HTTP routes.
func (h *Handler) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/counts/tags", h.tagsHandler).Methods("GET")
	r.HandleFunc("/api/v1/counts/ports", h.portsHandler).Methods("GET")
	r.HandleFunc("/api/v1/report", h.reportHandler).Methods("GET")
	r.HandleFunc("/api/v1/refresh", h.refreshHandler).Methods("POST")
	if h.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})).Methods("GET")
	}
	return r
}

func (h *Handler) counts() *model.Counts {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.latest == nil {
		return nil
	}
	return h.latest.Counts
}

// tagsHandler returns the tag table as a JSON array sorted by tag.
func (h *Handler) tagsHandler(w http.ResponseWriter, r *http.Request) {
	counts := h.counts()
	if counts == nil {
		http.Error(w, "no run has completed yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, counts.SortedTags())
}

// portsHandler returns the port/protocol table as a JSON array sorted by port, then protocol.
func (h *Handler) portsHandler(w http.ResponseWriter, r *http.Request) {
	counts := h.counts()
	if counts == nil {
		http.Error(w, "no run has completed yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, counts.SortedPortProtocols())
}

// reportHandler returns the plain-text report.
func (h *Handler) reportHandler(w http.ResponseWriter, r *http.Request) {
	counts := h.counts()
	if counts == nil {
		http.Error(w, "no run has completed yet", http.StatusServiceUnavailable)
		return
	}

	var buf bytes.Buffer
	if err := report.Render(&buf, counts); err != nil {
		http.Error(w, "failed to render report", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// refreshHandler re-runs the pipeline and returns a summary of the run.
func (h *Handler) refreshHandler(w http.ResponseWriter, r *http.Request) {
	result, err := h.Refresh(r.Context())
	if err != nil {
		http.Error(w, "run did not complete: "+err.Error(), http.StatusInternalServerError)
		return
	}

	summary := RunSummary{
		Timestamp:      result.Timestamp,
		LookupEntries:  result.LookupEntries,
		AcceptedLines:  result.Counts.Accepted,
		MalformedLines: result.Counts.Malformed,
	}
	for _, e := range result.Errors {
		summary.Errors = append(summary.Errors, e.Error())
	}
	writeJSON(w, summary)
}

func writeJSON(w http.ResponseWriter, v any) {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "failed to marshal response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(jsonBytes); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}
