package api

import (
	"bytes"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/buemura/warden/internal/output"
	"github.com/buemura/warden/internal/scanner"
	"github.com/buemura/warden/internal/web/jobs"
)

// Handlers holds dependencies for the REST API handlers.
type Handlers struct {
	Manager *jobs.Manager
}

// NewHandlers creates API handlers with the given dependencies.
func NewHandlers(manager *jobs.Manager) *Handlers {
	return &Handlers{Manager: manager}
}

// CreateScan handles POST /api/v1/scans.
func (h *Handlers) CreateScan(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCreateScanRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	info, err := os.Stat(req.Root)
	if err != nil || !info.IsDir() {
		writeError(w, http.StatusBadRequest, "root must be an existing directory")
		return
	}

	opts := scanner.DefaultOptions()
	if req.Workers > 0 {
		opts.Workers = req.Workers
	}
	if req.Timeout != "" {
		d, _ := time.ParseDuration(req.Timeout) // already validated
		opts.Timeout = d
	}
	opts.Languages = req.Languages

	job := h.Manager.Create(req.Root, opts)
	if err := h.Manager.Start(job.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to start scan: "+err.Error())
		return
	}

	// The scan goroutine owns the stored job now; report the status
	// Start just set rather than re-reading the shared struct.
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":     job.ID,
		"status": jobs.StatusRunning,
	})
}

// ListScans handles GET /api/v1/scans.
func (h *Handlers) ListScans(w http.ResponseWriter, r *http.Request) {
	jobList := h.Manager.List()

	type scanSummary struct {
		ID           string         `json:"id"`
		Root         string         `json:"root"`
		Status       jobs.JobStatus `json:"status"`
		CreatedAt    time.Time      `json:"created_at"`
		Languages    []string       `json:"languages,omitempty"`
		FindingCount int            `json:"finding_count"`
	}

	summaries := make([]scanSummary, len(jobList))
	for i, j := range jobList {
		summaries[i] = scanSummary{
			ID:           j.ID,
			Root:         j.Root,
			Status:       j.Status,
			CreatedAt:    j.CreatedAt,
			Languages:    j.Languages,
			FindingCount: j.FindingCount(),
		}
	}

	writeJSON(w, http.StatusOK, summaries)
}

// GetScan handles GET /api/v1/scans/{id}.
func (h *Handlers) GetScan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	job, err := h.Manager.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, job)
}

// GetScanReport handles GET /api/v1/scans/{id}/report.
func (h *Handlers) GetScanReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	job, err := h.Manager.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	if job.Status != jobs.StatusCompleted {
		writeError(w, http.StatusConflict, "scan is not yet completed")
		return
	}

	formatter := &output.MarkdownFormatter{}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, job.Result); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to render report: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/markdown")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// DeleteScan handles DELETE /api/v1/scans/{id}.
func (h *Handlers) DeleteScan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Manager.Delete(id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
