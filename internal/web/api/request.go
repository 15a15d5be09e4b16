package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// CreateScanRequest is the JSON body for POST /api/v1/scans.
type CreateScanRequest struct {
	Root      string   `json:"root"`
	Languages []string `json:"languages"`
	Workers   int      `json:"workers"`
	Timeout   string   `json:"timeout"`
}

// decodeCreateScanRequest reads and validates the request body.
func decodeCreateScanRequest(r *http.Request) (*CreateScanRequest, error) {
	var req CreateScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	if req.Root == "" {
		return nil, fmt.Errorf("root is required")
	}

	if req.Workers < 0 {
		return nil, fmt.Errorf("workers must be non-negative")
	}

	if req.Timeout != "" {
		if _, err := time.ParseDuration(req.Timeout); err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %w", req.Timeout, err)
		}
	}

	return &req, nil
}
