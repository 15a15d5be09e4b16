package scanner

import (
	"context"

	"github.com/buemura/warden/internal/triage"
	"github.com/buemura/warden/pkg/types"
)

// Run executes the full finding pipeline: scan, prioritize, explain,
// summarize. The finding order is final once Run returns; later
// consumers only read.
func Run(ctx context.Context, root string, opts Options) (*types.ScanResult, error) {
	result, err := Scan(ctx, root, opts)
	if err != nil {
		return nil, err
	}

	result.Findings = triage.Explain(triage.Prioritize(result.Findings))
	result.Summary = triage.Summarize(result.Findings)
	return result, nil
}
