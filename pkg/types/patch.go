package types

// PatchStrategy identifies which replacement technique located the target.
type PatchStrategy string

const (
	StrategyLine  PatchStrategy = "line"
	StrategyBlock PatchStrategy = "block"
	StrategyFuzzy PatchStrategy = "fuzzy"
)

// PatchResult records one patch attempt. It is appended to the patcher's
// ledger exactly once and never mutated afterwards.
type PatchResult struct {
	Success     bool          `json:"success"`
	File        string        `json:"file"`
	Line        int           `json:"line"`
	Original    string        `json:"original,omitempty"`
	Replacement string        `json:"replacement,omitempty"`
	Strategy    PatchStrategy `json:"strategy,omitempty"`
	ErrorKind   string        `json:"error_kind,omitempty"`
	Error       string        `json:"error,omitempty"`
}

// BatchResult partitions the outcomes of one ApplyBatch run.
type BatchResult struct {
	Applied      []PatchResult `json:"applied"`
	Failed       []PatchResult `json:"failed"`
	Total        int           `json:"total"`
	SuccessCount int           `json:"success_count"`
	FailureCount int           `json:"failure_count"`
}

// PatchSummary is the authoritative record of every attempt a patcher made.
type PatchSummary struct {
	TotalApplied  int           `json:"total_applied"`
	TotalFailed   int           `json:"total_failed"`
	Applied       []PatchResult `json:"applied"`
	Failed        []PatchResult `json:"failed"`
	FilesModified []string      `json:"files_modified"`
}
