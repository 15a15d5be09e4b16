package types

import "time"

// Severity represents the severity level of a finding.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// SeverityRank returns a numeric rank for sorting (lower = more severe).
func SeverityRank(s Severity) int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 3
	case SeverityInfo:
		return 4
	default:
		return 5
	}
}

// Finding is a single detected candidate vulnerability at a specific
// file and line. The scanner creates it and owns the identity fields;
// triage fills in the priority and explanation fields afterwards.
type Finding struct {
	File        string   `json:"file"`
	Line        int      `json:"line"`
	Issue       string   `json:"issue"`
	Severity    Severity `json:"severity"`
	Code        string   `json:"code"`
	ExactMatch  string   `json:"exact_match"`
	Description string   `json:"description"`
	Solution    string   `json:"solution"`
	CWE         string   `json:"cwe"`
	OWASP       string   `json:"owasp"`
	Category    string   `json:"category"`
	Context     []string `json:"context"`
	Language    string   `json:"language"`

	// Set by triage.Prioritize.
	PriorityScore int    `json:"priority_score"`
	Priority      string `json:"priority"`

	// Set by triage.Explain.
	Explanation string   `json:"explanation,omitempty"`
	Remediation string   `json:"remediation,omitempty"`
	References  []string `json:"references,omitempty"`
}

// ScanSummary is a derived, read-only aggregate over a scan's findings.
type ScanSummary struct {
	Status         string           `json:"status"`
	Message        string           `json:"message"`
	RiskLevel      string           `json:"risk_level"`
	SeverityCounts map[Severity]int `json:"severity_counts,omitempty"`
	CategoryCounts map[string]int   `json:"category_counts,omitempty"`
	TopIssues      []TopIssue       `json:"top_issues"`
}

// TopIssue is a bounded excerpt of a finding used in summaries.
type TopIssue struct {
	File     string   `json:"file"`
	Line     int      `json:"line"`
	Issue    string   `json:"issue"`
	Severity Severity `json:"severity"`
	CWE      string   `json:"cwe"`
}

// ScanResult is the output of one scan over a root directory.
type ScanResult struct {
	Root           string         `json:"root"`
	Languages      []string       `json:"languages"`
	LanguageCounts map[string]int `json:"language_counts,omitempty"`
	FilesScanned   int            `json:"files_scanned"`
	Findings       []Finding      `json:"findings"`
	Summary        ScanSummary    `json:"summary"`
	StartedAt      time.Time      `json:"started_at"`
	Duration       time.Duration  `json:"duration"`
	TimedOut       bool           `json:"timed_out,omitempty"`
	Error          string         `json:"error,omitempty"`
}
