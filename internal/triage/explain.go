package triage

import (
	"fmt"

	"github.com/buemura/warden/internal/catalog"
	"github.com/buemura/warden/pkg/types"
)

// Explain enriches prioritized findings with a weakness description,
// remediation advice and reference links. Length and order are preserved.
func Explain(findings []types.Finding) []types.Finding {
	for i := range findings {
		findings[i].Explanation = catalog.DescriptionOf(findings[i].CWE)
		findings[i].Remediation = catalog.RemediationFor(findings[i].Issue)
		findings[i].References = catalog.References(findings[i].CWE)
	}
	return findings
}

// Summarize builds the derived aggregate for a finding set: counts by
// severity and category, a risk tier, and a top-5 excerpt.
func Summarize(findings []types.Finding) types.ScanSummary {
	if len(findings) == 0 {
		return types.ScanSummary{
			Status:    "clean",
			Message:   "No security vulnerabilities detected.",
			RiskLevel: "low",
			TopIssues: []types.TopIssue{},
		}
	}

	severityCounts := map[types.Severity]int{}
	categoryCounts := map[string]int{}
	for _, f := range findings {
		severityCounts[f.Severity]++
		categoryCounts[f.Category]++
	}

	critical := severityCounts[types.SeverityCritical]
	high := severityCounts[types.SeverityHigh]

	var riskLevel, status string
	switch {
	case critical > 0:
		riskLevel, status = "critical", "critical"
	case high > 3:
		riskLevel, status = "high", "needs-attention"
	case high > 0:
		riskLevel, status = "medium", "review-recommended"
	default:
		riskLevel, status = "low", "acceptable"
	}

	top := findings
	if len(top) > 5 {
		top = top[:5]
	}
	topIssues := make([]types.TopIssue, len(top))
	for i, f := range top {
		topIssues[i] = types.TopIssue{
			File:     f.File,
			Line:     f.Line,
			Issue:    f.Issue,
			Severity: f.Severity,
			CWE:      f.CWE,
		}
	}

	return types.ScanSummary{
		Status:         status,
		Message:        summaryMessage(len(findings), critical, high),
		RiskLevel:      riskLevel,
		SeverityCounts: severityCounts,
		CategoryCounts: categoryCounts,
		TopIssues:      topIssues,
	}
}

func summaryMessage(total, critical, high int) string {
	switch {
	case critical > 0:
		return fmt.Sprintf("Found %d security issues including %d critical vulnerabilities "+
			"that require immediate attention. Review and fix the critical issues first.", total, critical)
	case high > 0:
		return fmt.Sprintf("Found %d security issues with %d high-severity vulnerabilities. "+
			"These should be addressed in the next development cycle.", total, high)
	case total > 0:
		return fmt.Sprintf("Found %d security issues of medium or low severity. "+
			"Review when time permits to improve overall security posture.", total)
	default:
		return "No security vulnerabilities detected. Good job!"
	}
}
