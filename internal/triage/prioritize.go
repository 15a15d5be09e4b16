// Package triage ranks, explains and summarizes scanner findings.
// It only annotates findings; it never drops or creates them.
package triage

import (
	"sort"

	"github.com/buemura/warden/internal/catalog"
	"github.com/buemura/warden/pkg/types"
)

// Tier boundaries are inclusive on the lower edge.
const (
	tierCritical = 90
	tierHigh     = 70
	tierMedium   = 50
)

// Prioritize computes a priority score and tier for each finding and
// sorts the slice descending by score. The sort is stable: equal scores
// keep scanner emission order.
func Prioritize(findings []types.Finding) []types.Finding {
	for i := range findings {
		score := catalog.SeverityWeight(findings[i].Severity) + cweBoost(findings[i].CWE)
		findings[i].PriorityScore = score
		findings[i].Priority = tierFor(score)
	}

	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].PriorityScore > findings[j].PriorityScore
	})

	return findings
}

// cweBoost gives the highest-impact weakness classes extra weight.
func cweBoost(cwe string) int {
	switch cwe {
	case "CWE-94", "CWE-89", "CWE-78":
		return 20
	case "CWE-79", "CWE-22", "CWE-798":
		return 10
	default:
		return 0
	}
}

func tierFor(score int) string {
	switch {
	case score >= tierCritical:
		return "critical"
	case score >= tierHigh:
		return "high"
	case score >= tierMedium:
		return "medium"
	default:
		return "low"
	}
}
