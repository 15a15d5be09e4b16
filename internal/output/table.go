package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/buemura/warden/pkg/types"
)

// TableFormatter renders a scan result as a colored terminal table.
type TableFormatter struct{}

func (f *TableFormatter) Format(w io.Writer, result *types.ScanResult) error {
	if result.Error != "" {
		fmt.Fprintf(w, "\nScan error: %s\n", result.Error)
		return nil
	}

	fmt.Fprintf(w, "\n%s — %d files scanned", result.Root, result.FilesScanned)
	if len(result.Languages) > 0 {
		fmt.Fprintf(w, " (%s)", strings.Join(result.Languages, ", "))
	}
	fmt.Fprintf(w, " — %d findings\n", len(result.Findings))
	if result.TimedOut {
		fmt.Fprintln(w, color.YellowString("  Scan deadline reached — results are partial."))
	}

	if len(result.Findings) == 0 {
		fmt.Fprintln(w, "  No findings.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Severity", "Score", "Location", "Issue", "CWE"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetColumnSeparator("│")

	// Findings arrive in priority order from triage.
	for _, finding := range result.Findings {
		sev := colorSeverity(finding.Severity)
		location := fmt.Sprintf("%s:%d", finding.File, finding.Line)
		table.Append([]string{sev, fmt.Sprintf("%d", finding.PriorityScore), location, finding.Issue, finding.CWE})
	}

	table.Render()

	fmt.Fprintf(w, "  Summary: %s\n", formatSummary(result.Summary.SeverityCounts))
	fmt.Fprintf(w, "  Risk level: %s\n", colorRisk(result.Summary.RiskLevel))
	fmt.Fprintf(w, "  %s\n", result.Summary.Message)
	return nil
}

func colorSeverity(s types.Severity) string {
	switch s {
	case types.SeverityCritical:
		return color.RedString("CRITICAL")
	case types.SeverityHigh:
		return color.RedString("HIGH")
	case types.SeverityMedium:
		return color.YellowString("MEDIUM")
	case types.SeverityLow:
		return color.CyanString("LOW")
	case types.SeverityInfo:
		return color.WhiteString("INFO")
	default:
		return string(s)
	}
}

func colorRisk(level string) string {
	switch level {
	case "critical", "high":
		return color.RedString(strings.ToUpper(level))
	case "medium":
		return color.YellowString(strings.ToUpper(level))
	case "low":
		return color.GreenString(strings.ToUpper(level))
	default:
		return level
	}
}

func formatSummary(counts map[types.Severity]int) string {
	total := 0
	for _, c := range counts {
		total += c
	}
	return fmt.Sprintf("%d findings (%d critical, %d high, %d medium, %d low, %d info)",
		total,
		counts[types.SeverityCritical],
		counts[types.SeverityHigh],
		counts[types.SeverityMedium],
		counts[types.SeverityLow],
		counts[types.SeverityInfo],
	)
}
