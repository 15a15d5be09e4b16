package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/buemura/warden/pkg/types"
)

// MarkdownFormatter renders a scan result as a Markdown report suitable
// for pasting into docs, issues, or pull-request descriptions.
type MarkdownFormatter struct{}

func (f *MarkdownFormatter) Format(w io.Writer, result *types.ScanResult) error {
	if result.Error != "" {
		fmt.Fprintf(w, "## Scan Error\n\n> %s\n", result.Error)
		return nil
	}

	fmt.Fprintf(w, "## Security Scan — %s\n\n", result.Root)
	fmt.Fprintf(w, "Scanned %d files", result.FilesScanned)
	if len(result.Languages) > 0 {
		fmt.Fprintf(w, " (%s)", strings.Join(result.Languages, ", "))
	}
	fmt.Fprintf(w, ".\n\n")
	if result.TimedOut {
		fmt.Fprintln(w, "> Scan deadline reached — results are partial.")
		fmt.Fprintln(w)
	}

	if len(result.Findings) == 0 {
		fmt.Fprintln(w, "_No findings._")
		return nil
	}

	fmt.Fprintln(w, "| Severity | Score | Location | Issue | CWE |")
	fmt.Fprintln(w, "|----------|-------|----------|-------|-----|")

	for _, finding := range result.Findings {
		location := escapeMarkdown(fmt.Sprintf("%s:%d", finding.File, finding.Line))
		issue := escapeMarkdown(finding.Issue)
		fmt.Fprintf(w, "| %s | %d | %s | %s | %s |\n",
			severityBadge(finding.Severity), finding.PriorityScore, location, issue, finding.CWE)
	}

	fmt.Fprintf(w, "\n%s\n", markdownSummary(result.Summary.SeverityCounts))
	fmt.Fprintf(w, "\n**Risk level:** %s — %s\n", result.Summary.RiskLevel, result.Summary.Message)
	return nil
}

// severityBadge returns a bold, uppercased severity label for Markdown.
func severityBadge(s types.Severity) string {
	return fmt.Sprintf("**%s**", strings.ToUpper(string(s)))
}

// escapeMarkdown escapes pipe characters that would break Markdown tables.
func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

func markdownSummary(counts map[types.Severity]int) string {
	total := 0
	for _, c := range counts {
		total += c
	}
	return fmt.Sprintf("**Summary:** %d findings (%d critical, %d high, %d medium, %d low, %d info)",
		total,
		counts[types.SeverityCritical],
		counts[types.SeverityHigh],
		counts[types.SeverityMedium],
		counts[types.SeverityLow],
		counts[types.SeverityInfo],
	)
}
