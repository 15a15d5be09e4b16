package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/buemura/warden/pkg/types"
)

// WritePatchSummary renders the outcome of a patch session as a colored
// terminal table: one row per attempt, then aggregate counts.
func WritePatchSummary(w io.Writer, summary *types.PatchSummary) {
	total := summary.TotalApplied + summary.TotalFailed
	if total == 0 {
		fmt.Fprintln(w, "No patches attempted.")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Status", "Location", "Strategy", "Detail"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetColumnSeparator("│")

	for _, r := range summary.Applied {
		location := fmt.Sprintf("%s:%d", r.File, r.Line)
		table.Append([]string{color.GreenString("APPLIED"), location, string(r.Strategy), r.Original})
	}
	for _, r := range summary.Failed {
		location := fmt.Sprintf("%s:%d", r.File, r.Line)
		table.Append([]string{color.RedString("FAILED"), location, r.ErrorKind, r.Error})
	}

	table.Render()

	fmt.Fprintf(w, "  %d applied, %d failed", summary.TotalApplied, summary.TotalFailed)
	if len(summary.FilesModified) > 0 {
		fmt.Fprintf(w, " — modified %s", strings.Join(summary.FilesModified, ", "))
	}
	fmt.Fprintln(w)
}

// WriteDiff prints a unified diff with added lines in green and removed
// lines in red. Hunk headers are cyan.
func WriteDiff(w io.Writer, diff string) {
	if diff == "" {
		return
	}
	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			fmt.Fprintln(w, color.New(color.Bold).Sprint(line))
		case strings.HasPrefix(line, "@@"):
			fmt.Fprintln(w, color.CyanString(line))
		case strings.HasPrefix(line, "+"):
			fmt.Fprintln(w, color.GreenString(line))
		case strings.HasPrefix(line, "-"):
			fmt.Fprintln(w, color.RedString(line))
		default:
			fmt.Fprintln(w, line)
		}
	}
}
