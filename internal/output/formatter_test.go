package output

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buemura/warden/pkg/types"
)

func sampleResult() *types.ScanResult {
	return &types.ScanResult{
		Root:         "/srv/app",
		Languages:    []string{"python"},
		FilesScanned: 12,
		StartedAt:    time.Now(),
		Findings: []types.Finding{
			{
				File: "app.py", Line: 10, Issue: "code-injection",
				Severity: types.SeverityCritical, CWE: "CWE-94",
				PriorityScore: 120, Priority: "critical",
			},
			{
				File: "util.py", Line: 3, Issue: "weak-crypto",
				Severity: types.SeverityMedium, CWE: "CWE-327",
				PriorityScore: 60, Priority: "medium",
			},
		},
		Summary: types.ScanSummary{
			Status:    "completed",
			Message:   "Found 2 security issues requiring attention",
			RiskLevel: "critical",
			SeverityCounts: map[types.Severity]int{
				types.SeverityCritical: 1,
				types.SeverityMedium:   1,
			},
		},
	}
}

func TestGetFormatter_Table(t *testing.T) {
	f, err := GetFormatter("table")
	require.NoError(t, err)
	assert.IsType(t, &TableFormatter{}, f)
}

func TestGetFormatter_JSON(t *testing.T) {
	f, err := GetFormatter("json")
	require.NoError(t, err)
	assert.IsType(t, &JSONFormatter{}, f)
}

func TestGetFormatter_Markdown(t *testing.T) {
	f, err := GetFormatter("markdown")
	require.NoError(t, err)
	assert.IsType(t, &MarkdownFormatter{}, f)
}

func TestGetFormatter_Unknown(t *testing.T) {
	_, err := GetFormatter("xml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown")
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{}
	err := f.Format(&buf, sampleResult())
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "/srv/app")
	assert.Contains(t, output, "12 files scanned")
	assert.Contains(t, output, "code-injection")
	assert.Contains(t, output, "app.py:10")
	assert.Contains(t, output, "2 findings")
	assert.Contains(t, output, "Risk level")
}

func TestTableFormatter_Error(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{}
	err := f.Format(&buf, &types.ScanResult{Error: "root does not exist"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "root does not exist")
}

func TestTableFormatter_NoFindings(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{}
	err := f.Format(&buf, &types.ScanResult{Root: "/srv/app"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No findings")
}

func TestTableFormatter_TimedOut(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{}
	result := sampleResult()
	result.TimedOut = true
	err := f.Format(&buf, result)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "partial")
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &JSONFormatter{}
	err := f.Format(&buf, sampleResult())
	require.NoError(t, err)

	var decoded types.ScanResult
	err = json.Unmarshal(buf.Bytes(), &decoded)
	require.NoError(t, err)
	assert.Equal(t, "/srv/app", decoded.Root)
	assert.Len(t, decoded.Findings, 2)
	assert.Equal(t, 120, decoded.Findings[0].PriorityScore)
}

func TestMarkdownFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &MarkdownFormatter{}
	err := f.Format(&buf, sampleResult())
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "## Security Scan — /srv/app")
	assert.Contains(t, output, "| Severity | Score | Location | Issue | CWE |")
	assert.Contains(t, output, "**CRITICAL**")
	assert.Contains(t, output, "app.py:10")
	assert.Contains(t, output, "**Summary:** 2 findings")
	assert.Contains(t, output, "**Risk level:** critical")
}

func TestMarkdownFormatter_Error(t *testing.T) {
	var buf bytes.Buffer
	f := &MarkdownFormatter{}
	err := f.Format(&buf, &types.ScanResult{Error: "root does not exist"})
	require.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "Error")
	assert.Contains(t, output, "root does not exist")
}

func TestMarkdownFormatter_NoFindings(t *testing.T) {
	var buf bytes.Buffer
	f := &MarkdownFormatter{}
	err := f.Format(&buf, &types.ScanResult{Root: "/srv/app"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No findings")
}

func TestMarkdownFormatter_EscapesPipes(t *testing.T) {
	var buf bytes.Buffer
	f := &MarkdownFormatter{}
	result := &types.ScanResult{
		Root: "/srv/app",
		Findings: []types.Finding{
			{File: "a|b.py", Line: 1, Issue: "code-injection", Severity: types.SeverityHigh},
		},
	}
	err := f.Format(&buf, result)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `a\|b.py`)
}

func TestWritePatchSummary(t *testing.T) {
	var buf bytes.Buffer
	summary := &types.PatchSummary{
		TotalApplied: 1,
		TotalFailed:  1,
		Applied: []types.PatchResult{
			{Success: true, File: "app.py", Line: 10, Strategy: types.StrategyLine, Original: "eval(x)"},
		},
		Failed: []types.PatchResult{
			{File: "app.py", Line: 400, ErrorKind: "OutOfRange", Error: "line 400 out of range"},
		},
		FilesModified: []string{"app.py"},
	}

	WritePatchSummary(&buf, summary)

	output := buf.String()
	assert.Contains(t, output, "APPLIED")
	assert.Contains(t, output, "FAILED")
	assert.Contains(t, output, "app.py:10")
	assert.Contains(t, output, "OutOfRange")
	assert.Contains(t, output, "1 applied, 1 failed")
	assert.Contains(t, output, "modified app.py")
}

func TestWritePatchSummary_Empty(t *testing.T) {
	var buf bytes.Buffer
	WritePatchSummary(&buf, &types.PatchSummary{})
	assert.Contains(t, buf.String(), "No patches attempted")
}

func TestWriteDiff(t *testing.T) {
	var buf bytes.Buffer
	diff := "--- original\n+++ modified\n@@ -1,3 +1,3 @@\n context\n-old\n+new\n"
	WriteDiff(&buf, diff)

	output := buf.String()
	assert.Contains(t, output, "-old")
	assert.Contains(t, output, "+new")
	assert.Contains(t, output, "@@ -1,3 +1,3 @@")
}

func TestWriteDiff_Empty(t *testing.T) {
	var buf bytes.Buffer
	WriteDiff(&buf, "")
	assert.Empty(t, buf.String())
}
