// Package patcher applies externally supplied replacement code to the
// locations the scanner found, using a three-tier strategy: exact line
// substitution, first-occurrence block replacement, then a
// whitespace-insensitive fuzzy match. Every attempt, successful or not,
// is recorded exactly once in the ledger.
package patcher

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/buemura/warden/internal/logging"
	"github.com/buemura/warden/pkg/types"
)

// Patch failure taxonomy.
var (
	ErrNoFix            = errors.New("no replacement code provided")
	ErrFileUnreadable   = errors.New("file not readable")
	ErrOutOfRange       = errors.New("line number out of range")
	ErrLocationNotFound = errors.New("could not locate code to replace")
	ErrWriteFailed      = errors.New("writing patched file failed")
)

// ErrorKind labels carried on failed PatchResults.
const (
	KindNoFix            = "NoFixProvided"
	KindFileUnreadable   = "FileUnreadable"
	KindOutOfRange       = "OutOfRange"
	KindLocationNotFound = "LocationNotFound"
	KindWriteFailed      = "WriteFailed"
)

func kindOf(err error) string {
	switch {
	case errors.Is(err, ErrNoFix):
		return KindNoFix
	case errors.Is(err, ErrFileUnreadable):
		return KindFileUnreadable
	case errors.Is(err, ErrOutOfRange):
		return KindOutOfRange
	case errors.Is(err, ErrLocationNotFound):
		return KindLocationNotFound
	case errors.Is(err, ErrWriteFailed):
		return KindWriteFailed
	default:
		return ""
	}
}

// Patcher applies fixes to files under a repository root and keeps the
// append-only ledger of every attempt.
type Patcher struct {
	root string

	mu      sync.Mutex
	applied []types.PatchResult
	failed  []types.PatchResult
}

// New creates a Patcher rooted at the given directory.
func New(root string) *Patcher {
	return &Patcher{root: root}
}

// ApplyFix applies a single replacement to the file a finding points at.
// Strategies are tried in order — line, block, fuzzy — and the first
// success wins. The outcome is recorded in the ledger before returning.
func (p *Patcher) ApplyFix(finding types.Finding, replacement string) types.PatchResult {
	result, err := p.applyFix(finding, replacement)
	if err != nil {
		result = types.PatchResult{
			Success:   false,
			File:      finding.File,
			Line:      finding.Line,
			ErrorKind: kindOf(err),
			Error:     err.Error(),
		}
	}

	p.mu.Lock()
	if result.Success {
		p.applied = append(p.applied, result)
	} else {
		p.failed = append(p.failed, result)
	}
	p.mu.Unlock()

	return result
}

func (p *Patcher) applyFix(finding types.Finding, replacement string) (types.PatchResult, error) {
	replacement = strings.TrimSpace(replacement)
	if replacement == "" {
		return types.PatchResult{}, ErrNoFix
	}

	path := filepath.Join(p.root, filepath.FromSlash(finding.File))
	data, err := os.ReadFile(path)
	if err != nil {
		return types.PatchResult{}, fmt.Errorf("%w: %s: %v", ErrFileUnreadable, finding.File, err)
	}
	content := string(data)
	lines := strings.Split(content, "\n")

	original := strings.TrimSpace(finding.Code)

	// Line strategy. A single-line replacement targets the finding's line
	// directly; a bad line number is a hard failure here, never a silent
	// fallback to a lexical search that could hit the wrong location.
	if !strings.Contains(replacement, "\n") {
		if finding.Line < 1 || finding.Line > len(lines) {
			return types.PatchResult{}, fmt.Errorf("%w: line %d (file has %d lines)",
				ErrOutOfRange, finding.Line, len(lines))
		}
		return p.replaceLine(path, lines, finding.Line, replacement, types.StrategyLine)
	}

	if original != "" {
		// Block strategy: replace the first verbatim occurrence only;
		// later identical fragments belong to other findings.
		if idx := strings.Index(content, original); idx >= 0 {
			patched := content[:idx] + replacement + content[idx+len(original):]
			if err := writeFile(path, patched); err != nil {
				return types.PatchResult{}, err
			}
			return types.PatchResult{
				Success:     true,
				File:        finding.File,
				Line:        finding.Line,
				Original:    truncate(original, 100),
				Replacement: truncate(replacement, 100),
				Strategy:    types.StrategyBlock,
			}, nil
		}

		// Fuzzy strategy: whitespace-insensitive containment either way.
		// Blank lines are skipped; an empty normalized line is a substring
		// of everything and would hijack the match.
		normalizedOld := normalizeWhitespace(original)
		for i, line := range lines {
			normalizedLine := normalizeWhitespace(line)
			if normalizedLine == "" {
				continue
			}
			if strings.Contains(normalizedLine, normalizedOld) ||
				strings.Contains(normalizedOld, normalizedLine) {
				return p.replaceLine(path, lines, i+1, replacement, types.StrategyFuzzy)
			}
		}
	}

	return types.PatchResult{}, fmt.Errorf("%w: %s:%d", ErrLocationNotFound, finding.File, finding.Line)
}

// replaceLine substitutes one physical line, re-applying the original
// line's leading whitespace to the replacement.
func (p *Patcher) replaceLine(path string, lines []string, lineNum int, replacement string, strategy types.PatchStrategy) (types.PatchResult, error) {
	originalLine := lines[lineNum-1]
	indent := originalLine[:len(originalLine)-len(strings.TrimLeft(originalLine, " \t"))]

	patched := make([]string, len(lines))
	copy(patched, lines)
	patched[lineNum-1] = indent + strings.TrimLeft(replacement, " \t")

	if err := writeFile(path, strings.Join(patched, "\n")); err != nil {
		return types.PatchResult{}, err
	}

	rel, err := filepath.Rel(p.root, path)
	if err != nil {
		rel = path
	}
	return types.PatchResult{
		Success:     true,
		File:        filepath.ToSlash(rel),
		Line:        lineNum,
		Original:    truncate(strings.TrimSpace(originalLine), 100),
		Replacement: truncate(strings.TrimSpace(replacement), 100),
		Strategy:    strategy,
	}, nil
}

// ApplyBatch applies multiple fixes keyed by finding index. Patches are
// grouped per file and applied in descending line order within each
// file, so earlier lines keep valid coordinates after later lines have
// been rewritten. Distinct files proceed concurrently; one failure never
// aborts the batch.
func (p *Patcher) ApplyBatch(findings []types.Finding, fixes map[int]string) *types.BatchResult {
	byFile := make(map[string][]int)
	for idx := range fixes {
		if idx < 0 || idx >= len(findings) {
			continue
		}
		f := findings[idx]
		byFile[f.File] = append(byFile[f.File], idx)
	}

	for _, idxs := range byFile {
		sort.Slice(idxs, func(i, j int) bool {
			a, b := findings[idxs[i]], findings[idxs[j]]
			if a.Line != b.Line {
				return a.Line > b.Line
			}
			return idxs[i] > idxs[j]
		})
	}

	results := &types.BatchResult{Total: len(fixes)}

	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, 4)

	for _, idxs := range byFile {
		wg.Add(1)
		go func(idxs []int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			for _, idx := range idxs {
				result := p.ApplyFix(findings[idx], fixes[idx])

				mu.Lock()
				if result.Success {
					results.Applied = append(results.Applied, result)
					results.SuccessCount++
				} else {
					results.Failed = append(results.Failed, result)
					results.FailureCount++
				}
				mu.Unlock()
			}
		}(idxs)
	}
	wg.Wait()

	return results
}

// Summary returns the authoritative record of every attempt this patcher
// made, with the distinct set of files actually modified.
func (p *Patcher) Summary() types.PatchSummary {
	p.mu.Lock()
	defer p.mu.Unlock()

	seen := map[string]bool{}
	var files []string
	for _, r := range p.applied {
		if !seen[r.File] {
			seen[r.File] = true
			files = append(files, r.File)
		}
	}
	sort.Strings(files)

	return types.PatchSummary{
		TotalApplied:  len(p.applied),
		TotalFailed:   len(p.failed),
		Applied:       append([]types.PatchResult(nil), p.applied...),
		Failed:        append([]types.PatchResult(nil), p.failed...),
		FilesModified: files,
	}
}

// writeFile writes atomically via a temp file in the same directory
// followed by a rename, preserving the original file's mode.
func writeFile(path, content string) error {
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".warden-patch-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		logging.L().Debugw("preserving file mode failed", "path", path, "error", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}

// normalizeWhitespace strips whitespace entirely so the fuzzy match is
// insensitive to spacing inside the code, not just around it:
// "exec( cmd )" and "exec(cmd)" normalize to the same string.
func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
