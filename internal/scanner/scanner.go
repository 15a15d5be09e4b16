// Package scanner walks a source tree and matches every eligible file
// against the rule catalog, producing raw findings. Files are scanned by
// a bounded worker pool; the walk itself is sequential.
package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/buemura/warden/internal/catalog"
	"github.com/buemura/warden/internal/language"
	"github.com/buemura/warden/internal/logging"
	"github.com/buemura/warden/pkg/types"
)

// Options holds scan-wide execution parameters.
type Options struct {
	Workers       int
	Timeout       time.Duration
	MaxFileSize   int64
	ExcludedDirs  []string
	ExcludedFiles []string
	Languages     []string
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		Workers:       4,
		Timeout:       300 * time.Second,
		MaxFileSize:   10 * 1024 * 1024,
		ExcludedDirs:  DefaultExcludedDirs(),
		ExcludedFiles: DefaultExcludedFiles(),
	}
}

// DefaultExcludedDirs lists directory names pruned before descent:
// version-control metadata, dependency caches, and build output.
func DefaultExcludedDirs() []string {
	return []string{
		"node_modules", "venv", "__pycache__", ".git",
		"dist", "build", "target", ".next", ".nuxt",
		"vendor", "deps", "_build", "coverage",
	}
}

// DefaultExcludedFiles lists file names never scanned (lockfiles).
func DefaultExcludedFiles() []string {
	return []string{
		"package-lock.json", "yarn.lock", "pnpm-lock.yaml",
		"Cargo.lock", "Gemfile.lock", "poetry.lock",
		"mix.lock", "go.sum",
	}
}

type fileJob struct {
	absPath string
	relPath string
	lang    string
}

// Scan walks root and produces raw findings for every enabled language.
// Per-file read errors are logged and skipped; only a bad root or a
// traversal failure aborts the scan.
func Scan(ctx context.Context, root string, opts Options) (*types.ScanResult, error) {
	started := time.Now()

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan root %q: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %q is not a directory", root)
	}

	if opts.Workers < 1 {
		opts.Workers = 4
	}
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = 10 * 1024 * 1024
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 300 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	enabled := toSet(opts.Languages)
	excludedDirs := toSet(opts.ExcludedDirs)
	excludedFiles := toSet(opts.ExcludedFiles)

	jobs, langCounts, err := collectFiles(root, enabled, excludedDirs, excludedFiles, opts.MaxFileSize)
	if err != nil {
		return nil, fmt.Errorf("walking %q: %w", root, err)
	}

	var (
		mu       sync.Mutex
		findings []types.Finding
		scanned  int
	)

	jobCh := make(chan fileJob)
	var wg sync.WaitGroup
	for i := 0; i < opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				found := scanFile(job)
				mu.Lock()
				scanned++
				findings = append(findings, found...)
				mu.Unlock()
			}
		}()
	}

	// Dispatch stops at the deadline; workers finish in-flight files.
	timedOut := false
dispatch:
	for _, job := range jobs {
		select {
		case jobCh <- job:
		case <-ctx.Done():
			timedOut = true
			break dispatch
		}
	}
	close(jobCh)
	wg.Wait()

	return &types.ScanResult{
		Root:           root,
		Languages:      sortedKeys(langCounts),
		LanguageCounts: langCounts,
		FilesScanned:   scanned,
		Findings:       findings,
		StartedAt:      started,
		Duration:       time.Since(started),
		TimedOut:       timedOut,
	}, nil
}

// collectFiles performs the sequential walk, pruning excluded directories
// before descending into them and filtering files by name, extension,
// enabled language and size.
func collectFiles(root string, enabled, excludedDirs, excludedFiles map[string]bool, maxSize int64) ([]fileJob, map[string]int, error) {
	var jobs []fileJob
	counts := map[string]int{}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			logging.L().Warnw("skipping unreadable entry", "path", path, "error", err)
			return nil
		}

		if d.IsDir() {
			if path != root && excludedDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		if excludedFiles[d.Name()] {
			return nil
		}

		lang, ok := language.FromExtension(d.Name())
		if !ok {
			return nil
		}
		counts[lang]++

		if len(enabled) > 0 && !enabled[lang] {
			return nil
		}
		if len(catalog.RulesFor(lang)) == 0 {
			return nil
		}

		// Inaccessible size info means skip, not fail.
		fi, err := d.Info()
		if err != nil {
			logging.L().Warnw("skipping file without size info", "path", path, "error", err)
			return nil
		}
		if fi.Size() > maxSize {
			logging.L().Debugw("skipping oversized file", "path", path, "size", fi.Size())
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		jobs = append(jobs, fileJob{absPath: path, relPath: filepath.ToSlash(rel), lang: lang})
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return jobs, counts, nil
}

// scanFile reads one file and evaluates every rule for its language
// against each non-blank, non-comment line. A read error skips the file.
func scanFile(job fileJob) []types.Finding {
	data, err := os.ReadFile(job.absPath)
	if err != nil {
		logging.L().Warnw("skipping unreadable file", "path", job.relPath, "error", err)
		return nil
	}

	content := strings.ToValidUTF8(string(data), string(utf8.RuneError))
	lines := strings.Split(content, "\n")

	return ScanLines(job.relPath, lines, job.lang)
}

// ScanLines applies a language's rule set to file content line by line.
// Every matching rule yields its own finding; nothing is deduplicated.
func ScanLines(relPath string, lines []string, lang string) []types.Finding {
	rules := catalog.RulesFor(lang)
	if len(rules) == 0 {
		return nil
	}

	var findings []types.Finding
	for i, line := range lines {
		lineNum := i + 1
		stripped := strings.TrimSpace(line)
		if stripped == "" || strings.HasPrefix(stripped, "#") || strings.HasPrefix(stripped, "//") {
			continue
		}

		for _, rule := range rules {
			match := rule.Pattern.FindString(line)
			if match == "" {
				continue
			}

			weakness := catalog.Weakness(rule.Issue)
			findings = append(findings, types.Finding{
				File:        relPath,
				Line:        lineNum,
				Issue:       rule.Issue,
				Severity:    rule.Severity,
				Code:        stripped,
				ExactMatch:  match,
				Description: fmt.Sprintf("%s vulnerability detected", issueTitle(rule.Issue)),
				Solution:    fmt.Sprintf("Review and fix the %s vulnerability", rule.Issue),
				CWE:         weakness.CWE,
				OWASP:       weakness.OWASP,
				Category:    catalog.CategoryOf(rule.Issue),
				Context:     contextLines(lines, lineNum, 3),
				Language:    lang,
			})
		}
	}
	return findings
}

// contextLines returns up to contextSize lines before and after the match,
// each tagged with its absolute line number; the matched line carries a
// ">>>" marker. Original text is preserved verbatim.
func contextLines(lines []string, lineNum, contextSize int) []string {
	start := lineNum - contextSize - 1
	if start < 0 {
		start = 0
	}
	end := lineNum + contextSize
	if end > len(lines) {
		end = len(lines)
	}

	context := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		prefix := "   "
		if i == lineNum-1 {
			prefix = ">>>"
		}
		context = append(context, fmt.Sprintf("%s %d: %s", prefix, i+1, lines[i]))
	}
	return context
}

// issueTitle turns "sql-injection" into "Sql Injection".
func issueTitle(issue string) string {
	parts := strings.Split(issue, "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, it := range items {
		set[it] = true
	}
	return set
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
