package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/buemura/warden/internal/fixer"
	"github.com/buemura/warden/internal/output"
	"github.com/buemura/warden/internal/patcher"
	"github.com/buemura/warden/internal/scanner"
	"github.com/buemura/warden/pkg/types"
)

var (
	dryRunFlag   bool
	showDiffFlag bool
)

var fixCmd = &cobra.Command{
	Use:   "fix [root]",
	Short: "Scan a source tree and patch the findings that have fixes",
	Long: `Runs a scan over the given root (default "."), asks the fix
provider for replacement code, and applies the available fixes back to
the offending files. Use --dry-run to preview the changes as diffs
without touching anything.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFix,
}

func init() {
	fixCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "show what would change without writing files")
	fixCmd.Flags().BoolVar(&showDiffFlag, "diff", false, "print a unified diff for each modified file")
	rootCmd.AddCommand(fixCmd)
}

func runFix(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	ctx := cmd.Context()
	result, err := scanner.Run(ctx, root, scanOptions())
	if err != nil {
		return err
	}

	if len(result.Findings) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No findings — nothing to fix.")
		return nil
	}

	provider := fixer.NewTemplateProvider()
	fixes, err := fixer.Collect(ctx, provider, result.Findings)
	if err != nil {
		return fmt.Errorf("collecting fixes: %w", err)
	}
	if len(fixes) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%d findings, none with an available fix.\n", len(result.Findings))
		return nil
	}

	// Snapshot affected files so diffs can be computed after patching.
	originals := make(map[string]string)
	if dryRunFlag || showDiffFlag {
		for i := range fixes {
			file := result.Findings[i].File
			data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(file)))
			if err == nil {
				originals[file] = string(data)
			}
		}
	}

	if dryRunFlag {
		return previewFixes(cmd, root, result.Findings, fixes, originals)
	}

	p := patcher.New(root)
	p.ApplyBatch(result.Findings, fixes)
	summary := p.Summary()

	output.WritePatchSummary(cmd.OutOrStdout(), &summary)

	if showDiffFlag {
		for _, file := range summary.FilesModified {
			data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(file)))
			if err != nil {
				continue
			}
			if diff := patcher.GenerateDiff(originals[file], string(data)); diff != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "\n%s:\n", file)
				output.WriteDiff(cmd.OutOrStdout(), diff)
			}
		}
	}

	if summary.TotalFailed > 0 {
		return fmt.Errorf("%d of %d fixes failed", summary.TotalFailed, summary.TotalApplied+summary.TotalFailed)
	}
	return nil
}

// previewFixes applies the batch against a scratch copy of each affected
// file and prints the diffs, leaving the tree untouched.
func previewFixes(cmd *cobra.Command, root string, findings []types.Finding, fixes map[int]string, originals map[string]string) error {
	scratch, err := os.MkdirTemp("", "warden-dryrun-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(scratch)

	for file, content := range originals {
		dst := filepath.Join(scratch, filepath.FromSlash(file))
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(dst, []byte(content), 0644); err != nil {
			return err
		}
	}

	p := patcher.New(scratch)
	p.ApplyBatch(findings, fixes)
	summary := p.Summary()

	fmt.Fprintln(cmd.OutOrStdout(), "Dry run — no files were modified.")
	output.WritePatchSummary(cmd.OutOrStdout(), &summary)

	for _, file := range summary.FilesModified {
		data, err := os.ReadFile(filepath.Join(scratch, filepath.FromSlash(file)))
		if err != nil {
			continue
		}
		if diff := patcher.GenerateDiff(originals[file], string(data)); diff != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "\n%s:\n", file)
			output.WriteDiff(cmd.OutOrStdout(), diff)
		}
	}
	return nil
}
