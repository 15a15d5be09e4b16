package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/buemura/warden/internal/logging"
	"github.com/buemura/warden/internal/output"
	"github.com/buemura/warden/internal/scanner"
	"github.com/buemura/warden/internal/watch"
)

var watchFlag bool

var scanCmd = &cobra.Command{
	Use:   "scan [root]",
	Short: "Scan a source tree for vulnerabilities",
	Long: `Walks the source tree rooted at the given directory (default "."),
matches each supported file against the rule tables for its language,
and prints the prioritized findings.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&watchFlag, "watch", false, "re-scan whenever files under the root change")
	rootCmd.AddCommand(scanCmd)
}

// scanOptions builds scanner options from the resolved flag values.
func scanOptions() scanner.Options {
	opts := scanner.DefaultOptions()
	opts.Workers = workersFlag
	opts.Timeout = timeoutFlag
	opts.MaxFileSize = maxFileSizeFlag
	opts.ExcludedDirs = append(opts.ExcludedDirs, excludeDirFlag...)
	opts.Languages = languageFlag
	return opts
}

func runScan(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	formatter, err := output.GetFormatter(outputFlag)
	if err != nil {
		return err
	}

	opts := scanOptions()

	doScan := func(ctx context.Context) error {
		result, err := scanner.Run(ctx, root, opts)
		if err != nil {
			return err
		}
		return formatter.Format(os.Stdout, result)
	}

	if err := doScan(cmd.Context()); err != nil {
		return err
	}

	if !watchFlag {
		return nil
	}

	w, err := watch.New(root, opts.ExcludedDirs)
	if err != nil {
		return fmt.Errorf("watching %s: %w", root, err)
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s for changes (Ctrl-C to stop)...\n", root)
	err = w.Run(ctx, func() {
		if err := doScan(ctx); err != nil {
			logging.L().Errorw("re-scan failed", "error", err)
		}
	})
	if err == context.Canceled {
		return nil
	}
	return err
}
