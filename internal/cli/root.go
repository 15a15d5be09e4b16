// Package cli wires the cobra command tree for the warden binary.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/buemura/warden/internal/config"
	"github.com/buemura/warden/internal/logging"
)

var version = "dev"

var (
	outputFlag      string
	verboseFlag     bool
	workersFlag     int
	timeoutFlag     time.Duration
	maxFileSizeFlag int64
	excludeDirFlag  []string
	languageFlag    []string
)

// appConfig holds the loaded configuration, available after PersistentPreRunE.
var appConfig *config.Config

var rootCmd = &cobra.Command{
	Use:   "warden",
	Short: "Warden — source-tree vulnerability scanner and patcher",
	Long: `Warden scans source trees for insecure code patterns, ranks the
findings by severity and exploit class, and can apply replacement
code back to the offending files.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		config.ApplyFlags(cfg, cmd)

		// Sync config values back to flag variables so all commands pick
		// up config-file and env-var defaults transparently.
		outputFlag = cfg.OutputFormat
		workersFlag = cfg.Workers
		timeoutFlag = cfg.ScanTimeout
		maxFileSizeFlag = cfg.MaxFileSize
		if len(cfg.ExcludedDirs) > 0 {
			excludeDirFlag = cfg.ExcludedDirs
		}
		if len(cfg.Languages) > 0 {
			languageFlag = cfg.Languages
		}

		logging.Init(verboseFlag)

		appConfig = cfg
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "table", "output format: table, json, markdown")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().IntVarP(&workersFlag, "workers", "w", 4, "max concurrent file scans")
	rootCmd.PersistentFlags().DurationVar(&timeoutFlag, "timeout", 300*time.Second, "scan deadline")
	rootCmd.PersistentFlags().Int64Var(&maxFileSizeFlag, "max-file-size", 10*1024*1024, "skip files larger than this many bytes")
	rootCmd.PersistentFlags().StringSliceVar(&excludeDirFlag, "exclude-dir", nil, "additional directory names to skip")
	rootCmd.PersistentFlags().StringSliceVarP(&languageFlag, "language", "l", nil, "restrict scanning to these languages")

	rootCmd.AddCommand(versionCmd)
}
