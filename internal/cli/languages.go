package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/buemura/warden/internal/catalog"
	"github.com/buemura/warden/internal/language"
)

var languagesCmd = &cobra.Command{
	Use:   "languages [file]",
	Short: "List supported languages, or detect the language of a file",
	Long: `Without arguments, lists every language that has a rule table and
its banned APIs. With a file argument, reports the detected language
for that file, falling back to content heuristics when the extension
is unknown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLanguages,
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}

func runLanguages(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		path := args[0]
		var leading []byte
		if f, err := os.Open(path); err == nil {
			leading, _ = io.ReadAll(io.LimitReader(f, language.SampleSize))
			f.Close()
		}
		lang := language.Detect(path, leading)
		fmt.Fprintf(out, "%s: %s\n", path, lang)
		return nil
	}

	for _, lang := range catalog.Languages() {
		fmt.Fprintf(out, "%s (%d rules)\n", lang, len(catalog.RulesFor(lang)))
		if banned := catalog.BannedAPIs(lang); len(banned) > 0 {
			fmt.Fprintf(out, "  banned: %s\n", strings.Join(banned, ", "))
		}
	}
	return nil
}
