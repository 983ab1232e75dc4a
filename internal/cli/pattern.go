package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/mimic/internal/engine"
)

// PatternTranslation pairs a SQL wildcard pattern with its anchored
// regular expression.
type PatternTranslation struct {
	Pattern string `json:"pattern"`
	Regex   string `json:"regex"`
}

// NewPatternCommand creates the pattern command.
func NewPatternCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pattern <sql-pattern>...",
		Short: "Convert SQL wildcard patterns to regular expressions",
		Long: `Convert SQL wildcard patterns to anchored regular expressions.

The conversion is the one the like family of operators applies: % matches
any run, _ matches one character, [...] character classes pass through,
everything else is escaped literally.

Example:
  mimic pattern 'te_t' '[0-9]%'`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPattern(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runPattern(opts *RootOptions, patterns []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	translations := make([]PatternTranslation, len(patterns))
	for i, p := range patterns {
		translations[i] = PatternTranslation{Pattern: p, Regex: engine.ConvertPattern(p)}
	}

	if opts.Format == "json" {
		return formatter.Success(translations)
	}
	for _, tr := range translations {
		fmt.Fprintf(formatter.Writer, "%s => %s\n", tr.Pattern, tr.Regex)
	}
	return nil
}
