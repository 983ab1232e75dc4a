package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/mimic/internal/fetchxml"
)

// TranslateOptions holds flags for the translate command.
type TranslateOptions struct {
	*RootOptions
	Remarshal bool
}

// NewTranslateCommand creates the translate command.
func NewTranslateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TranslateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "translate <fetch-file>",
		Short: "Translate fetch markup into a structured query tree",
		Long: `Translate fetch markup into a structured query tree.

Reads the markup from the given file, or from stdin when the path is "-".
Text output prints the normalized markup re-serialized from the tree;
JSON output prints the tree itself.

Example:
  mimic translate query.xml
  cat query.xml | mimic translate -`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Remarshal, "remarshal", false, "print normalized markup even in JSON format")

	return cmd
}

func runTranslate(opts *TranslateOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	markup, err := readInput(cmd, path)
	if err != nil {
		return NewExitError(ExitCommandError, err.Error())
	}

	q, err := fetchxml.Translate(string(markup))
	if err != nil {
		code := failureCode(err)
		_ = formatter.Error(code, err.Error())
		return NewExitError(ExitFailure, fmt.Sprintf("%s: %v", code, err))
	}

	formatter.VerboseLog("translated query against entity %s", q.Entity)

	if opts.Format == "json" && !opts.Remarshal {
		return formatter.Success(q)
	}

	normalized, err := fetchxml.Marshal(q)
	if err != nil {
		return NewExitError(ExitCommandError, fmt.Sprintf("re-serialize: %v", err))
	}
	fmt.Fprintf(formatter.Writer, "%s", normalized)
	return nil
}
