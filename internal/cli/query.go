package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/mimic/internal/harness"
	"github.com/roach88/mimic/internal/record"
)

// QueryOutput is one scenario query's outcome for CLI output.
type QueryOutput struct {
	Name    string          `json:"name"`
	Rows    int             `json:"rows"`
	Records json.RawMessage `json:"records,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <scenario-file>",
		Short: "Run a scenario's queries against its seeded store",
		Long: `Run a scenario file: compile its metadata, seed the store with its
fixtures, evaluate every query and print each result in canonical JSON.

The command exits 1 when a query expectation in the scenario fails.

Example:
  mimic query scenario.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runQuery(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	scenario, err := harness.LoadScenario(path)
	if err != nil {
		return NewExitError(ExitCommandError, err.Error())
	}
	if err := applyConfig(opts, scenario); err != nil {
		return NewExitError(ExitCommandError, err.Error())
	}
	formatter.VerboseLog("scenario %s: %d fixtures, %d queries",
		scenario.Name, len(scenario.Fixtures), len(scenario.Queries))

	result, err := harness.Run(scenario)
	if err != nil {
		return NewExitError(ExitCommandError, err.Error())
	}

	outputs := make([]QueryOutput, len(result.Queries))
	for i, qr := range result.Queries {
		out := QueryOutput{Name: qr.Name, Rows: len(qr.Records), Error: qr.Error}
		if qr.Error == "" {
			data, err := record.Canonical(qr.Records)
			if err != nil {
				return NewExitError(ExitCommandError, fmt.Sprintf("render %s: %v", qr.Name, err))
			}
			out.Records = json.RawMessage(data)
		}
		outputs[i] = out
	}

	if opts.Format == "json" {
		if err := formatter.Success(outputs); err != nil {
			return err
		}
	} else {
		for _, out := range outputs {
			if out.Error != "" {
				fmt.Fprintf(formatter.Writer, "%s: error %s\n", out.Name, out.Error)
				continue
			}
			fmt.Fprintf(formatter.Writer, "%s: %d rows\n", out.Name, out.Rows)
			fmt.Fprintf(formatter.Writer, "  %s\n", out.Records)
		}
	}

	if !result.Pass {
		for _, msg := range result.Errors {
			fmt.Fprintf(formatter.GetErrWriter(), "expectation failed: %s\n", msg)
		}
		return NewExitError(ExitFailure, fmt.Sprintf("%d expectation(s) failed", len(result.Errors)))
	}
	return nil
}
