package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/mimic/internal/harness"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Output string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export <scenario-file>",
		Short: "Export a scenario's seeded store as a SQLite snapshot",
		Long: `Seed a store from a scenario's fixtures and dump it to a SQLite file,
one table per entity with canonical JSON rows. The snapshot is a debug
artifact for inspecting fixtures offline; nothing reads it back.

Example:
  mimic export scenario.yaml -o snapshot.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "snapshot.db", "snapshot file path")

	return cmd
}

func runExport(opts *ExportOptions, path string, cmd *cobra.Command) error {
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
	if err := applyConfig(opts.RootOptions, scenario); err != nil {
		return NewExitError(ExitCommandError, err.Error())
	}

	st, err := harness.SeedStore(scenario, nil)
	if err != nil {
		return NewExitError(ExitCommandError, err.Error())
	}
	formatter.VerboseLog("seeded %d fixtures from %s", len(scenario.Fixtures), scenario.Name)

	if err := st.ExportSnapshot(opts.Output); err != nil {
		return NewExitError(ExitCommandError, fmt.Sprintf("export snapshot: %v", err))
	}

	summary := struct {
		Scenario string `json:"scenario"`
		Fixtures int    `json:"fixtures"`
		Path     string `json:"path"`
	}{scenario.Name, len(scenario.Fixtures), opts.Output}

	if opts.Format == "json" {
		return formatter.Success(summary)
	}
	fmt.Fprintf(formatter.Writer, "exported %d fixtures to %s\n", summary.Fixtures, summary.Path)
	return nil
}
