package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/roach88/mimic/internal/config"
	"github.com/roach88/mimic/internal/metadata"
)

// EntitySummary describes one compiled entity for validation output.
type EntitySummary struct {
	LogicalName   string `json:"logical_name"`
	PrimaryID     string `json:"primary_id"`
	Attributes    int    `json:"attributes"`
	Relationships int    `json:"relationships"`
}

// ValidationResult holds metadata validation results.
type ValidationResult struct {
	Valid    bool            `json:"valid"`
	Entities []EntitySummary `json:"entities,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <metadata-file>",
		Short: "Compile entity metadata and report declaration errors",
		Long: `Compile a CUE entity metadata file and report declaration errors.

With no argument, the metadata path comes from the simulator config.
On success, lists each compiled entity with its primary identifier and
attribute count.

Example:
  mimic validate entities.cue
  mimic --config mimic.toml validate`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := metadataPath(rootOpts, args)
			if err != nil {
				return err
			}
			return runValidate(rootOpts, path, cmd)
		},
	}

	return cmd
}

// metadataPath resolves the metadata file: the positional argument when
// given, otherwise the config's metadata setting.
func metadataPath(opts *RootOptions, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if opts.Config == "" {
		return "", NewExitError(ExitCommandError, "metadata file required: pass a path or set metadata in --config")
	}
	cfg, err := config.LoadFrom(opts.Config)
	if err != nil {
		return "", NewExitError(ExitCommandError, err.Error())
	}
	if cfg.Metadata == "" {
		return "", NewExitError(ExitCommandError, fmt.Sprintf("config %s sets no metadata path", opts.Config))
	}
	return cfg.Metadata, nil
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	provider, err := metadata.LoadFile(path)
	if err != nil {
		var compileErr *metadata.CompileError
		if errors.As(err, &compileErr) {
			return outputCompileError(formatter, compileErr)
		}
		return NewExitError(ExitCommandError, err.Error())
	}

	names := provider.Entities()
	sort.Strings(names)

	result := ValidationResult{Valid: true}
	for _, name := range names {
		meta, err := provider.Entity(name)
		if err != nil {
			return NewExitError(ExitCommandError, err.Error())
		}
		result.Entities = append(result.Entities, EntitySummary{
			LogicalName:   meta.LogicalName,
			PrimaryID:     meta.PrimaryID,
			Attributes:    len(meta.Attributes),
			Relationships: len(meta.Relationships),
		})
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "valid: %d entities\n", len(result.Entities))
	for _, e := range result.Entities {
		fmt.Fprintf(formatter.Writer, "  %s (primary_id %s, %d attributes, %d relationships)\n",
			e.LogicalName, e.PrimaryID, e.Attributes, e.Relationships)
	}
	return nil
}

func outputCompileError(formatter *OutputFormatter, compileErr *metadata.CompileError) error {
	_ = formatter.Error("COMPILE_ERROR", compileErr.Error())
	return NewExitError(ExitFailure, compileErr.Error())
}
