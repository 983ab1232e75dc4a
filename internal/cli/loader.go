package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/mimic/internal/config"
	"github.com/roach88/mimic/internal/engine"
	"github.com/roach88/mimic/internal/fetchxml"
	"github.com/roach88/mimic/internal/harness"
)

// readInput loads command input from a file path, or from the command's
// stdin when the path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// applyConfig fills scenario settings the file leaves unset from the
// simulator config. The scenario's own values always win.
func applyConfig(opts *RootOptions, s *harness.Scenario) error {
	if opts.Config == "" {
		return nil
	}
	cfg, err := config.LoadFrom(opts.Config)
	if err != nil {
		return err
	}
	if s.Timezone == "" {
		s.Timezone = cfg.Timezone
	}
	if s.FiscalStartMonth == 0 {
		s.FiscalStartMonth = cfg.FiscalStartMonth
	}
	return nil
}

// failureCode maps a translation or evaluation failure to its taxonomy
// code.
func failureCode(err error) string {
	var evalErr *engine.EvalError
	if errors.As(err, &evalErr) {
		return string(evalErr.Code)
	}
	if fetchxml.IsUnsupportedOperator(err) {
		return "UNSUPPORTED_OPERATOR"
	}
	if fetchxml.IsParseError(err) {
		return "PARSE_ERROR"
	}
	return "ERROR"
}
