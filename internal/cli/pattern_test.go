package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternCommandText(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewPatternCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"te_t", "[0-9]%"})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "te_t => ^te.t$")
	assert.Contains(t, output, "[0-9]% => ^[0-9].*$")
}

func TestPatternCommandJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewPatternCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"100%"})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, `"pattern": "100%"`)
	assert.Contains(t, output, `"regex": "^100.*$"`)
}

func TestPatternCommandNoArgs(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewPatternCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg")
}
