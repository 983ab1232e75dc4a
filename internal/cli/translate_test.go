package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFetch = `<fetch top="5">
  <entity name="account">
    <attribute name="name" />
    <filter>
      <condition attribute="name" operator="like" value="A%" />
    </filter>
  </entity>
</fetch>`

func writeFetchFile(t *testing.T, markup string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "query.xml")
	require.NoError(t, os.WriteFile(path, []byte(markup), 0o644))
	return path
}

func TestTranslateCommandText(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewTranslateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{writeFetchFile(t, sampleFetch)})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, `<entity name="account">`)
	assert.Contains(t, output, `operator="like"`)
	assert.Contains(t, output, `top="5"`)
}

func TestTranslateCommandJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewTranslateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{writeFetchFile(t, sampleFetch)})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, `"status": "ok"`)
	assert.Contains(t, output, `"Entity": "account"`)
}

func TestTranslateCommandStdin(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewTranslateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetIn(strings.NewReader(sampleFetch))
	cmd.SetArgs([]string{"-"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), `<entity name="account">`)
}

func TestTranslateCommandParseError(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewTranslateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{writeFetchFile(t, "<fetch><entity>")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "PARSE_ERROR")
}

func TestTranslateCommandUnsupportedOperator(t *testing.T) {
	markup := `<fetch><entity name="account">
		<filter><condition attribute="accountid" operator="under" value="x" /></filter>
	</entity></fetch>`

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewTranslateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{writeFetchFile(t, markup)})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, buf.String(), "UNSUPPORTED_OPERATOR")
}

func TestTranslateCommandMissingFile(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewTranslateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing.xml")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
