package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleScenario = `
name: cli_sample
metadata_source: |
  entity: account: {
    primary_id: "accountid"
    attributes: {
      accountid: {type: "uniqueid"}
      name:      {type: "string"}
    }
  }
now: "2024-03-15T10:30:00Z"
fixtures:
  - entity: account
    attributes:
      name: Acme
  - entity: account
    attributes:
      name: Globex
queries:
  - name: all
    fetch: |
      <fetch><entity name="account"><attribute name="name" /></entity></fetch>
    expect:
      count: 2
`

func writeScenarioFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestQueryCommandText(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewQueryCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{writeScenarioFile(t, sampleScenario)})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, "all: 2 rows")
	assert.Contains(t, output, `"name":"Acme"`)
	assert.Contains(t, output, `"name":"Globex"`)
}

func TestQueryCommandJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewQueryCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{writeScenarioFile(t, sampleScenario)})

	require.NoError(t, cmd.Execute())

	output := buf.String()
	assert.Contains(t, output, `"status": "ok"`)
	assert.Contains(t, output, `"rows": 2`)
}

func TestQueryCommandExpectationFailure(t *testing.T) {
	scenario := `
name: failing
metadata_source: |
  entity: account: {
    primary_id: "accountid"
    attributes: {
      accountid: {type: "uniqueid"}
      name:      {type: "string"}
    }
  }
now: "2024-03-15T10:30:00Z"
fixtures:
  - entity: account
    attributes:
      name: Acme
queries:
  - name: too many
    fetch: |
      <fetch><entity name="account"><attribute name="name" /></entity></fetch>
    expect:
      count: 7
`
	buf := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewQueryCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(errBuf)
	cmd.SetArgs([]string{writeScenarioFile(t, scenario)})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, errBuf.String(), "expectation failed")
}

func TestQueryCommandQueryError(t *testing.T) {
	scenario := `
name: erroring
metadata_source: |
  entity: account: {
    primary_id: "accountid"
    attributes: {
      accountid: {type: "uniqueid"}
    }
  }
now: "2024-03-15T10:30:00Z"
queries:
  - name: bad entity
    fetch: |
      <fetch><entity name="nonesuch"><all-attributes /></entity></fetch>
`
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewQueryCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{writeScenarioFile(t, scenario)})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "bad entity: error UNKNOWN_ENTITY")
}

func TestQueryCommandMissingFile(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewQueryCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing.yaml")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
