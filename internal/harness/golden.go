package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/mimic/internal/record"
)

// Snapshot captures a scenario run for golden comparison: every query's
// result rows (or error code) in canonical JSON.
type Snapshot struct {
	ScenarioName string
	Queries      []QueryResult
}

// toCanonicalMap shapes the snapshot for record.Canonical, which knows
// records, maps and slices but not harness types.
func (s *Snapshot) toCanonicalMap() map[string]any {
	queries := make([]any, len(s.Queries))
	for i, q := range s.Queries {
		entry := map[string]any{"name": q.Name}
		if q.Error != "" {
			entry["error"] = q.Error
		} else {
			records := q.Records
			if records == nil {
				records = []*record.Record{}
			}
			entry["records"] = records
		}
		queries[i] = entry
	}
	return map[string]any{
		"scenario": s.ScenarioName,
		"queries":  queries,
	}
}

// RunWithGolden executes a scenario, fails the test on expectation
// misses and compares the full result snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	for _, msg := range result.Errors {
		t.Errorf("expectation failed: %s", msg)
	}

	snapshot := Snapshot{ScenarioName: scenario.Name, Queries: result.Queries}
	data, err := record.Canonical(snapshot.toCanonicalMap())
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)
	return nil
}
