package harness

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/mimic/internal/engine"
	"github.com/roach88/mimic/internal/fetchxml"
	"github.com/roach88/mimic/internal/metadata"
	"github.com/roach88/mimic/internal/record"
	"github.com/roach88/mimic/internal/store"
	"github.com/roach88/mimic/internal/testutil"
)

// Run executes a scenario: compile metadata, seed the store, evaluate
// every query and check expectations. The returned Result carries each
// step's outcome whether or not expectations held; Run itself errors
// only on scenario problems (bad metadata, bad fixtures, bad clock).
func Run(s *Scenario) (*Result, error) {
	provider, err := loadMetadata(s)
	if err != nil {
		return nil, err
	}

	now, err := time.Parse(time.RFC3339, s.Now)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: bad now: %w", s.Name, err)
	}
	loc := time.UTC
	if s.Timezone != "" {
		loc, err = time.LoadLocation(s.Timezone)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: bad timezone: %w", s.Name, err)
		}
	}
	fiscalStart := time.April
	if s.FiscalStartMonth != 0 {
		fiscalStart = time.Month(s.FiscalStartMonth)
	}

	st, err := SeedStore(s, provider)
	if err != nil {
		return nil, err
	}

	eng := engine.New(st, provider,
		engine.WithClock(testutil.NewFixedClock(now, loc)),
		engine.WithFiscalStart(fiscalStart),
		engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	result := NewResult()
	for _, step := range s.Queries {
		qr := QueryResult{Name: step.Name}
		records, err := eng.ExecuteMarkup(step.Fetch)
		if err != nil {
			qr.Error = errorCode(err)
		} else {
			qr.Records = records
		}
		result.Queries = append(result.Queries, qr)
		checkExpectation(result, step, qr)
	}
	return result, nil
}

// SeedStore builds a store seeded with the scenario's fixtures. A nil
// provider compiles the scenario's metadata first. Fixtures without an
// explicit id get sequence identifiers so output stays stable.
func SeedStore(s *Scenario, provider *metadata.Provider) (*store.Store, error) {
	if provider == nil {
		var err error
		provider, err = loadMetadata(s)
		if err != nil {
			return nil, err
		}
	}
	st := store.New(provider, store.WithIDGenerator(&fixtureIDs{}))
	if err := seed(st, s.Fixtures); err != nil {
		return nil, err
	}
	return st, nil
}

func loadMetadata(s *Scenario) (*metadata.Provider, error) {
	if s.MetadataSource != "" {
		p, err := metadata.CompileSource(s.MetadataSource)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
		}
		return p, nil
	}
	p, err := metadata.LoadFile(s.Metadata)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}
	return p, nil
}

func seed(st *store.Store, fixtures []Fixture) error {
	for i, f := range fixtures {
		rec := record.New(f.Entity)
		if f.ID != "" {
			id, err := uuid.Parse(f.ID)
			if err != nil {
				return fmt.Errorf("fixtures[%d]: %w", i, err)
			}
			rec.ID = id
		}

		// YAML maps are unordered; store fixture attributes in sorted
		// name order so canonical output is stable.
		for _, name := range sortedKeys(f.Attributes) {
			v, err := fixtureValue(f.Attributes[name])
			if err != nil {
				return fmt.Errorf("fixtures[%d].%s: %w", i, name, err)
			}
			rec.Set(name, v)
		}

		if _, err := st.Create(rec); err != nil {
			return fmt.Errorf("fixtures[%d]: %w", i, err)
		}
	}
	return nil
}

// fixtureIDs hands out identifiers 00000000-0000-4000-8000-000000000001
// onward, so fixtures that omit ids still produce stable golden output.
type fixtureIDs struct {
	n uint32
}

func (g *fixtureIDs) NewID() uuid.UUID {
	g.n++
	return uuid.MustParse(fmt.Sprintf("00000000-0000-4000-8000-%012x", g.n))
}

// errorCode maps an evaluation or translation failure to its taxonomy
// code for expectations and golden output.
func errorCode(err error) string {
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

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
