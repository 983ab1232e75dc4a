package harness

import "github.com/roach88/mimic/internal/record"

// Scenario is one declarative conformance case: an environment, a
// record population and a set of queries with expectations.
type Scenario struct {
	// Name uniquely identifies this scenario; golden files are keyed by
	// it.
	Name string `yaml:"name"`

	// Description explains what this scenario exercises.
	Description string `yaml:"description,omitempty"`

	// Metadata is a path to a CUE entity metadata file, relative to the
	// scenario file. MetadataSource inlines the CUE instead; exactly one
	// must be set.
	Metadata       string `yaml:"metadata,omitempty"`
	MetadataSource string `yaml:"metadata_source,omitempty"`

	// Now pins the evaluation instant, RFC 3339. Required: scenarios
	// must not depend on the host clock.
	Now string `yaml:"now"`

	// Timezone is the configured zone name. Empty means UTC for
	// scenario reproducibility, unlike the production default.
	Timezone string `yaml:"timezone,omitempty"`

	// FiscalStartMonth is 1 through 12; zero means April.
	FiscalStartMonth int `yaml:"fiscal_start_month,omitempty"`

	// Fixtures seed the store in order.
	Fixtures []Fixture `yaml:"fixtures"`

	// Queries run in order against the seeded store.
	Queries []QueryStep `yaml:"queries"`
}

// Fixture is one seeded record.
type Fixture struct {
	// Entity is the record's logical name.
	Entity string `yaml:"entity"`

	// ID fixes the identifier. Empty assigns a deterministic sequence
	// identifier so golden output stays stable.
	ID string `yaml:"id,omitempty"`

	// Attributes map attribute names to fixture values; see the package
	// documentation for the value forms.
	Attributes map[string]any `yaml:"attributes"`
}

// QueryStep is one query plus its expectations.
type QueryStep struct {
	// Name labels the step in results and failures.
	Name string `yaml:"name"`

	// Fetch is the query markup to translate and evaluate.
	Fetch string `yaml:"fetch"`

	// Expect validates the outcome; nil records outcomes without
	// checking them (golden comparison still applies).
	Expect *Expectation `yaml:"expect,omitempty"`
}

// Expectation validates one query outcome.
type Expectation struct {
	// Count asserts the number of result rows.
	Count *int `yaml:"count,omitempty"`

	// IDs asserts the result row identifiers in order.
	IDs []string `yaml:"ids,omitempty"`

	// Error asserts evaluation fails with the given code: one of
	// PARSE_ERROR, UNSUPPORTED_OPERATOR, TYPE_MISMATCH, UNKNOWN_ENTITY,
	// UNKNOWN_ATTRIBUTE.
	Error string `yaml:"error,omitempty"`
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every expectation held.
	Pass bool

	// Errors lists expectation failures.
	Errors []string

	// Queries holds each step's outcome in order.
	Queries []QueryResult
}

// QueryResult is one step's outcome: result rows on success, an error
// code otherwise.
type QueryResult struct {
	Name    string
	Records []*record.Record
	Error   string
}

// NewResult creates a passing result to accumulate into.
func NewResult() *Result {
	return &Result{Pass: true}
}

// AddError records an expectation failure and marks the run failed.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Pass = false
}
