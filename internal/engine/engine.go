package engine

import (
	"log/slog"
	"regexp"
	"time"

	"github.com/roach88/mimic/internal/fetchxml"
	"github.com/roach88/mimic/internal/querytree"
	"github.com/roach88/mimic/internal/record"
)

// DefaultFiscalStart is the fiscal-year start month used when no
// configuration overrides it.
const DefaultFiscalStart = time.April

// RecordSource supplies candidate records per entity type. Implemented
// by store.Store; GetAll must return a snapshot the engine can read
// without further coordination.
type RecordSource interface {
	GetAll(logicalName string) ([]*record.Record, error)
}

// MetadataProvider resolves entity and attribute metadata. Lookup
// failures surface as unknown-entity and unknown-attribute errors from
// this package.
type MetadataProvider interface {
	Entity(logicalName string) (*record.EntityMeta, error)
	Attribute(entity, attribute string) (record.AttributeMeta, error)
}

// Engine evaluates structured queries against a record source.
//
// Evaluation is all-or-nothing: the first condition error abandons the
// query and no partial result is returned. A single evaluation resolves
// its reference instant once, so every relative-date operator in the
// query sees the same "now".
type Engine struct {
	source      RecordSource
	meta        MetadataProvider
	clock       Clock
	fiscalStart time.Month
	log         *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces the wall clock. Tests pass a fixed clock for
// reproducible relative-date evaluation.
func WithClock(c Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithFiscalStart sets the month fiscal years begin in.
//
// Default: April (DefaultFiscalStart).
func WithFiscalStart(m time.Month) Option {
	return func(e *Engine) {
		e.fiscalStart = m
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// New creates an Engine over the given source and metadata provider.
func New(source RecordSource, meta MetadataProvider, opts ...Option) *Engine {
	clock, _ := NewWallClock("") // empty zone never fails
	e := &Engine{
		source:      source,
		meta:        meta,
		clock:       clock,
		fiscalStart: DefaultFiscalStart,
		log:         slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs a structured query and returns the projected result
// rows in deterministic order.
func (e *Engine) Evaluate(q *querytree.Query) ([]*record.Record, error) {
	if err := querytree.Validate(q); err != nil {
		return nil, err
	}
	if _, err := e.meta.Entity(q.Entity); err != nil {
		return nil, err
	}

	ec := &evalContext{
		now:         e.clock.Now(),
		loc:         e.clock.Zone(),
		fiscalStart: e.fiscalStart,
		meta:        e.meta,
		patterns:    make(map[string]*regexp.Regexp),
	}

	candidates, err := e.source.GetAll(q.Entity)
	if err != nil {
		return nil, err
	}

	e.log.Debug("evaluating query",
		"entity", q.Entity,
		"candidates", len(candidates),
		"links", len(q.Links))

	results := make([]*record.Record, 0, len(candidates))
	for _, cand := range candidates {
		ok, err := ec.evalFilter(cand, q.Entity, q.Filter)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		rows, err := e.expandLinks(ec, cand, q.Entity, q.Links)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			out, err := e.materialize(cand, q.Entity, q.Columns, row)
			if err != nil {
				return nil, err
			}
			results = append(results, out)
		}
	}

	ec.sortRecords(results, q.Orders)

	if q.Top > 0 && len(results) > q.Top {
		results = results[:q.Top]
	}

	e.log.Debug("query evaluated",
		"entity", q.Entity,
		"results", len(results))
	return results, nil
}

// ExecuteMarkup translates query markup and evaluates it in one step.
func (e *Engine) ExecuteMarkup(markup string) ([]*record.Record, error) {
	q, err := fetchxml.Translate(markup)
	if err != nil {
		return nil, err
	}
	return e.Evaluate(q)
}
