// Package querytree defines the structured query representation consumed
// by the evaluation engine.
//
// A Query is what every caller path converges on: the FetchXML normalizer
// produces one from markup, and programmatic callers build one directly.
// The engine never sees markup.
//
// ARCHITECTURE:
//
//	[FetchXML markup] → [querytree.Query] → [engine evaluation]
//	[direct callers]  ↗
//
// The operator vocabulary is fixed and closed. Operator names that appear
// in markup map onto this vocabulary through a fixed table in the
// fetchxml package; the engine refuses to evaluate anything outside it.
// There is deliberately no extension point: an operator the platform
// doesn't define is a loud failure, not a zero-row match.
//
// Queries are built once per invocation and treated as immutable
// afterwards. Validate checks the structural invariants (operator arity,
// finite tree) up front so evaluation can assume them.
package querytree
