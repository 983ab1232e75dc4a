// Package engine implements the mimic query-evaluation engine.
//
// The engine takes a structured query (built directly or translated from
// FetchXML markup) and evaluates its criteria tree against the records of
// an in-memory source, reproducing the filtering semantics of the real
// platform: relative date-range operators with inclusive day boundaries,
// per-attribute timezone behaviors, SQL-style wildcard matching, and
// link-entity joins.
//
// ARCHITECTURE:
//
// Evaluation is synchronous and single-threaded per call. There is no
// planner and no index: every candidate record is tested against the
// criteria tree, keeping cost linear in candidate count. Correctness and
// operator-semantic fidelity are the only optimization targets; callers
// assert exact parity with the real platform.
//
// Evaluation flow:
//  1. Validate the query tree (operator arity, join shape).
//  2. Fetch the root entity's records (a consistent snapshot).
//  3. Evaluate the criteria tree per record, resolving date operators
//     against the environment clock and configured zone.
//  4. Expand link-entities: inner joins fan out one row per match and
//     drop unmatched parents; outer joins preserve the parent once.
//  5. Order, limit, and project into the requested column shape.
//
// Failures are immediate and all-or-nothing: no partial result set is
// ever returned alongside an error, and operators outside the
// implemented vocabulary fail loudly instead of matching zero rows.
package engine
