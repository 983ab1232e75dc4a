// Package record provides the value and metadata types shared by every
// other package in mimic.
//
// This package contains type definitions and canonical serialization only.
// All other internal packages import record; record imports nothing
// internal. This keeps it the foundational layer with no circular
// dependencies.
//
// Key design constraints:
//   - Value is a sealed interface; the set of attribute value types is
//     closed so evaluators can type-switch exhaustively.
//   - Absent attributes are distinct from present-null attributes. A
//     Record that never had "email" set behaves identically to one where
//     it was set to Null{} for filtering, but the two serialize
//     differently and round-trip differently.
//   - Records preserve attribute insertion order. Projection order in
//     query results is deterministic because of this, not because of any
//     sorting step.
//   - DateTime values carry an explicit Kind tag. Go's time.Time always
//     has a location attached; the Kind tag is what distinguishes an
//     absolute instant from a timezone-unspecified wall reading.
package record
