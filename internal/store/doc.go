// Package store holds records in memory, partitioned by entity type.
//
// The store is the system of record the query engine reads from. Writes
// normalize date/time attributes according to the entity's declared
// date behaviors, so a value read back always reflects the behavior
// policy rather than whatever form the writer supplied.
//
// Reads return deep-copied snapshots. A caller mutating a returned
// record never affects stored state, and the engine can evaluate a
// query without coordinating with concurrent writers beyond the
// per-partition lock.
package store
