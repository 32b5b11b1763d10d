// Package store implements the embedded, single-file key-value store. A
// Store holds the authoritative in-memory mapping from string keys to
// kind-tagged values, owns every list sub-store, and drives persistence
// through the dump engine according to its dump policy.
//
// The package focuses on:
//   - Typed access over a dynamically-typed backing store: values are
//     encoded on write and decoded on read into a caller-specified type,
//     with mismatches surfacing as recoverable TypeMismatch errors
//   - Ordered, heterogeneous lists with contiguous 0-based indices
//   - Policy-driven persistence with a crash-safe atomic dump protocol
//
// Key Components:
//
//   - Store: The store handle. Created empty with New, or from an existing
//     file with Load / LoadReadOnly. All mutations happen in place for the
//     lifetime of the handle; destruction performs no I/O.
//
//   - Generic accessors: Get, ListGet and ListPop are package-level generic
//     functions because Go methods cannot carry type parameters. The
//     caller names the expected type at the call site and a failed decode
//     is an error value, never a panic.
//
//   - ListExtender: A handle bound to one list, returned by ListCreate,
//     for chained mutations without repeating the key.
//
//   - Iteration: Iter and ListIter produce lazy, restartable, read-only
//     sequences over map entries and list elements.
//
// Dump Policies:
//
//   - AutoDump: every mutating call persists synchronously before it
//     returns; bulk operations dump exactly once per call. A failed dump
//     returns WriteError while the in-memory mutation stays committed.
//   - DumpUponRequest: nothing persists until Dump is called explicitly.
//   - NoDump: the file is never written; Dump is a documented no-op.
//
// Thread Safety:
//
//	A Store is designed for single-owner, single-goroutine use and
//	performs no internal locking. Callers needing concurrent access must
//	layer their own mutual exclusion over the handle. No inter-process
//	coordination is provided either: two processes dumping to one path
//	race, and the last atomic rename wins.
package store
