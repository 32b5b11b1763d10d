// Package db defines the core data model shared by the store, serializer
// and dump packages: the kind-tagged Value container, the Snapshot file
// layout, the dump-policy enumeration and the unified error taxonomy.
//
// The package focuses on:
//   - A tagged union (Value) decoupling stored payloads from any single
//     serialization format
//   - A self-describing file layout (Snapshot) with a reserved version
//     field for forward format evolution
//   - Typed, recoverable errors with structured return codes
//
// Key Components:
//
//   - Value: Each key in a store maps to exactly one Value, which is either
//     a scalar (one opaque encoded payload) or a list (an ordered sequence
//     of individually encoded elements). A key denotes one kind or the
//     other, never both; converting requires removal and recreation.
//
//   - Snapshot: The shape of the store as persisted to disk, a mapping of
//     key to Value plus a layout-version field. Serializer implementations
//     encode and decode this structure; the dump engine never inspects it.
//
//   - DumpPolicy: The three persistence policies (AutoDump,
//     DumpUponRequest, NoDump) recognized at store construction time.
//
//   - Error / RetCode: A structured error reporting mechanism using typed
//     codes and descriptive messages. Expected conditions (missing key,
//     out-of-range index, missing file) are always reported as values,
//     never as panics.
//
// Related Packages:
//
// The serializer package (github.com/cornichon-db/cornichon/lib/serializer)
// converts Snapshots to and from concrete wire formats. The store package
// (github.com/cornichon-db/cornichon/lib/store) implements the key-value
// store itself on top of this data model.
package db
