// Package serializer provides the pluggable serialization layer of the
// store. It defines a common interface and multiple implementations for
// encoding the in-memory snapshot to the on-disk file format, and for
// encoding individual caller values into the payloads held by Value
// containers.
//
// The package focuses on:
//   - Providing a consistent interface for different serialization formats
//   - Keeping the store and dump engine independent of any concrete format
//   - Supporting both whole-snapshot and per-element encoding, so list
//     elements stay individually decodable and one list may mix types
//
// Key Components:
//
//   - ISerializer: Core interface that all serializer implementations must
//     satisfy. Adding a new on-disk format means adding one implementation
//     of this interface; the store and dump engine are untouched.
//
//   - Method: Tagged configuration value selecting an implementation at
//     store construction or load time. The method is fixed per file and
//     never mixed within one file.
//
//   - jsonSerializerImpl: Standard library JSON encoding. Human-readable
//     output, useful for debugging and inspection, largest payloads.
//
//   - binSerializerImpl: MessagePack encoding. Compact binary output,
//     recommended for production use.
//
//   - yamlSerializerImpl: YAML encoding. Human-readable and editable by
//     hand, slowest of the supported formats.
//
//   - cborSerializerImpl: CBOR encoding (RFC 8949). Compact binary output
//     with wide cross-language support.
//
// Thread Safety:
//
//	All serializer implementations are stateless and safe for concurrent
//	use across multiple goroutines without additional synchronization.
//
// Usage:
//
//	Serializers are typically created once per store handle and reused:
//
//	  s, err := serializer.New(serializer.MethodBin)
//	  data, err := s.SerializeDB(snapshot)
//	  // ... write data ...
//	  var snap db.Snapshot
//	  err = s.DeserializeDB(data, &snap)
package serializer
