// Package dump implements the crash-safe persistence protocol of the store.
// It writes an encoded snapshot to a temporary file in the target directory,
// syncs it to stable storage and atomically renames it over the store's
// canonical file, so that a crash or power loss during a dump never
// corrupts previously committed data.
//
// The package operates on raw bytes only: encoding and decoding of the
// snapshot is the serializer package's concern, policy around missing files
// is the store package's concern. This keeps the durability-critical code
// path small and independently testable.
package dump
