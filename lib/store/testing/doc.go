// Package testing provides a standardised test suite for store
// configurations. The same behavioural contract is expected to hold for
// every serialization method and dump policy, so the suite is written once
// and run against each configuration through a factory function.
//
// The suite covers:
//   - Scalar operations: set, typed get, remove, existence and key listing
//   - List operations: creation, extension, indexing, popping and removal
//   - Error taxonomy: KeyNotFound, TypeMismatch and IndexOutOfRange cases
//   - Persistence: dump and reload round trips, including empty lists
//
// Example usage:
//
//	// Creating a factory function for a configuration
//	factory := func(t *testing.T) *store.Store {
//		path := filepath.Join(t.TempDir(), "test.db")
//		s, err := store.New(path, db.AutoDump, serializer.MethodJSON)
//		if err != nil {
//			t.Fatal(err)
//		}
//		return s
//	}
//
//	// Running the standard test suite
//	storetesting.RunStoreTests(t, "JSON/AutoDump", factory)
package testing
