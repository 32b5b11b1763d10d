package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cornichon-db/cornichon/lib/db"
	"github.com/cornichon-db/cornichon/lib/serializer"
	"github.com/cornichon-db/cornichon/lib/store"
	storetesting "github.com/cornichon-db/cornichon/lib/store/testing"
)

var testMethods = []serializer.Method{
	serializer.MethodJSON,
	serializer.MethodBin,
	serializer.MethodYAML,
	serializer.MethodCBOR,
}

// TestStoreConformance runs the standard suite for every serialization
// method under both write policies.
func TestStoreConformance(t *testing.T) {
	for _, method := range testMethods {
		for _, policy := range []db.DumpPolicy{db.AutoDump, db.DumpUponRequest} {
			name := method.String() + "/" + policy.String()
			storetesting.RunStoreTests(t, name, func(t *testing.T) *store.Store {
				path := filepath.Join(t.TempDir(), "test.db")
				s, err := store.New(path, policy, method)
				if err != nil {
					t.Fatalf("Unexpected error during New: %v", err)
				}
				return s
			})
		}
	}
}

// TestTypicalSession walks through a representative session: scalar writes,
// a restart, list manipulation and index-shifting removal.
func TestTypicalSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	s, err := store.New(path, db.AutoDump, serializer.MethodJSON)
	if err != nil {
		t.Fatalf("Unexpected error during New: %v", err)
	}

	if err := s.Set("key1", 100); err != nil {
		t.Fatalf("Unexpected error during Set: %v", err)
	}
	got, err := store.Get[int](s, "key1")
	if err != nil || got != 100 {
		t.Fatalf("Expected 100 for key1, got %d (err=%v)", got, err)
	}

	// restart: reopen from disk
	s, err = store.Load(path, db.AutoDump, serializer.MethodJSON)
	if err != nil {
		t.Fatalf("Unexpected error during Load: %v", err)
	}
	got, err = store.Get[int](s, "key1")
	if err != nil || got != 100 {
		t.Fatalf("Expected 100 for key1 after reload, got %d (err=%v)", got, err)
	}

	if _, err := s.ListCreate("l"); err != nil {
		t.Fatalf("Unexpected error during ListCreate: %v", err)
	}
	if err := s.ListExtend("l", 1, 2, 3); err != nil {
		t.Fatalf("Unexpected error during ListExtend: %v", err)
	}

	got, err = store.ListGet[int](s, "l", 1)
	if err != nil || got != 2 {
		t.Fatalf("Expected 2 at index 1, got %d (err=%v)", got, err)
	}

	// removing index 0 shifts the remaining elements down
	if err := s.ListRemoveIndex("l", 0); err != nil {
		t.Fatalf("Unexpected error during ListRemoveIndex: %v", err)
	}
	got, err = store.ListGet[int](s, "l", 0)
	if err != nil || got != 2 {
		t.Fatalf("Expected 2 at index 0 after removal, got %d (err=%v)", got, err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.db")

	_, err := store.Load(path, db.AutoDump, serializer.MethodJSON)
	if !db.HasCode(err, db.RetCFileNotFound) {
		t.Errorf("Expected FileNotFound for missing file, got %v", err)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.db")
	if err := os.WriteFile(path, []byte("{{{{ not a snapshot"), 0644); err != nil {
		t.Fatalf("Unexpected error writing fixture: %v", err)
	}

	_, err := store.Load(path, db.AutoDump, serializer.MethodJSON)
	if !db.HasCode(err, db.RetCLoad) {
		t.Errorf("Expected LoadError for corrupt file, got %v", err)
	}
}

// TestLoadTruncatedFile loads a zero-length store file with every method.
// Lenient decoders (YAML in particular) accept empty input as a zero-valued
// snapshot; the version guard must turn that into a load failure instead of
// silently presenting an empty store.
func TestLoadTruncatedFile(t *testing.T) {
	for _, method := range testMethods {
		t.Run(method.String(), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "truncated.db")
			if err := os.WriteFile(path, nil, 0644); err != nil {
				t.Fatalf("Unexpected error writing fixture: %v", err)
			}

			_, err := store.Load(path, db.AutoDump, method)
			if !db.HasCode(err, db.RetCLoad) {
				t.Errorf("Expected LoadError for empty file, got %v", err)
			}
		})
	}
}

// TestLoadForeignFormat loads a file dumped with one method using another.
// The binary formats must reject a JSON payload as a load failure rather
// than producing a half-decoded store.
func TestLoadForeignFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "format.db")

	s, err := store.New(path, db.AutoDump, serializer.MethodJSON)
	if err != nil {
		t.Fatalf("Unexpected error during New: %v", err)
	}
	if err := s.Set("key", "value"); err != nil {
		t.Fatalf("Unexpected error during Set: %v", err)
	}

	_, err = store.Load(path, db.AutoDump, serializer.MethodBin)
	if !db.HasCode(err, db.RetCLoad) {
		t.Errorf("Expected LoadError when decoding JSON dump as bin, got %v", err)
	}
}

func TestSetEncodingFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "encode.db")

	s, err := store.New(path, db.AutoDump, serializer.MethodJSON)
	if err != nil {
		t.Fatalf("Unexpected error during New: %v", err)
	}

	// channels cannot be encoded as JSON
	err = s.Set("bad", make(chan int))
	if !db.HasCode(err, db.RetCEncoding) {
		t.Errorf("Expected EncodingError, got %v", err)
	}
	if s.Exists("bad") {
		t.Errorf("Expected store to be unchanged after encoding failure")
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Errorf("Expected no dump after encoding failure")
	}
}

func TestListExtendEncodingFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extend.db")

	s, err := store.New(path, db.AutoDump, serializer.MethodJSON)
	if err != nil {
		t.Fatalf("Unexpected error during New: %v", err)
	}
	if _, err := s.ListCreate("l"); err != nil {
		t.Fatalf("Unexpected error during ListCreate: %v", err)
	}
	if err := s.ListExtend("l", 1, 2); err != nil {
		t.Fatalf("Unexpected error during ListExtend: %v", err)
	}

	// one bad element fails the whole batch, leaving the list unchanged
	err = s.ListExtend("l", 3, make(chan int), 4)
	if !db.HasCode(err, db.RetCEncoding) {
		t.Errorf("Expected EncodingError, got %v", err)
	}
	if s.ListLen("l") != 2 {
		t.Errorf("Expected list unchanged after encoding failure, got length %d", s.ListLen("l"))
	}
}

// TestDumpFailureKeepsMutation verifies that a failed policy-triggered dump
// reports WriteError while the in-memory mutation stays committed.
func TestDumpFailureKeepsMutation(t *testing.T) {
	// the parent directory does not exist, so every dump fails
	path := filepath.Join(t.TempDir(), "missing-dir", "test.db")

	s, err := store.New(path, db.AutoDump, serializer.MethodJSON)
	if err != nil {
		t.Fatalf("Unexpected error during New: %v", err)
	}

	err = s.Set("key", "value")
	if !db.HasCode(err, db.RetCWrite) {
		t.Errorf("Expected WriteError from failed dump, got %v", err)
	}

	got, err := store.Get[string](s, "key")
	if err != nil {
		t.Errorf("Expected in-memory mutation to survive failed dump: %v", err)
	}
	if got != "value" {
		t.Errorf("Expected value %q, got %q", "value", got)
	}
}
