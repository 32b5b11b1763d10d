package testing

import (
	"fmt"
	"testing"

	"github.com/cornichon-db/cornichon/lib/db"
	"github.com/cornichon-db/cornichon/lib/store"
)

// StoreFactory is a function that creates a fresh store instance backed by
// its own file. Each call must return an independent, empty store.
type StoreFactory func(t *testing.T) *store.Store

// RunStoreTests runs a comprehensive test suite against a store
// configuration. The same suite is expected to pass for every
// serialization method and dump policy combination a factory produces.
func RunStoreTests(t *testing.T, name string, factory StoreFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Set&Get", func(t *testing.T) {
			testSetGet(t, factory(t))
		})

		t.Run("Remove", func(t *testing.T) {
			testRemove(t, factory(t))
		})

		t.Run("Exists&Keys", func(t *testing.T) {
			testExistsKeys(t, factory(t))
		})

		t.Run("TypeMismatch", func(t *testing.T) {
			testTypeMismatch(t, factory(t))
		})

		t.Run("ListBasics", func(t *testing.T) {
			testListBasics(t, factory(t))
		})

		t.Run("ListIndexing", func(t *testing.T) {
			testListIndexing(t, factory(t))
		})

		t.Run("ListRemoval", func(t *testing.T) {
			testListRemoval(t, factory(t))
		})

		t.Run("Iteration", func(t *testing.T) {
			testIteration(t, factory(t))
		})

		t.Run("DumpReload", func(t *testing.T) {
			testDumpReload(t, factory(t))
		})

		t.Run("EdgeCases", func(t *testing.T) {
			testEdgeCases(t, factory(t))
		})

		t.Run("Info", func(t *testing.T) {
			testInfo(t, factory(t))
		})
	})
}

// --------------------------------------------------------------------------
// Helper functions
// --------------------------------------------------------------------------

// reload opens a second store over the same file and configuration,
// simulating a process restart.
func reload(t *testing.T, s *store.Store) *store.Store {
	t.Helper()

	if err := s.Dump(); err != nil {
		t.Fatalf("Unexpected error during Dump: %v", err)
	}

	loaded, err := store.Load(s.Path(), s.Policy(), s.Method())
	if err != nil {
		t.Fatalf("Unexpected error during Load: %v", err)
	}
	return loaded
}

// --------------------------------------------------------------------------
// Test functions
// --------------------------------------------------------------------------

func testSetGet(t *testing.T, s *store.Store) {
	if err := s.Set("string-key", "hello"); err != nil {
		t.Fatalf("Unexpected error during Set: %v", err)
	}
	if err := s.Set("int-key", 42); err != nil {
		t.Fatalf("Unexpected error during Set: %v", err)
	}
	if err := s.Set("float-key", 3.25); err != nil {
		t.Fatalf("Unexpected error during Set: %v", err)
	}
	if err := s.Set("bool-key", true); err != nil {
		t.Fatalf("Unexpected error during Set: %v", err)
	}

	gotString, err := store.Get[string](s, "string-key")
	if err != nil {
		t.Errorf("Unexpected error during Get: %v", err)
	}
	if gotString != "hello" {
		t.Errorf("Expected value %q, got %q", "hello", gotString)
	}

	gotInt, err := store.Get[int](s, "int-key")
	if err != nil {
		t.Errorf("Unexpected error during Get: %v", err)
	}
	if gotInt != 42 {
		t.Errorf("Expected value 42, got %d", gotInt)
	}

	gotFloat, err := store.Get[float64](s, "float-key")
	if err != nil {
		t.Errorf("Unexpected error during Get: %v", err)
	}
	if gotFloat != 3.25 {
		t.Errorf("Expected value 3.25, got %f", gotFloat)
	}

	gotBool, err := store.Get[bool](s, "bool-key")
	if err != nil {
		t.Errorf("Unexpected error during Get: %v", err)
	}
	if !gotBool {
		t.Errorf("Expected value true, got false")
	}

	// overwriting replaces the stored value
	if err := s.Set("string-key", "world"); err != nil {
		t.Fatalf("Unexpected error during Set: %v", err)
	}
	gotString, err = store.Get[string](s, "string-key")
	if err != nil {
		t.Errorf("Unexpected error during Get: %v", err)
	}
	if gotString != "world" {
		t.Errorf("Expected value %q after overwrite, got %q", "world", gotString)
	}

	_, err = store.Get[string](s, "nonexistent-key")
	if !db.HasCode(err, db.RetCKeyNotFound) {
		t.Errorf("Expected KeyNotFound for nonexistent key, got %v", err)
	}
}

func testRemove(t *testing.T, s *store.Store) {
	if err := s.Set("remove-me", "value"); err != nil {
		t.Fatalf("Unexpected error during Set: %v", err)
	}

	removed, err := s.Remove("remove-me")
	if err != nil {
		t.Errorf("Unexpected error during Remove: %v", err)
	}
	if !removed {
		t.Errorf("Expected Remove to report true for existing key")
	}

	if s.Exists("remove-me") {
		t.Errorf("Expected key to not exist after Remove")
	}

	removed, err = s.Remove("remove-me")
	if err != nil {
		t.Errorf("Unexpected error during Remove of absent key: %v", err)
	}
	if removed {
		t.Errorf("Expected Remove to report false for absent key")
	}

	// Remove deletes lists too
	if _, err := s.ListCreate("remove-list"); err != nil {
		t.Fatalf("Unexpected error during ListCreate: %v", err)
	}
	removed, err = s.Remove("remove-list")
	if err != nil {
		t.Errorf("Unexpected error during Remove of list key: %v", err)
	}
	if !removed {
		t.Errorf("Expected Remove to report true for list key")
	}
}

func testExistsKeys(t *testing.T, s *store.Store) {
	if s.Exists("missing") {
		t.Errorf("Expected Exists to return false for nonexistent key")
	}
	if s.TotalKeys() != 0 {
		t.Errorf("Expected empty store, got %d keys", s.TotalKeys())
	}

	numKeys := 100
	for i := 0; i < numKeys; i++ {
		key := fmt.Sprintf("key-%d", i)
		if err := s.Set(key, i); err != nil {
			t.Fatalf("Unexpected error during Set: %v", err)
		}
		if !s.Exists(key) {
			t.Errorf("Key %s not found after Set", key)
		}
	}

	if s.TotalKeys() != numKeys {
		t.Errorf("Expected %d keys, got %d", numKeys, s.TotalKeys())
	}

	seen := make(map[string]bool)
	for _, key := range s.Keys() {
		seen[key] = true
	}
	if len(seen) != numKeys {
		t.Errorf("Expected %d distinct keys, got %d", numKeys, len(seen))
	}
	for i := 0; i < numKeys; i++ {
		key := fmt.Sprintf("key-%d", i)
		if !seen[key] {
			t.Errorf("Key %s missing from Keys()", key)
		}
	}
}

func testTypeMismatch(t *testing.T, s *store.Store) {
	if err := s.Set("scalar", 1); err != nil {
		t.Fatalf("Unexpected error during Set: %v", err)
	}
	if _, err := s.ListCreate("list"); err != nil {
		t.Fatalf("Unexpected error during ListCreate: %v", err)
	}

	// scalar access on a list
	_, err := store.Get[int](s, "list")
	if !db.HasCode(err, db.RetCTypeMismatch) {
		t.Errorf("Expected TypeMismatch when reading list as scalar, got %v", err)
	}

	// list access on a scalar
	if err := s.ListAdd("scalar", 2); !db.HasCode(err, db.RetCKeyNotFound) {
		t.Errorf("Expected KeyNotFound when extending scalar as list, got %v", err)
	}
	_, err = store.ListGet[int](s, "scalar", 0)
	if !db.HasCode(err, db.RetCKeyNotFound) {
		t.Errorf("Expected KeyNotFound when indexing scalar as list, got %v", err)
	}
	if s.ListExists("scalar") {
		t.Errorf("Expected ListExists to return false for scalar key")
	}
	if s.ListLen("scalar") != 0 {
		t.Errorf("Expected ListLen 0 for scalar key")
	}
}

func testListBasics(t *testing.T, s *store.Store) {
	ext, err := s.ListCreate("numbers")
	if err != nil {
		t.Fatalf("Unexpected error during ListCreate: %v", err)
	}

	if !s.ListExists("numbers") {
		t.Errorf("Expected list to exist after ListCreate")
	}
	if s.ListLen("numbers") != 0 {
		t.Errorf("Expected empty list, got length %d", s.ListLen("numbers"))
	}

	if err := ext.Add(1); err != nil {
		t.Fatalf("Unexpected error during Add: %v", err)
	}
	if err := ext.Extend(2, 3, 4); err != nil {
		t.Fatalf("Unexpected error during Extend: %v", err)
	}
	if ext.Len() != 4 {
		t.Errorf("Expected length 4, got %d", ext.Len())
	}

	if err := s.ListAdd("numbers", 5); err != nil {
		t.Fatalf("Unexpected error during ListAdd: %v", err)
	}
	if s.ListLen("numbers") != 5 {
		t.Errorf("Expected length 5, got %d", s.ListLen("numbers"))
	}

	for i := 0; i < 5; i++ {
		got, err := store.ListGet[int](s, "numbers", i)
		if err != nil {
			t.Errorf("Unexpected error during ListGet(%d): %v", i, err)
			continue
		}
		if got != i+1 {
			t.Errorf("Expected element %d at index %d, got %d", i+1, i, got)
		}
	}

	// heterogeneous elements share a list
	if _, err := s.ListCreate("mixed"); err != nil {
		t.Fatalf("Unexpected error during ListCreate: %v", err)
	}
	if err := s.ListExtend("mixed", "text", 7, true); err != nil {
		t.Fatalf("Unexpected error during ListExtend: %v", err)
	}

	gotStr, err := store.ListGet[string](s, "mixed", 0)
	if err != nil || gotStr != "text" {
		t.Errorf("Expected %q at index 0, got %q (err=%v)", "text", gotStr, err)
	}
	gotInt, err := store.ListGet[int](s, "mixed", 1)
	if err != nil || gotInt != 7 {
		t.Errorf("Expected 7 at index 1, got %d (err=%v)", gotInt, err)
	}
	gotBool, err := store.ListGet[bool](s, "mixed", 2)
	if err != nil || !gotBool {
		t.Errorf("Expected true at index 2, got %v (err=%v)", gotBool, err)
	}

	// re-creating an existing list resets it
	if _, err := s.ListCreate("numbers"); err != nil {
		t.Fatalf("Unexpected error during ListCreate: %v", err)
	}
	if s.ListLen("numbers") != 0 {
		t.Errorf("Expected re-created list to be empty, got length %d", s.ListLen("numbers"))
	}
}

func testListIndexing(t *testing.T, s *store.Store) {
	if _, err := s.ListCreate("idx"); err != nil {
		t.Fatalf("Unexpected error during ListCreate: %v", err)
	}
	if err := s.ListExtend("idx", 10, 20, 30); err != nil {
		t.Fatalf("Unexpected error during ListExtend: %v", err)
	}

	_, err := store.ListGet[int](s, "idx", 3)
	if !db.HasCode(err, db.RetCIndexOutOfRange) {
		t.Errorf("Expected IndexOutOfRange for index 3, got %v", err)
	}
	_, err = store.ListGet[int](s, "idx", -1)
	if !db.HasCode(err, db.RetCIndexOutOfRange) {
		t.Errorf("Expected IndexOutOfRange for index -1, got %v", err)
	}

	got, err := store.ListPop[int](s, "idx", 1)
	if err != nil {
		t.Fatalf("Unexpected error during ListPop: %v", err)
	}
	if got != 20 {
		t.Errorf("Expected popped value 20, got %d", got)
	}
	if s.ListLen("idx") != 2 {
		t.Errorf("Expected length 2 after pop, got %d", s.ListLen("idx"))
	}

	// remaining order preserved
	first, _ := store.ListGet[int](s, "idx", 0)
	second, _ := store.ListGet[int](s, "idx", 1)
	if first != 10 || second != 30 {
		t.Errorf("Expected [10 30] after pop, got [%d %d]", first, second)
	}

	_, err = store.ListPop[int](s, "idx", 5)
	if !db.HasCode(err, db.RetCIndexOutOfRange) {
		t.Errorf("Expected IndexOutOfRange for pop at index 5, got %v", err)
	}
	_, err = store.ListPop[int](s, "missing-list", 0)
	if !db.HasCode(err, db.RetCKeyNotFound) {
		t.Errorf("Expected KeyNotFound for pop on missing list, got %v", err)
	}
}

func testListRemoval(t *testing.T, s *store.Store) {
	if _, err := s.ListCreate("rem"); err != nil {
		t.Fatalf("Unexpected error during ListCreate: %v", err)
	}
	if err := s.ListExtend("rem", "a", "b", "a", "c"); err != nil {
		t.Fatalf("Unexpected error during ListExtend: %v", err)
	}

	// only the first match is removed
	removed, err := s.ListRemoveValue("rem", "a")
	if err != nil {
		t.Fatalf("Unexpected error during ListRemoveValue: %v", err)
	}
	if !removed {
		t.Errorf("Expected ListRemoveValue to report true")
	}
	if s.ListLen("rem") != 3 {
		t.Errorf("Expected length 3 after removal, got %d", s.ListLen("rem"))
	}
	got, _ := store.ListGet[string](s, "rem", 1)
	if got != "a" {
		t.Errorf("Expected second %q to survive at index 1, got %q", "a", got)
	}

	removed, err = s.ListRemoveValue("rem", "z")
	if err != nil {
		t.Errorf("Unexpected error during ListRemoveValue of absent value: %v", err)
	}
	if removed {
		t.Errorf("Expected ListRemoveValue to report false for absent value")
	}

	if err := s.ListRemoveIndex("rem", 0); err != nil {
		t.Fatalf("Unexpected error during ListRemoveIndex: %v", err)
	}
	got, _ = store.ListGet[string](s, "rem", 0)
	if got != "a" {
		t.Errorf("Expected %q at index 0 after index removal, got %q", "a", got)
	}

	if err := s.ListRemoveIndex("rem", 99); !db.HasCode(err, db.RetCIndexOutOfRange) {
		t.Errorf("Expected IndexOutOfRange, got %v", err)
	}

	count, err := s.ListDelete("rem")
	if err != nil {
		t.Fatalf("Unexpected error during ListDelete: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected ListDelete to report 2 elements, got %d", count)
	}
	if s.ListExists("rem") {
		t.Errorf("Expected list to not exist after ListDelete")
	}

	count, err = s.ListDelete("rem")
	if err != nil {
		t.Errorf("Unexpected error during ListDelete of absent list: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected ListDelete of absent list to report 0, got %d", count)
	}
}

func testIteration(t *testing.T, s *store.Store) {
	if err := s.Set("scalar-1", 1); err != nil {
		t.Fatalf("Unexpected error during Set: %v", err)
	}
	if err := s.Set("scalar-2", 2); err != nil {
		t.Fatalf("Unexpected error during Set: %v", err)
	}
	if _, err := s.ListCreate("list-1"); err != nil {
		t.Fatalf("Unexpected error during ListCreate: %v", err)
	}
	if err := s.ListExtend("list-1", 10, 20, 30); err != nil {
		t.Fatalf("Unexpected error during ListExtend: %v", err)
	}

	kinds := make(map[string]db.Kind)
	for key, kind := range s.Iter() {
		kinds[key] = kind
	}
	if len(kinds) != 3 {
		t.Errorf("Expected 3 iterated keys, got %d", len(kinds))
	}
	if kinds["scalar-1"] != db.KindScalar || kinds["scalar-2"] != db.KindScalar {
		t.Errorf("Expected scalar kinds for scalar keys, got %v", kinds)
	}
	if kinds["list-1"] != db.KindList {
		t.Errorf("Expected list kind for list key, got %v", kinds["list-1"])
	}

	items, err := s.ListIter("list-1")
	if err != nil {
		t.Fatalf("Unexpected error during ListIter: %v", err)
	}

	want := []int{10, 20, 30}
	i := 0
	for item := range items {
		var got int
		if err := item.Decode(&got); err != nil {
			t.Errorf("Unexpected error decoding element %d: %v", i, err)
		} else if got != want[i] {
			t.Errorf("Expected element %d, got %d", want[i], got)
		}
		if len(item.Bytes()) == 0 {
			t.Errorf("Expected non-empty encoded bytes for element %d", i)
		}
		i++
	}
	if i != len(want) {
		t.Errorf("Expected %d elements, iterated %d", len(want), i)
	}

	// the sequence is restartable
	i = 0
	for range items {
		i++
	}
	if i != len(want) {
		t.Errorf("Expected restartable sequence to yield %d elements, got %d", len(want), i)
	}

	if _, err := s.ListIter("scalar-1"); !db.HasCode(err, db.RetCKeyNotFound) {
		t.Errorf("Expected KeyNotFound for ListIter on scalar, got %v", err)
	}
	if _, err := s.ListIter("missing"); !db.HasCode(err, db.RetCKeyNotFound) {
		t.Errorf("Expected KeyNotFound for ListIter on missing key, got %v", err)
	}
}

func testDumpReload(t *testing.T, s *store.Store) {
	numEntries := 100
	for i := 0; i < numEntries; i++ {
		if err := s.Set(fmt.Sprintf("scalar-%d", i), i*i); err != nil {
			t.Fatalf("Unexpected error during Set: %v", err)
		}
	}
	if _, err := s.ListCreate("empty-list"); err != nil {
		t.Fatalf("Unexpected error during ListCreate: %v", err)
	}
	if _, err := s.ListCreate("full-list"); err != nil {
		t.Fatalf("Unexpected error during ListCreate: %v", err)
	}
	if err := s.ListExtend("full-list", "x", "y", "z"); err != nil {
		t.Fatalf("Unexpected error during ListExtend: %v", err)
	}

	loaded := reload(t, s)

	if loaded.TotalKeys() != s.TotalKeys() {
		t.Errorf("Expected %d keys after reload, got %d", s.TotalKeys(), loaded.TotalKeys())
	}

	for i := 0; i < numEntries; i++ {
		key := fmt.Sprintf("scalar-%d", i)
		got, err := store.Get[int](loaded, key)
		if err != nil {
			t.Errorf("Key %s not readable after reload: %v", key, err)
			continue
		}
		if got != i*i {
			t.Errorf("Value mismatch for key %s: expected %d, got %d", key, i*i, got)
		}
	}

	// empty lists survive the round trip as lists, not as absent keys
	if !loaded.ListExists("empty-list") {
		t.Errorf("Expected empty list to survive reload")
	}
	if loaded.ListLen("empty-list") != 0 {
		t.Errorf("Expected empty list to stay empty, got length %d", loaded.ListLen("empty-list"))
	}

	if loaded.ListLen("full-list") != 3 {
		t.Errorf("Expected full list length 3, got %d", loaded.ListLen("full-list"))
	}
	got, err := store.ListGet[string](loaded, "full-list", 1)
	if err != nil || got != "y" {
		t.Errorf("Expected %q at index 1 after reload, got %q (err=%v)", "y", got, err)
	}
}

func testEdgeCases(t *testing.T, s *store.Store) {
	// the empty string is an ordinary key
	if err := s.Set("", "empty key value"); err != nil {
		t.Fatalf("Unexpected error during Set with empty key: %v", err)
	}
	got, err := store.Get[string](s, "")
	if err != nil {
		t.Errorf("Empty key not readable: %v", err)
	} else if got != "empty key value" {
		t.Errorf("Value mismatch for empty key: got %q", got)
	}

	// empty string values round-trip
	if err := s.Set("empty-value", ""); err != nil {
		t.Fatalf("Unexpected error during Set with empty value: %v", err)
	}
	got, err = store.Get[string](s, "empty-value")
	if err != nil {
		t.Errorf("Key with empty value not readable: %v", err)
	} else if got != "" {
		t.Errorf("Expected empty value, got %q", got)
	}

	// structured values round-trip
	type point struct {
		X int `json:"x" yaml:"x" cbor:"x" msgpack:"x"`
		Y int `json:"y" yaml:"y" cbor:"y" msgpack:"y"`
	}
	if err := s.Set("struct-key", point{X: 3, Y: 4}); err != nil {
		t.Fatalf("Unexpected error during Set with struct value: %v", err)
	}
	gotPoint, err := store.Get[point](s, "struct-key")
	if err != nil {
		t.Errorf("Struct value not readable: %v", err)
	} else if gotPoint != (point{X: 3, Y: 4}) {
		t.Errorf("Struct value mismatch: got %+v", gotPoint)
	}

	// large keys work like any other
	largeKey := string(make([]byte, 1000))
	if err := s.Set(largeKey, "large key value"); err != nil {
		t.Fatalf("Unexpected error during Set with large key: %v", err)
	}
	got, err = store.Get[string](s, largeKey)
	if err != nil {
		t.Errorf("Large key not readable: %v", err)
	} else if got != "large key value" {
		t.Errorf("Value mismatch for large key: got %q", got)
	}
}

func testInfo(t *testing.T, s *store.Store) {
	if err := s.Set("a", "value-a"); err != nil {
		t.Fatalf("Unexpected error during Set: %v", err)
	}
	if err := s.Set("b", "value-b"); err != nil {
		t.Fatalf("Unexpected error during Set: %v", err)
	}
	if _, err := s.ListCreate("c"); err != nil {
		t.Fatalf("Unexpected error during ListCreate: %v", err)
	}
	if err := s.ListExtend("c", 1, 2, 3); err != nil {
		t.Fatalf("Unexpected error during ListExtend: %v", err)
	}

	info := s.GetInfo()

	if info.Path != s.Path() {
		t.Errorf("Expected path %q, got %q", s.Path(), info.Path)
	}
	if info.SerializationMethod != s.Method().String() {
		t.Errorf("Expected method %q, got %q", s.Method().String(), info.SerializationMethod)
	}
	if info.Policy != s.Policy() {
		t.Errorf("Expected policy %v, got %v", s.Policy(), info.Policy)
	}
	if info.TotalKeys != 3 {
		t.Errorf("Expected 3 total keys, got %d", info.TotalKeys)
	}
	if info.ScalarKeys != 2 {
		t.Errorf("Expected 2 scalar keys, got %d", info.ScalarKeys)
	}
	if info.ListKeys != 1 {
		t.Errorf("Expected 1 list key, got %d", info.ListKeys)
	}
	if info.SizeBytes <= 0 {
		t.Errorf("Expected positive size estimate, got %d", info.SizeBytes)
	}
	if info.AvgEntrySize <= 0 {
		t.Errorf("Expected positive average entry size, got %d", info.AvgEntrySize)
	}
	if info.MedianEntrySize <= 0 {
		t.Errorf("Expected positive median entry size, got %d", info.MedianEntrySize)
	}
	if info.TypicalEntrySize <= 0 {
		t.Errorf("Expected positive typical entry size, got %d", info.TypicalEntrySize)
	}

	// an empty store reports zero estimates across the board
	for _, key := range s.Keys() {
		if _, err := s.Remove(key); err != nil {
			t.Fatalf("Unexpected error during Remove: %v", err)
		}
	}
	emptyInfo := s.GetInfo()
	if emptyInfo.TotalKeys != 0 || emptyInfo.SizeBytes != 0 ||
		emptyInfo.AvgEntrySize != 0 || emptyInfo.MedianEntrySize != 0 || emptyInfo.TypicalEntrySize != 0 {
		t.Errorf("Expected zeroed info for empty store, got %+v", emptyInfo)
	}
}
