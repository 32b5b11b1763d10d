package serializer

import (
	"bytes"
	"testing"

	"github.com/cornichon-db/cornichon/lib/db"
)

// testSerializers is a map of serializer name to factory function
var testSerializers = map[string]func() ISerializer{
	"JSON": NewJSONSerializer,
	"Bin":  NewBinSerializer,
	"YAML": NewYAMLSerializer,
	"CBOR": NewCBORSerializer,
}

// testSnapshots creates a set of test snapshots with different shapes
func testSnapshots() []*db.Snapshot {
	empty := db.NewSnapshot()

	scalars := db.NewSnapshot()
	scalars.Entries["key1"] = db.NewScalar([]byte(`100`))
	scalars.Entries["key2"] = db.NewScalar([]byte(`"hello world"`))
	scalars.Entries["empty-payload"] = db.NewScalar([]byte{})

	lists := db.NewSnapshot()
	lists.Entries["empty-list"] = db.NewList()
	lists.Entries["numbers"] = db.Value{
		Kind: db.KindList,
		List: [][]byte{[]byte(`1`), []byte(`2`), []byte(`3`)},
	}
	// lists are heterogeneous: elements are encoded individually
	lists.Entries["mixed"] = db.Value{
		Kind: db.KindList,
		List: [][]byte{[]byte(`100`), []byte(`"my string"`), []byte(`[1,2]`)},
	}

	both := db.NewSnapshot()
	both.Entries["scalar"] = db.NewScalar([]byte{0x00, 0xff, 0x10})
	both.Entries["list"] = db.Value{
		Kind: db.KindList,
		List: [][]byte{{0x01}, {}, {0x02, 0x03}},
	}

	return []*db.Snapshot{empty, scalars, lists, both}
}

// snapshotsEqual compares two snapshots entry by entry. Byte slices are
// compared with bytes.Equal so a nil payload and an empty payload count as
// equal (they decode identically).
func snapshotsEqual(a, b *db.Snapshot) bool {
	if a.Version != b.Version || len(a.Entries) != len(b.Entries) {
		return false
	}
	for key, va := range a.Entries {
		vb, ok := b.Entries[key]
		if !ok || va.Kind != vb.Kind {
			return false
		}
		if !bytes.Equal(va.Data, vb.Data) {
			return false
		}
		if len(va.List) != len(vb.List) {
			return false
		}
		for i := range va.List {
			if !bytes.Equal(va.List[i], vb.List[i]) {
				return false
			}
		}
	}
	return true
}

// TestSerializerRoundTrip tests that snapshots can be serialized and
// deserialized losslessly by every implementation
func TestSerializerRoundTrip(t *testing.T) {
	snapshots := testSnapshots()

	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			s := factory()

			for i, snap := range snapshots {
				data, err := s.SerializeDB(snap)
				if err != nil {
					t.Errorf("Failed to serialize snapshot %d: %v", i, err)
					continue
				}

				var result db.Snapshot
				if err := s.DeserializeDB(data, &result); err != nil {
					t.Errorf("Failed to deserialize snapshot %d: %v", i, err)
					continue
				}

				if !snapshotsEqual(snap, &result) {
					t.Errorf("Snapshot %d doesn't match after round trip:\nOriginal: %+v\nResult: %+v",
						i, snap, &result)
				}
			}
		})
	}
}

// TestEmptyListRoundTrip verifies that an empty list survives a round trip
// as a list, not as an absent entry
func TestEmptyListRoundTrip(t *testing.T) {
	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			s := factory()

			snap := db.NewSnapshot()
			snap.Entries["l"] = db.NewList()

			data, err := s.SerializeDB(snap)
			if err != nil {
				t.Fatalf("Failed to serialize: %v", err)
			}

			var result db.Snapshot
			if err := s.DeserializeDB(data, &result); err != nil {
				t.Fatalf("Failed to deserialize: %v", err)
			}

			entry, ok := result.Entries["l"]
			if !ok {
				t.Fatalf("Empty list entry lost in round trip")
			}
			if entry.Kind != db.KindList {
				t.Errorf("Expected kind %s, got %s", db.KindList, entry.Kind)
			}
			if len(entry.List) != 0 {
				t.Errorf("Expected empty list, got %d elements", len(entry.List))
			}
		})
	}
}

// TestDataRoundTrip tests per-element encoding for a variety of value shapes
func TestDataRoundTrip(t *testing.T) {
	type coor struct {
		X int `json:"x" yaml:"x" cbor:"x" msgpack:"x"`
		Y int `json:"y" yaml:"y" cbor:"y" msgpack:"y"`
	}

	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			s := factory()

			t.Run("Int", func(t *testing.T) {
				data, err := s.SerializeData(100)
				if err != nil {
					t.Fatalf("Failed to serialize: %v", err)
				}
				var out int
				if err := s.DeserializeData(data, &out); err != nil {
					t.Fatalf("Failed to deserialize: %v", err)
				}
				if out != 100 {
					t.Errorf("Expected 100, got %d", out)
				}
			})

			t.Run("Float", func(t *testing.T) {
				data, err := s.SerializeData(1.234)
				if err != nil {
					t.Fatalf("Failed to serialize: %v", err)
				}
				var out float64
				if err := s.DeserializeData(data, &out); err != nil {
					t.Fatalf("Failed to deserialize: %v", err)
				}
				if out != 1.234 {
					t.Errorf("Expected 1.234, got %f", out)
				}
			})

			t.Run("String", func(t *testing.T) {
				data, err := s.SerializeData("hello world")
				if err != nil {
					t.Fatalf("Failed to serialize: %v", err)
				}
				var out string
				if err := s.DeserializeData(data, &out); err != nil {
					t.Fatalf("Failed to deserialize: %v", err)
				}
				if out != "hello world" {
					t.Errorf("Expected %q, got %q", "hello world", out)
				}
			})

			t.Run("Slice", func(t *testing.T) {
				data, err := s.SerializeData([]int{1, 2, 3})
				if err != nil {
					t.Fatalf("Failed to serialize: %v", err)
				}
				var out []int
				if err := s.DeserializeData(data, &out); err != nil {
					t.Fatalf("Failed to deserialize: %v", err)
				}
				if len(out) != 3 || out[0] != 1 || out[1] != 2 || out[2] != 3 {
					t.Errorf("Expected [1 2 3], got %v", out)
				}
			})

			t.Run("Struct", func(t *testing.T) {
				data, err := s.SerializeData(coor{X: 1, Y: 2})
				if err != nil {
					t.Fatalf("Failed to serialize: %v", err)
				}
				var out coor
				if err := s.DeserializeData(data, &out); err != nil {
					t.Fatalf("Failed to deserialize: %v", err)
				}
				if out.X != 1 || out.Y != 2 {
					t.Errorf("Expected {1 2}, got %+v", out)
				}
			})
		})
	}
}

// TestInvalidSnapshotData tests how the serializers handle corrupt input
func TestInvalidSnapshotData(t *testing.T) {
	garbage := []byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x01}

	for name, factory := range testSerializers {
		t.Run(name, func(t *testing.T) {
			s := factory()

			var snap db.Snapshot
			if err := s.DeserializeDB(garbage, &snap); err == nil {
				// YAML is permissive enough to decode some byte soup; the
				// snapshot must at least come back structurally empty then
				if len(snap.Entries) != 0 {
					t.Errorf("Expected error or empty snapshot for garbage input, got %+v", snap)
				}
			}
		})
	}
}

// TestParseMethod tests the method enumeration round trip
func TestParseMethod(t *testing.T) {
	for _, m := range []Method{MethodJSON, MethodBin, MethodYAML, MethodCBOR} {
		parsed, err := ParseMethod(m.String())
		if err != nil {
			t.Errorf("ParseMethod(%q) failed: %v", m.String(), err)
		}
		if parsed != m {
			t.Errorf("ParseMethod(%q) = %v, expected %v", m.String(), parsed, m)
		}

		if _, err := New(m); err != nil {
			t.Errorf("New(%v) failed: %v", m, err)
		}
	}

	if _, err := ParseMethod("protobuf"); err == nil {
		t.Errorf("Expected error for unknown method")
	}
}
