package db

import "fmt"

// --------------------------------------------------------------------------
// Value Kinds
// --------------------------------------------------------------------------

// Kind tags the two shapes a stored value can take.
type Kind uint8

const (
	// KindScalar marks an entry holding a single encoded payload.
	KindScalar Kind = iota
	// KindList marks an entry holding an ordered sequence of individually
	// encoded elements.
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// --------------------------------------------------------------------------
// Value Container
// --------------------------------------------------------------------------

// Value is the tagged union stored under every key. A scalar entry carries
// its adapter-native encoding in Data and a nil List; a list entry carries
// its elements in List (insertion order, each element encoded on its own so
// one list may mix element types) and a nil Data.
//
// The container is payload-opaque: decoding requires the caller to name the
// expected type, and a mismatch is reported as a recoverable error.
type Value struct {
	Kind Kind     `json:"kind" yaml:"kind" cbor:"kind" msgpack:"kind"`
	Data []byte   `json:"data,omitempty" yaml:"data,omitempty" cbor:"data,omitempty" msgpack:"data,omitempty"`
	List [][]byte `json:"list" yaml:"list" cbor:"list" msgpack:"list"`
}

// NewScalar builds a scalar container around an already encoded payload.
func NewScalar(data []byte) Value {
	return Value{Kind: KindScalar, Data: data}
}

// NewList builds an empty list container.
func NewList() Value {
	return Value{Kind: KindList, List: [][]byte{}}
}

// --------------------------------------------------------------------------
// Snapshot (persisted file layout)
// --------------------------------------------------------------------------

// SnapshotVersion is the current on-disk layout version. The field exists so
// a future layout change can be detected at load time instead of producing
// garbage entries.
const SnapshotVersion = 1

// Snapshot is the full in-memory mapping as handed to a serializer for one
// dump, and as reconstructed from file bytes during load. It is a borrowed
// read-only view: the dump engine never retains it past a single call.
type Snapshot struct {
	Version int              `json:"version" yaml:"version" cbor:"version" msgpack:"version"`
	Entries map[string]Value `json:"entries" yaml:"entries" cbor:"entries" msgpack:"entries"`
}

// NewSnapshot creates an empty snapshot at the current layout version.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Version: SnapshotVersion,
		Entries: make(map[string]Value),
	}
}

// Validate checks the loaded snapshot for layout compatibility. Versions
// below 1 never occur in a dumped file; rejecting them catches decoders
// that accept arbitrary input as a zero-valued snapshot, such as YAML on
// an empty file.
func (s *Snapshot) Validate() error {
	if s.Version < 1 {
		return fmt.Errorf("invalid snapshot version: %d", s.Version)
	}
	if s.Version > SnapshotVersion {
		return fmt.Errorf("unsupported snapshot version: %d (max supported %d)", s.Version, SnapshotVersion)
	}
	return nil
}
