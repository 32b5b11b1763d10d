package serializer

import (
	"fmt"

	"github.com/cornichon-db/cornichon/lib/db"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// ISerializer is the interface for all store serializers. One implementation
// exists per supported on-disk format; the format is selected at store
// creation or load time and is never mixed within one file.
type ISerializer interface {
	// SerializeDB serializes a full store snapshot into a byte array
	// It returns the serialized byte array and an error if any
	SerializeDB(snap *db.Snapshot) ([]byte, error)
	// DeserializeDB deserializes a byte array into a snapshot
	// It takes a byte array and a pointer to a Snapshot as parameters
	// It returns an error if any
	DeserializeDB(b []byte, snap *db.Snapshot) error
	// SerializeData serializes a single caller-supplied value into its
	// adapter-native encoding, as stored inside a Value container
	SerializeData(v any) ([]byte, error)
	// DeserializeData deserializes a single encoded payload into the
	// caller-specified type behind the out pointer
	DeserializeData(b []byte, out any) error
}

// --------------------------------------------------------------------------
// Serialization Methods
// --------------------------------------------------------------------------

// Method identifies a supported serialization format.
type Method int

const (
	// MethodJSON uses the standard library JSON encoding (human-readable).
	MethodJSON Method = iota
	// MethodBin uses MessagePack, a compact binary encoding.
	MethodBin
	// MethodYAML uses YAML encoding (human-readable).
	MethodYAML
	// MethodCBOR uses CBOR, a compact binary encoding (RFC 8949).
	MethodCBOR
)

func (m Method) String() string {
	switch m {
	case MethodJSON:
		return "json"
	case MethodBin:
		return "bin"
	case MethodYAML:
		return "yaml"
	case MethodCBOR:
		return "cbor"
	default:
		return "unknown"
	}
}

// ParseMethod converts a configuration string into a Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "json":
		return MethodJSON, nil
	case "bin":
		return MethodBin, nil
	case "yaml":
		return MethodYAML, nil
	case "cbor":
		return MethodCBOR, nil
	default:
		return 0, fmt.Errorf("invalid serialization method %q (must be one of json, bin, yaml, cbor)", s)
	}
}

// New creates the serializer implementation for the given method.
func New(method Method) (ISerializer, error) {
	switch method {
	case MethodJSON:
		return NewJSONSerializer(), nil
	case MethodBin:
		return NewBinSerializer(), nil
	case MethodYAML:
		return NewYAMLSerializer(), nil
	case MethodCBOR:
		return NewCBORSerializer(), nil
	default:
		return nil, fmt.Errorf("invalid serialization method %d", method)
	}
}
