package serializer

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/cornichon-db/cornichon/lib/db"
)

// NewCBORSerializer creates a new serializer using CBOR encoding (RFC 8949)
func NewCBORSerializer() ISerializer {
	return &cborSerializerImpl{}
}

// cborSerializerImpl implements the ISerializer interface using cbor encoding
type cborSerializerImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.ISerializer)
// --------------------------------------------------------------------------

func (c cborSerializerImpl) SerializeDB(snap *db.Snapshot) ([]byte, error) {
	return cbor.Marshal(snap)
}

func (c cborSerializerImpl) DeserializeDB(b []byte, snap *db.Snapshot) error {
	return cbor.Unmarshal(b, snap)
}

func (c cborSerializerImpl) SerializeData(v any) ([]byte, error) {
	return cbor.Marshal(v)
}

func (c cborSerializerImpl) DeserializeData(b []byte, out any) error {
	return cbor.Unmarshal(b, out)
}
