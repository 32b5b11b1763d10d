package serializer

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/cornichon-db/cornichon/lib/db"
)

// NewBinSerializer creates a new serializer using the MessagePack binary
// format. This is the most compact of the supported formats and the
// recommended choice when the file is not meant to be read by humans.
func NewBinSerializer() ISerializer {
	return &binSerializerImpl{}
}

// binSerializerImpl implements the ISerializer interface using msgpack encoding
type binSerializerImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.ISerializer)
// --------------------------------------------------------------------------

func (m binSerializerImpl) SerializeDB(snap *db.Snapshot) ([]byte, error) {
	return msgpack.Marshal(snap)
}

func (m binSerializerImpl) DeserializeDB(b []byte, snap *db.Snapshot) error {
	return msgpack.Unmarshal(b, snap)
}

func (m binSerializerImpl) SerializeData(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

func (m binSerializerImpl) DeserializeData(b []byte, out any) error {
	return msgpack.Unmarshal(b, out)
}
