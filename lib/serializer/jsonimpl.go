package serializer

import (
	"encoding/json"

	"github.com/cornichon-db/cornichon/lib/db"
)

// NewJSONSerializer creates a new serializer using json encoding
func NewJSONSerializer() ISerializer {
	return &jsonSerializerImpl{}
}

// jsonSerializerImpl implements the ISerializer interface using json encoding
type jsonSerializerImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.ISerializer)
// --------------------------------------------------------------------------

func (j jsonSerializerImpl) SerializeDB(snap *db.Snapshot) ([]byte, error) {
	return json.Marshal(snap)
}

func (j jsonSerializerImpl) DeserializeDB(b []byte, snap *db.Snapshot) error {
	return json.Unmarshal(b, snap)
}

func (j jsonSerializerImpl) SerializeData(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (j jsonSerializerImpl) DeserializeData(b []byte, out any) error {
	return json.Unmarshal(b, out)
}
