package serializer

import (
	"gopkg.in/yaml.v3"

	"github.com/cornichon-db/cornichon/lib/db"
)

// NewYAMLSerializer creates a new serializer using yaml encoding
func NewYAMLSerializer() ISerializer {
	return &yamlSerializerImpl{}
}

// yamlSerializerImpl implements the ISerializer interface using yaml encoding
type yamlSerializerImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.ISerializer)
// --------------------------------------------------------------------------

func (y yamlSerializerImpl) SerializeDB(snap *db.Snapshot) ([]byte, error) {
	return yaml.Marshal(snap)
}

func (y yamlSerializerImpl) DeserializeDB(b []byte, snap *db.Snapshot) error {
	return yaml.Unmarshal(b, snap)
}

func (y yamlSerializerImpl) SerializeData(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

func (y yamlSerializerImpl) DeserializeData(b []byte, out any) error {
	return yaml.Unmarshal(b, out)
}
