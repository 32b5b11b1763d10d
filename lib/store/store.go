package store

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/cornichon-db/cornichon/lib/db"
	"github.com/cornichon-db/cornichon/lib/db/util"
	"github.com/cornichon-db/cornichon/lib/dump"
	"github.com/cornichon-db/cornichon/lib/serializer"
)

// Store is an embedded key-value store bound to a single file. It maps
// string keys to kind-tagged values: opaque encoded scalars and ordered
// lists of individually encoded elements. Values are encoded on write and
// decoded on read with the serialization method fixed at construction time.
//
// A Store is designed for single-owner, single-goroutine use. It performs
// no internal locking; callers needing concurrent access must wrap every
// operation in their own mutual-exclusion discipline. The on-disk file is
// the only resource shared across process boundaries, and no locking
// protocol serializes such access: concurrent dumps from two processes
// race, and the last atomic rename wins.
type Store struct {
	entries map[string]db.Value
	ser     serializer.ISerializer
	method  serializer.Method
	path    string
	policy  db.DumpPolicy
}

// --------------------------------------------------------------------------
// Construction
// --------------------------------------------------------------------------

// New creates an empty store bound to path, with the given dump policy and
// serialization method. The filesystem is not touched until the first dump.
func New(path string, policy db.DumpPolicy, method serializer.Method) (*Store, error) {
	ser, err := serializer.New(method)
	if err != nil {
		return nil, db.WrapError(db.RetCEncoding, "create serializer", err)
	}

	return &Store{
		entries: make(map[string]db.Value),
		ser:     ser,
		method:  method,
		path:    path,
		policy:  policy,
	}, nil
}

// Load reads and decodes an existing store file. A missing file is reported
// as FileNotFound so the caller can decide to create a new store instead;
// any other failure to read or decode is reported as LoadError.
func Load(path string, policy db.DumpPolicy, method serializer.Method) (*Store, error) {
	s, err := New(path, policy, method)
	if err != nil {
		return nil, err
	}

	data, err := dump.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, db.WrapError(db.RetCFileNotFound, fmt.Sprintf("store file %s does not exist", path), err)
		}
		return nil, db.WrapError(db.RetCLoad, fmt.Sprintf("read store file %s", path), err)
	}

	snap := db.NewSnapshot()
	if err := s.ser.DeserializeDB(data, snap); err != nil {
		return nil, db.WrapError(db.RetCLoad, fmt.Sprintf("decode store file %s as %s", path, method), err)
	}
	if err := snap.Validate(); err != nil {
		return nil, db.WrapError(db.RetCLoad, fmt.Sprintf("validate store file %s", path), err)
	}

	if snap.Entries != nil {
		s.entries = snap.Entries
	}
	return s, nil
}

// LoadReadOnly loads an existing store file with a NoDump policy: changes
// are never written back to the file, even when Dump is called explicitly.
func LoadReadOnly(path string, method serializer.Method) (*Store, error) {
	return Load(path, db.NoDump, method)
}

// --------------------------------------------------------------------------
// Accessors
// --------------------------------------------------------------------------

// Path returns the file path the store is bound to.
func (s *Store) Path() string { return s.path }

// Policy returns the dump policy fixed at construction time.
func (s *Store) Policy() db.DumpPolicy { return s.policy }

// Method returns the serialization method fixed at construction time.
func (s *Store) Method() serializer.Method { return s.method }

// --------------------------------------------------------------------------
// Persistence
// --------------------------------------------------------------------------

// Dump persists the current in-memory state to the store's file using the
// atomic replace protocol. Calling Dump is only necessary under the
// DumpUponRequest policy; under AutoDump every mutation already persists.
// Under NoDump this method is a no-op and returns nil.
//
// Destruction of a Store performs no I/O: a store that was mutated under
// DumpUponRequest and never dumped loses those changes by design.
func (s *Store) Dump() error {
	if s.policy == db.NoDump {
		return nil
	}
	return s.dump()
}

// dump encodes the current state and writes it atomically. Encoding failure
// aborts before any filesystem interaction.
func (s *Store) dump() error {
	snap := &db.Snapshot{Version: db.SnapshotVersion, Entries: s.entries}

	data, err := s.ser.SerializeDB(snap)
	if err != nil {
		return db.WrapError(db.RetCEncoding, "encode snapshot", err)
	}

	if err := dump.Write(s.path, data); err != nil {
		metricDumpErrors.Inc()
		return db.WrapError(db.RetCWrite, fmt.Sprintf("dump to %s", s.path), err)
	}

	metricDumps.Inc()
	return nil
}

// autoDump runs a dump when the policy demands one per mutation. A failed
// dump surfaces as WriteError while the in-memory mutation stays committed:
// durability is best-effort, consistency of the in-memory view is not
// sacrificed for a failed disk write.
func (s *Store) autoDump() error {
	if s.policy != db.AutoDump {
		return nil
	}
	return s.dump()
}

// --------------------------------------------------------------------------
// Scalar Operations
// --------------------------------------------------------------------------

// Set stores value under key as an encoded scalar, overwriting any prior
// entry of either kind. It fails with EncodingError if the value cannot be
// encoded (the store is unchanged then), or with WriteError if the policy-
// triggered dump fails (the in-memory mutation is committed regardless).
func (s *Store) Set(key string, value any) error {
	data, err := s.ser.SerializeData(value)
	if err != nil {
		return db.WrapError(db.RetCEncoding, fmt.Sprintf("encode value for key %q", key), err)
	}

	s.entries[key] = db.NewScalar(data)
	metricSets.Inc()

	return s.autoDump()
}

// Get decodes the scalar stored under key into the caller-specified type V.
// It fails with KeyNotFound if the key is absent, and with TypeMismatch if
// the entry is a list or the payload does not decode into V.
func Get[V any](s *Store, key string) (V, error) {
	var out V

	entry, ok := s.entries[key]
	if !ok {
		return out, db.NewError(db.RetCKeyNotFound, fmt.Sprintf("key %q does not exist", key))
	}
	if entry.Kind != db.KindScalar {
		return out, db.NewError(db.RetCTypeMismatch, fmt.Sprintf("key %q holds a %s, not a scalar", key, entry.Kind))
	}

	if err := s.ser.DeserializeData(entry.Data, &out); err != nil {
		return out, db.WrapError(db.RetCTypeMismatch, fmt.Sprintf("decode value for key %q", key), err)
	}

	metricGets.Inc()
	return out, nil
}

// Remove deletes the entry under key regardless of kind. The boolean return
// reports whether a key was actually present. No tombstone is retained: a
// removed key is indistinguishable from one never created.
func (s *Store) Remove(key string) (bool, error) {
	if _, ok := s.entries[key]; !ok {
		return false, nil
	}

	delete(s.entries, key)
	metricRemoves.Inc()

	return true, s.autoDump()
}

// Exists reports whether key is present, scalar or list. No decoding is
// performed.
func (s *Store) Exists(key string) bool {
	_, ok := s.entries[key]
	return ok
}

// Keys returns all keys in the store. The order is unspecified.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.entries))
	for key := range s.entries {
		keys = append(keys, key)
	}
	return keys
}

// TotalKeys returns the number of keys in the store.
func (s *Store) TotalKeys() int {
	return len(s.entries)
}

// --------------------------------------------------------------------------
// Metadata
// --------------------------------------------------------------------------

// entryOverhead is the assumed per-entry bookkeeping cost used for size
// estimates: key header, kind tag and slice headers.
const entryOverhead = 48

// GetInfo returns metadata about the store. Size values are estimates based
// on encoded payload sizes, not a precise measurement.
func (s *Store) GetInfo() db.StoreInfo {
	hist := util.NewSizeHistogram()

	scalarKeys := 0
	listKeys := 0
	for key, entry := range s.entries {
		size := len(key) + len(entry.Data)
		for _, elem := range entry.List {
			size += len(elem)
		}
		hist.AddSample(size)

		switch entry.Kind {
		case db.KindScalar:
			scalarKeys++
		case db.KindList:
			listKeys++
		}
	}

	avgSize := hist.AverageSize() + entryOverhead
	medianSize := hist.MedianEstimate() + entryOverhead
	if len(s.entries) == 0 {
		avgSize = 0
		medianSize = 0
	}

	return db.StoreInfo{
		Path:                s.path,
		SerializationMethod: s.method.String(),
		Policy:              s.policy,
		TotalKeys:           len(s.entries),
		ScalarKeys:          scalarKeys,
		ListKeys:            listKeys,
		SizeBytes:           int(hist.TotalSize()) + entryOverhead*len(s.entries),
		AvgEntrySize:        avgSize,
		MedianEntrySize:     medianSize,
		// weighted estimate (60% median, 40% average)
		TypicalEntrySize: (medianSize*60 + avgSize*40) / 100,
	}
}
