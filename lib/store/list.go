package store

import (
	"bytes"
	"fmt"

	"github.com/cornichon-db/cornichon/lib/db"
)

// --------------------------------------------------------------------------
// List Extender
// --------------------------------------------------------------------------

// ListExtender is a handle bound to one list, returned by ListCreate. It
// allows chained mutations of the list without repeating its key.
type ListExtender struct {
	s   *Store
	key string
}

// Key returns the key of the list this extender is bound to.
func (e *ListExtender) Key() string { return e.key }

// Add appends a single encoded element to the list.
func (e *ListExtender) Add(value any) error {
	return e.s.ListAdd(e.key, value)
}

// Extend appends multiple encoded elements to the list in one operation.
func (e *ListExtender) Extend(values ...any) error {
	return e.s.ListExtend(e.key, values...)
}

// Len returns the current length of the list.
func (e *ListExtender) Len() int {
	return e.s.ListLen(e.key)
}

// --------------------------------------------------------------------------
// List Operations
// --------------------------------------------------------------------------

// ListCreate creates an empty list under key, overwriting any existing
// entry of either kind, and returns a handle for chained mutations. The
// handle stays valid even when a WriteError is returned, since the
// in-memory mutation is committed regardless of dump failures.
func (s *Store) ListCreate(key string) (*ListExtender, error) {
	s.entries[key] = db.NewList()
	metricListOps.Inc()

	return &ListExtender{s: s, key: key}, s.autoDump()
}

// ListExists reports whether key holds a list. Unlike Exists it returns
// false for scalar entries.
func (s *Store) ListExists(key string) bool {
	entry, ok := s.entries[key]
	return ok && entry.Kind == db.KindList
}

// ListAdd appends one encoded element to the list under key. It fails with
// KeyNotFound if key does not hold a list.
func (s *Store) ListAdd(key string, value any) error {
	return s.ListExtend(key, value)
}

// ListExtend appends multiple encoded elements to the list under key. Every
// element is encoded individually, so one list may hold mixed types. All
// elements are encoded before the list is touched: an encoding failure
// mutates nothing. Under AutoDump the whole extension triggers exactly one
// dump, not one per element.
func (s *Store) ListExtend(key string, values ...any) error {
	entry, ok := s.entries[key]
	if !ok || entry.Kind != db.KindList {
		return db.NewError(db.RetCKeyNotFound, fmt.Sprintf("no list at key %q", key))
	}

	encoded := make([][]byte, 0, len(values))
	for i, value := range values {
		data, err := s.ser.SerializeData(value)
		if err != nil {
			return db.WrapError(db.RetCEncoding, fmt.Sprintf("encode element %d for list %q", i, key), err)
		}
		encoded = append(encoded, data)
	}

	entry.List = append(entry.List, encoded...)
	s.entries[key] = entry
	metricListOps.Inc()

	return s.autoDump()
}

// ListGet decodes the element at index in the list under key into the
// caller-specified type V. It fails with KeyNotFound if key does not hold a
// list, IndexOutOfRange if index >= length, and TypeMismatch if the element
// does not decode into V.
func ListGet[V any](s *Store, key string, index int) (V, error) {
	var out V

	entry, ok := s.entries[key]
	if !ok || entry.Kind != db.KindList {
		return out, db.NewError(db.RetCKeyNotFound, fmt.Sprintf("no list at key %q", key))
	}
	if index < 0 || index >= len(entry.List) {
		return out, db.NewError(db.RetCIndexOutOfRange, fmt.Sprintf("index %d out of range for list %q (len %d)", index, key, len(entry.List)))
	}

	if err := s.ser.DeserializeData(entry.List[index], &out); err != nil {
		return out, db.WrapError(db.RetCTypeMismatch, fmt.Sprintf("decode element %d of list %q", index, key), err)
	}

	metricGets.Inc()
	return out, nil
}

// ListPop removes the element at index and returns it decoded into V.
// Subsequent elements shift down, indices stay contiguous. On WriteError
// the element is removed in memory and still returned alongside the error.
func ListPop[V any](s *Store, key string, index int) (V, error) {
	out, err := ListGet[V](s, key, index)
	if err != nil {
		return out, err
	}

	entry := s.entries[key]
	entry.List = append(entry.List[:index], entry.List[index+1:]...)
	s.entries[key] = entry
	metricListOps.Inc()

	return out, s.autoDump()
}

// ListRemoveValue removes the first element of the list under key whose
// encoding equals the encoding of value. The boolean return reports whether
// an element was removed; a value that is not present is not an error. The
// call fails with KeyNotFound if key does not hold a list.
func (s *Store) ListRemoveValue(key string, value any) (bool, error) {
	entry, ok := s.entries[key]
	if !ok || entry.Kind != db.KindList {
		return false, db.NewError(db.RetCKeyNotFound, fmt.Sprintf("no list at key %q", key))
	}

	encoded, err := s.ser.SerializeData(value)
	if err != nil {
		return false, db.WrapError(db.RetCEncoding, fmt.Sprintf("encode value for list %q", key), err)
	}

	for i, elem := range entry.List {
		if bytes.Equal(elem, encoded) {
			entry.List = append(entry.List[:i], entry.List[i+1:]...)
			s.entries[key] = entry
			metricListOps.Inc()
			return true, s.autoDump()
		}
	}

	return false, nil
}

// ListRemoveIndex removes the element at index from the list under key.
// Subsequent elements shift down, indices stay contiguous. It fails with
// KeyNotFound if key does not hold a list and IndexOutOfRange if index >=
// length.
func (s *Store) ListRemoveIndex(key string, index int) error {
	entry, ok := s.entries[key]
	if !ok || entry.Kind != db.KindList {
		return db.NewError(db.RetCKeyNotFound, fmt.Sprintf("no list at key %q", key))
	}
	if index < 0 || index >= len(entry.List) {
		return db.NewError(db.RetCIndexOutOfRange, fmt.Sprintf("index %d out of range for list %q (len %d)", index, key, len(entry.List)))
	}

	entry.List = append(entry.List[:index], entry.List[index+1:]...)
	s.entries[key] = entry
	metricListOps.Inc()

	return s.autoDump()
}

// ListLen returns the length of the list under key, or 0 if key does not
// hold a list.
func (s *Store) ListLen(key string) int {
	entry, ok := s.entries[key]
	if !ok || entry.Kind != db.KindList {
		return 0
	}
	return len(entry.List)
}

// ListDelete removes the entire list under key and returns the number of
// elements it held. Deleting a key that does not hold a list returns 0 and
// is not an error.
func (s *Store) ListDelete(key string) (int, error) {
	entry, ok := s.entries[key]
	if !ok || entry.Kind != db.KindList {
		return 0, nil
	}

	n := len(entry.List)
	delete(s.entries, key)
	metricListOps.Inc()

	return n, s.autoDump()
}
