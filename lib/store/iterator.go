package store

import (
	"fmt"
	"iter"

	"github.com/cornichon-db/cornichon/lib/db"
	"github.com/cornichon-db/cornichon/lib/serializer"
)

// --------------------------------------------------------------------------
// Iteration Layer
// --------------------------------------------------------------------------

// Iter returns a lazy, read-only sequence over the (key, kind) pairs of the
// store. Iteration order is unspecified. The sequence is finite and
// restartable: ranging over it again starts a fresh traversal.
//
// Mutating the store while a traversal is in progress is undefined
// behavior, in line with the store's single-owner design.
func (s *Store) Iter() iter.Seq2[string, db.Kind] {
	return func(yield func(string, db.Kind) bool) {
		for key, entry := range s.entries {
			if !yield(key, entry.Kind) {
				return
			}
		}
	}
}

// Item is one element of a list traversal. It carries the element's
// encoding and decodes on demand, so skipped elements cost nothing.
type Item struct {
	data []byte
	ser  serializer.ISerializer
}

// Bytes returns a copy of the element's encoded payload.
func (it Item) Bytes() []byte {
	data := make([]byte, len(it.data))
	copy(data, it.data)
	return data
}

// Decode decodes the element into the caller-specified type behind out.
// A shape-incompatible target fails with TypeMismatch.
func (it Item) Decode(out any) error {
	if err := it.ser.DeserializeData(it.data, out); err != nil {
		return db.WrapError(db.RetCTypeMismatch, "decode list element", err)
	}
	return nil
}

// ListIter returns a lazy, read-only sequence over the elements of the list
// under key, in insertion order. It fails with KeyNotFound if key does not
// hold a list. The sequence reflects the list's structure at the moment of
// this call; mutating the list while a traversal is in progress is
// undefined behavior. The sequence is finite and restartable.
func (s *Store) ListIter(key string) (iter.Seq[Item], error) {
	entry, ok := s.entries[key]
	if !ok || entry.Kind != db.KindList {
		return nil, db.NewError(db.RetCKeyNotFound, fmt.Sprintf("no list at key %q", key))
	}

	elems := entry.List
	return func(yield func(Item) bool) {
		for _, elem := range elems {
			if !yield(Item{data: elem, ser: s.ser}) {
				return
			}
		}
	}, nil
}
