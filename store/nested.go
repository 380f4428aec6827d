package store

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// Nested manages a dynamically-keyed mapping embedded in a parent document:
// append, list and delete-by-id over entries living at a dot path such as
// "prescriptions" or "healthStatus". One manager replaces the per-record
// handler bodies that would otherwise duplicate this logic per collection.
type Nested struct {
	store      Store
	collection string
}

func NewNested(s Store, collection string) *Nested {
	return &Nested{store: s, collection: collection}
}

// Append stores the entry under a freshly generated id and returns that id.
// The id is also stamped into entry under "id" before the write, so the
// caller's value and the stored one share the shape later returned by List.
// The write is a single atomic field-path merge: sibling entries and
// sibling fields are never touched, and concurrent appends against the
// same parent cannot collide since every call gets a fresh key. Returns
// ErrNotFound if the parent document does not exist.
func (n *Nested) Append(ctx context.Context, parentKey, path string, entry bson.M) (string, error) {
	entryID := uuid.New().String()
	entry["id"] = entryID

	if err := n.store.SetField(ctx, n.collection, parentKey, path+"."+entryID, entry); err != nil {
		return "", err
	}
	return entryID, nil
}

// List returns the entry values of the mapping at path. A parent without
// the field at all yields ErrEmptyCollection (the caller's 404), while an
// existing mapping with zero entries yields an empty slice and no error.
// Ordering is the store's native enumeration order, insertion order at
// best; callers needing chronology sort on the entries' own timestamps.
func (n *Nested) List(ctx context.Context, parentKey, path string) ([]bson.M, error) {
	doc, err := n.store.Get(ctx, n.collection, parentKey)
	if err != nil {
		return nil, err
	}

	field, ok := lookupPath(doc, path)
	if !ok {
		return nil, ErrEmptyCollection
	}

	entries := []bson.M{}
	switch mapping := field.(type) {
	case bson.D:
		// Document order from the driver, preserved.
		for _, e := range mapping {
			if entry, ok := asDoc(e.Value); ok {
				entries = append(entries, entry)
			}
		}
	default:
		m, ok := asDoc(mapping)
		if !ok {
			return nil, ErrEmptyCollection
		}
		for _, v := range m {
			if entry, ok := asDoc(v); ok {
				entries = append(entries, entry)
			}
		}
	}
	return entries, nil
}

// Delete removes exactly the entry with the given id, leaving sibling
// entries and sibling fields untouched. Returns ErrNotFound if the parent
// or the entry is absent.
func (n *Nested) Delete(ctx context.Context, parentKey, path, entryID string) error {
	return n.store.UnsetField(ctx, n.collection, parentKey, path+"."+entryID)
}
