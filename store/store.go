package store

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

var (
	// ErrNotFound signals that a document, or a dot-path within one, does
	// not exist.
	ErrNotFound = errors.New("document not found")

	// ErrEmptyCollection signals that a nested collection field is wholly
	// absent from its parent document. Distinct from an existing mapping
	// with zero entries, which is not an error.
	ErrEmptyCollection = errors.New("collection field absent")
)

// Store is the record store adapter: uniform document operations against
// named collections, addressed by primary key, with dot-delimited field
// paths for writes into nested structures. SetField and UnsetField are
// structural merges; sibling fields of the addressed path are never
// disturbed.
type Store interface {
	Get(ctx context.Context, collection, key string) (bson.M, error)
	SetField(ctx context.Context, collection, key, fieldPath string, value interface{}) error
	UnsetField(ctx context.Context, collection, key, fieldPath string) error
	Insert(ctx context.Context, collection string, doc interface{}) error
	FindOne(ctx context.Context, collection string, filter bson.M, out interface{}) error
	Find(ctx context.Context, collection string, filter bson.M, out interface{}) error
	UpdateOne(ctx context.Context, collection string, filter, update bson.M) (int64, error)
	DeleteOne(ctx context.Context, collection string, filter bson.M) (int64, error)
}

// asDoc coerces the document representations the driver may hand back
// (bson.M from maps, bson.D from interface decoding) into a bson.M.
func asDoc(v interface{}) (bson.M, bool) {
	switch d := v.(type) {
	case bson.M:
		return d, true
	case bson.D:
		m := make(bson.M, len(d))
		for _, e := range d {
			m[e.Key] = e.Value
		}
		return m, true
	case map[string]interface{}:
		return bson.M(d), true
	}
	return nil, false
}

// lookupPath walks a dot-delimited path through nested documents.
func lookupPath(doc bson.M, fieldPath string) (interface{}, bool) {
	var cur interface{} = doc
	for _, part := range strings.Split(fieldPath, ".") {
		m, ok := asDoc(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}
