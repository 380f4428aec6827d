package store

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// Memory is an in-memory Store used by tests. It mirrors the Mongo
// implementation's semantics for the operations the handlers rely on:
// primary-key lookups, dot-path $set/$unset merges and flat-equality
// filters.
type Memory struct {
	mu   sync.Mutex
	data map[string]map[string]bson.M // collection -> key -> document
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]map[string]bson.M)}
}

func (m *Memory) Get(ctx context.Context, collection, key string) (bson.M, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.data[collection][key]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneDoc(doc)
}

func (m *Memory) SetField(ctx context.Context, collection, key, fieldPath string, value interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.data[collection][key]
	if !ok {
		return ErrNotFound
	}
	normalized, err := normalizeValue(value)
	if err != nil {
		return err
	}
	setPath(doc, fieldPath, normalized)
	return nil
}

func (m *Memory) UnsetField(ctx context.Context, collection, key, fieldPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.data[collection][key]
	if !ok {
		return ErrNotFound
	}
	return unsetPath(doc, fieldPath)
}

func (m *Memory) Insert(ctx context.Context, collection string, doc interface{}) error {
	normalized, err := toDoc(doc)
	if err != nil {
		return err
	}

	key, ok := normalized["_id"].(string)
	if !ok || key == "" {
		key = uuid.New().String()
		normalized["_id"] = key
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data[collection] == nil {
		m.data[collection] = make(map[string]bson.M)
	}
	m.data[collection][key] = normalized
	return nil
}

func (m *Memory) FindOne(ctx context.Context, collection string, filter bson.M, out interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, doc := range m.data[collection] {
		if matches(doc, filter) {
			return decodeDoc(doc, out)
		}
	}
	return ErrNotFound
}

func (m *Memory) Find(ctx context.Context, collection string, filter bson.M, out interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rv := reflect.ValueOf(out).Elem()
	rv.Set(reflect.MakeSlice(rv.Type(), 0, 0))

	for _, doc := range m.data[collection] {
		if !matches(doc, filter) {
			continue
		}
		elem := reflect.New(rv.Type().Elem())
		if err := decodeDoc(doc, elem.Interface()); err != nil {
			return err
		}
		rv.Set(reflect.Append(rv, elem.Elem()))
	}
	return nil
}

func (m *Memory) UpdateOne(ctx context.Context, collection string, filter, update bson.M) (int64, error) {
	// Only $set is implemented; failing loudly on anything else keeps the
	// fake from silently diverging from Mongo.
	for op := range update {
		if op != "$set" {
			return 0, fmt.Errorf("memory store: unsupported update operator %q", op)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, doc := range m.data[collection] {
		if !matches(doc, filter) {
			continue
		}
		if set, ok := asDoc(update["$set"]); ok {
			for path, value := range set {
				normalized, err := normalizeValue(value)
				if err != nil {
					return 0, err
				}
				setPath(doc, path, normalized)
			}
		}
		return 1, nil
	}
	return 0, nil
}

func (m *Memory) DeleteOne(ctx context.Context, collection string, filter bson.M) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, doc := range m.data[collection] {
		if matches(doc, filter) {
			delete(m.data[collection], key)
			return 1, nil
		}
	}
	return 0, nil
}

// toDoc round-trips an arbitrary value through bson so struct tags apply,
// then flattens the result to nested bson.M values.
func toDoc(v interface{}) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	normalized, ok := asDoc(normalize(doc))
	if !ok {
		return nil, ErrNotFound
	}
	return normalized, nil
}

func cloneDoc(doc bson.M) (bson.M, error) {
	return toDoc(doc)
}

func decodeDoc(doc bson.M, out interface{}) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, out)
}

func normalizeValue(v interface{}) (interface{}, error) {
	// Scalars pass through; documents and structs go through bson so the
	// stored shape matches what Mongo would hold.
	switch v.(type) {
	case nil, string, bool, int, int32, int64, float32, float64:
		return v, nil
	}
	wrapped, err := toDoc(bson.M{"v": v})
	if err != nil {
		return nil, err
	}
	return wrapped["v"], nil
}

func normalize(v interface{}) interface{} {
	switch d := v.(type) {
	case bson.D:
		m := make(bson.M, len(d))
		for _, e := range d {
			m[e.Key] = normalize(e.Value)
		}
		return m
	case bson.M:
		for k, val := range d {
			d[k] = normalize(val)
		}
		return d
	case map[string]interface{}:
		return normalize(bson.M(d))
	case bson.A:
		for i := range d {
			d[i] = normalize(d[i])
		}
		return d
	case []interface{}:
		return normalize(bson.A(d))
	}
	return v
}

func setPath(doc bson.M, fieldPath string, value interface{}) {
	parts := strings.Split(fieldPath, ".")
	cur := doc
	for _, part := range parts[:len(parts)-1] {
		next, ok := asDoc(cur[part])
		if !ok {
			next = bson.M{}
		}
		cur[part] = next
		cur = next
	}
	cur[parts[len(parts)-1]] = value
}

func unsetPath(doc bson.M, fieldPath string) error {
	parts := strings.Split(fieldPath, ".")
	cur := doc
	for _, part := range parts[:len(parts)-1] {
		next, ok := asDoc(cur[part])
		if !ok {
			return ErrNotFound
		}
		cur[part] = next
		cur = next
	}
	leaf := parts[len(parts)-1]
	if _, ok := cur[leaf]; !ok {
		return ErrNotFound
	}
	delete(cur, leaf)
	return nil
}

func matches(doc, filter bson.M) bool {
	for path, want := range filter {
		got, ok := lookupPath(doc, path)
		if !ok {
			return false
		}
		normalizedWant, err := normalizeValue(want)
		if err != nil || !reflect.DeepEqual(got, normalizedWant) {
			return false
		}
	}
	return true
}
