package gateway

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryCollection is an in-process document collection used by tests and
// the memory backend. Documents go through the BSON codec exactly like they
// would on the wire, get an ObjectID _id when none is set, and duplicate _id
// values are rejected. Required fields behave like a collection validator:
// an absent, null or empty-string field rejects the insert.
type MemoryCollection[T any] struct {
	mu       sync.RWMutex
	docs     []bson.Raw
	ids      map[string]struct{}
	required []string
}

func NewMemoryCollection[T any](required ...string) *MemoryCollection[T] {
	return &MemoryCollection[T]{ids: make(map[string]struct{}), required: required}
}

func (m *MemoryCollection[T]) Insert(_ context.Context, doc T) (T, error) {
	var stored T
	d, err := toDocument(doc)
	if err != nil {
		return stored, err
	}
	if err := checkRequired(d, m.required); err != nil {
		return stored, err
	}

	id, ok := lookup(d, "_id")
	if !ok {
		id = primitive.NewObjectID()
		d = append(bson.D{{Key: "_id", Value: id}}, d...)
	}
	raw, err := bson.Marshal(d)
	if err != nil {
		return stored, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	key := fmt.Sprint(id)
	m.mu.Lock()
	if _, dup := m.ids[key]; dup {
		m.mu.Unlock()
		return stored, fmt.Errorf("%w: duplicate _id %v", ErrConflict, id)
	}
	m.ids[key] = struct{}{}
	m.docs = append(m.docs, raw)
	m.mu.Unlock()

	if err := bson.Unmarshal(raw, &stored); err != nil {
		return stored, err
	}
	return stored, nil
}

func (m *MemoryCollection[T]) FindAll(_ context.Context) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]T, 0, len(m.docs))
	for _, raw := range m.docs {
		var d T
		if err := bson.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// toDocument encodes doc the way the driver would put it on the wire.
func toDocument(doc interface{}) (bson.D, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	var d bson.D
	if err := bson.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return d, nil
}

// checkRequired fails when a field is absent, null or an empty string.
func checkRequired(d bson.D, required []string) error {
	for _, f := range required {
		v, ok := lookup(d, f)
		if !ok || v == nil || v == "" {
			return fmt.Errorf("%w: missing required field %q", ErrValidation, f)
		}
	}
	return nil
}

func lookup(d bson.D, key string) (interface{}, bool) {
	for _, e := range d {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}
