// Package memrepo holds in-memory implementations of the repository
// interfaces. Service tests run against them; they mirror the conditional
// write semantics of the Mongo implementations.
package memrepo

import (
	"fmt"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// applySet round-trips doc through BSON so a $set document can be applied
// with the same field names the Mongo repositories use.
func applySet(doc interface{}, set bson.M) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return fmt.Errorf("memrepo: marshal: %w", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return fmt.Errorf("memrepo: unmarshal: %w", err)
	}
	for k, v := range set {
		setPath(m, strings.Split(k, "."), v)
	}
	raw, err = bson.Marshal(m)
	if err != nil {
		return fmt.Errorf("memrepo: marshal: %w", err)
	}
	return bson.Unmarshal(raw, doc)
}

// setPath assigns v at a dotted path, creating intermediate documents.
func setPath(m bson.M, path []string, v interface{}) {
	if len(path) == 1 {
		m[path[0]] = v
		return
	}
	var child bson.M
	switch existing := m[path[0]].(type) {
	case bson.M:
		child = existing
	case primitive.D:
		child = existing.Map()
	default:
		child = bson.M{}
	}
	setPath(child, path[1:], v)
	m[path[0]] = child
}

// store is a mutex-guarded map shared by every in-memory repository.
type store[T any] struct {
	mu    sync.Mutex
	items map[string]*T
	order []string
}

func newStore[T any]() *store[T] {
	return &store[T]{items: make(map[string]*T)}
}

func (s *store[T]) put(id string, v *T) {
	if _, ok := s.items[id]; !ok {
		s.order = append(s.order, id)
	}
	s.items[id] = v
}

// each visits items in insertion order.
func (s *store[T]) each(fn func(*T)) {
	for _, id := range s.order {
		fn(s.items[id])
	}
}

func copyOf[T any](v *T) *T {
	c := *v
	return &c
}
