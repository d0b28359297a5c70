// Package memstore is an in-memory Store used by tests. It mirrors the
// semantics of the mongo-backed store: dotted field paths, atomic
// increments, equality and range queries, chunk-tolerant delete batches.
package memstore

import (
	"context"
	"encoding/json"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/foodiapp/foodi-triggers/store"
)

type document map[string]interface{}

// Store - in-memory document store
type Store struct {
	mu    sync.RWMutex
	colls map[string]map[string]document

	// Op counters let tests assert that gated handlers issue no
	// queries or writes at all.
	Queries int
	Updates int
	Sets    int
	Deletes int
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{colls: make(map[string]map[string]document)}
}

func (s *Store) coll(path string) map[string]document {
	c, ok := s.colls[path]
	if !ok {
		c = make(map[string]document)
		s.colls[path] = c
	}
	return c
}

// normalize round-trips a value through JSON so stored documents and
// query operands compare consistently regardless of the source type.
func normalize(v interface{}) (interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) Get(ctx context.Context, collection, id string, out interface{}) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.colls[collection][id]
	if !ok {
		return store.ErrNotFound
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (s *Store) Set(ctx context.Context, collection, id string, doc interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sets++
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	stored := document{}
	if err := json.Unmarshal(raw, &stored); err != nil {
		return errors.Wrap(err, "memstore: document must encode to an object")
	}
	s.coll(collection)[id] = stored
	return nil
}

func (s *Store) Update(ctx context.Context, collection, id string, fields store.Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Updates++
	doc, ok := s.colls[collection][id]
	if !ok {
		return store.ErrNotFound
	}
	for path, value := range fields {
		if inc, ok := value.(store.Increment); ok {
			current, _ := getPath(doc, path).(float64)
			setPath(doc, path, current+float64(inc.By))
			continue
		}
		normalized, err := normalize(value)
		if err != nil {
			return err
		}
		setPath(doc, path, normalized)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Deletes++
	delete(s.colls[collection], id)
	return nil
}

func (s *Store) Query(ctx context.Context, collection, field string, op store.Op, value interface{}) (store.Iterator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Queries++

	var ids []string
	for id, doc := range s.colls[collection] {
		match, err := matches(getPath(doc, field), op, value)
		if err != nil {
			return nil, err
		}
		if match {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return &iterator{store: s, collection: collection, ids: ids, pos: -1}, nil
}

func (s *Store) List(ctx context.Context, collection string) (store.Iterator, error) {
	return s.Query(ctx, collection, "", store.OpEqual, anyValue{})
}

// Count returns the number of documents currently in a collection.
func (s *Store) Count(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.colls[collection])
}

func (s *Store) Batch() store.Batch {
	return &batch{store: s}
}

type anyValue struct{}

func matches(stored interface{}, op store.Op, value interface{}) (bool, error) {
	if _, ok := value.(anyValue); ok {
		return true, nil
	}
	switch op {
	case store.OpEqual:
		normalized, err := normalize(value)
		if err != nil {
			return false, err
		}
		return reflect.DeepEqual(stored, normalized), nil
	case store.OpLess:
		return lessThan(stored, value)
	}
	return false, errors.Errorf("memstore: unsupported operator %q", op)
}

func lessThan(stored, value interface{}) (bool, error) {
	switch v := value.(type) {
	case time.Time:
		str, ok := stored.(string)
		if !ok {
			return false, nil
		}
		ts, err := time.Parse(time.RFC3339Nano, str)
		if err != nil {
			return false, nil
		}
		return ts.Before(v), nil
	case int:
		f, ok := stored.(float64)
		return ok && f < float64(v), nil
	case float64:
		f, ok := stored.(float64)
		return ok && f < v, nil
	case string:
		str, ok := stored.(string)
		return ok && str < v, nil
	}
	return false, errors.Errorf("memstore: unsupported operand type %T", value)
}

func getPath(doc document, path string) interface{} {
	if path == "" {
		return nil
	}
	parts := strings.Split(path, ".")
	var current interface{} = map[string]interface{}(doc)
	for _, part := range parts {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil
		}
		current, ok = m[part]
		if !ok {
			return nil
		}
	}
	return current
}

func setPath(doc document, path string, value interface{}) {
	parts := strings.Split(path, ".")
	current := map[string]interface{}(doc)
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]interface{})
		if !ok {
			next = map[string]interface{}{}
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

type iterator struct {
	store      *Store
	collection string
	ids        []string
	pos        int
	err        error
}

func (it *iterator) Next(ctx context.Context) bool {
	for it.pos+1 < len(it.ids) {
		it.pos++
		it.store.mu.RLock()
		_, ok := it.store.colls[it.collection][it.ids[it.pos]]
		it.store.mu.RUnlock()
		if ok {
			return true
		}
	}
	return false
}

func (it *iterator) ID() string {
	return it.ids[it.pos]
}

func (it *iterator) Decode(out interface{}) error {
	return it.store.Get(context.Background(), it.collection, it.ids[it.pos], out)
}

func (it *iterator) Err() error {
	return it.err
}

func (it *iterator) Close(ctx context.Context) error {
	return nil
}

type batch struct {
	store *Store
	ops   [][2]string
}

func (b *batch) Delete(collection, id string) {
	b.ops = append(b.ops, [2]string{collection, id})
}

func (b *batch) Len() int {
	return len(b.ops)
}

func (b *batch) Commit(ctx context.Context) error {
	for _, op := range b.ops {
		if err := b.store.Delete(ctx, op[0], op[1]); err != nil {
			return err
		}
	}
	b.ops = nil
	return nil
}
