package database

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// MemoryRepository keeps documents in process memory. It backs the test
// suites and shares the bson encoding of the Mongo repository, so field
// names in filters and updates mean the same thing in both.
type MemoryRepository[T any] struct {
	entity string
	feed   *ChangeFeed

	mu    sync.RWMutex
	order []bson.ObjectID
	docs  map[bson.ObjectID]bson.M

	Now func() time.Time
}

func NewMemoryRepository[T any](entity string, feed *ChangeFeed) *MemoryRepository[T] {
	return &MemoryRepository[T]{
		entity: entity,
		feed:   feed,
		docs:   map[bson.ObjectID]bson.M{},
		Now:    time.Now,
	}
}

func (r *MemoryRepository[T]) Entity() string {
	return r.entity
}

// List returns matches in insertion order.
func (r *MemoryRepository[T]) List(_ context.Context, filter Filter) ([]T, error) {
	normalized, err := normalize(filter)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	docs := []T{}
	for _, id := range r.order {
		m := r.docs[id]
		if !matches(m, normalized) {
			continue
		}
		var doc T
		if err := fromDocument(m, &doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (r *MemoryRepository[T]) Get(_ context.Context, id bson.ObjectID) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var doc T
	m, ok := r.docs[id]
	if !ok {
		return doc, ErrNotFound
	}
	err := fromDocument(m, &doc)
	return doc, err
}

func (r *MemoryRepository[T]) Create(ctx context.Context, doc *T) error {
	m, err := toDocument(doc, r.Now())
	if err != nil {
		return err
	}
	id := m["_id"].(bson.ObjectID)

	r.mu.Lock()
	if _, exists := r.docs[id]; exists {
		r.mu.Unlock()
		return fmt.Errorf("insert %s: duplicate id %s", r.entity, id.Hex())
	}
	r.docs[id] = m
	r.order = append(r.order, id)
	r.mu.Unlock()

	if err := fromDocument(m, doc); err != nil {
		return err
	}

	r.feed.Publish(ctx, Change{Entity: r.entity, Kind: CHANGE_CREATED, ID: id})
	return nil
}

func (r *MemoryRepository[T]) Update(ctx context.Context, id bson.ObjectID, fields Fields) (T, error) {
	var doc T

	set, err := normalize(fields)
	if err != nil {
		return doc, err
	}

	r.mu.Lock()
	m, ok := r.docs[id]
	if !ok {
		r.mu.Unlock()
		return doc, ErrNotFound
	}
	updated := bson.M{}
	for key, value := range m {
		updated[key] = value
	}
	for key, value := range set {
		updated[key] = value
	}
	updated["updated_at"] = bson.NewDateTimeFromTime(r.Now())
	r.docs[id] = updated
	r.mu.Unlock()

	if err := fromDocument(updated, &doc); err != nil {
		return doc, err
	}

	r.feed.Publish(ctx, Change{Entity: r.entity, Kind: CHANGE_UPDATED, ID: id, Fields: fieldNames(fields)})
	return doc, nil
}

func (r *MemoryRepository[T]) Delete(ctx context.Context, id bson.ObjectID) error {
	r.mu.Lock()
	if _, ok := r.docs[id]; !ok {
		r.mu.Unlock()
		return ErrNotFound
	}
	delete(r.docs, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.mu.Unlock()

	r.feed.Publish(ctx, Change{Entity: r.entity, Kind: CHANGE_DELETED, ID: id})
	return nil
}

// normalize round-trips m through bson so typed values (named string types,
// time.Time, pointers) compare equal to what is stored.
func normalize(m bson.M) (bson.M, error) {
	if len(m) == 0 {
		return bson.M{}, nil
	}
	raw, err := bson.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal filter: %w", err)
	}
	out := bson.M{}
	if err := bson.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("unmarshal filter: %w", err)
	}
	return out, nil
}

func matches(doc bson.M, filter bson.M) bool {
	for key, expected := range filter {
		actual, present := doc[key]
		if ops, ok := asOperators(expected); ok {
			if !matchOperators(actual, present, ops) {
				return false
			}
			continue
		}
		if !present || !equalValues(actual, expected) {
			return false
		}
	}
	return true
}

func asOperators(v any) (bson.M, bool) {
	var ops bson.M
	switch typed := v.(type) {
	case bson.M:
		ops = typed
	case bson.D:
		ops = bson.M{}
		for _, e := range typed {
			ops[e.Key] = e.Value
		}
	default:
		return nil, false
	}
	for key := range ops {
		if len(key) == 0 || key[0] != '$' {
			return nil, false
		}
	}
	return ops, len(ops) > 0
}

func matchOperators(actual any, present bool, ops bson.M) bool {
	for op, operand := range ops {
		switch op {
		case "$exists":
			want, _ := operand.(bool)
			if want != (present && actual != nil) {
				return false
			}
		case "$ne":
			if present && equalValues(actual, operand) {
				return false
			}
		case "$in":
			if !present || !containsValue(operand, actual) {
				return false
			}
		case "$nin":
			if present && containsValue(operand, actual) {
				return false
			}
		case "$options":
		case "$regex":
			pattern, _ := operand.(string)
			if options, _ := ops["$options"].(string); strings.Contains(options, "i") {
				pattern = "(?i)" + pattern
			}
			text, isText := actual.(string)
			re, err := regexp.Compile(pattern)
			if !present || !isText || err != nil || !re.MatchString(text) {
				return false
			}
		case "$gt", "$gte", "$lt", "$lte":
			if !present {
				return false
			}
			cmp, ok := compareValues(actual, operand)
			if !ok {
				return false
			}
			switch op {
			case "$gt":
				if cmp <= 0 {
					return false
				}
			case "$gte":
				if cmp < 0 {
					return false
				}
			case "$lt":
				if cmp >= 0 {
					return false
				}
			case "$lte":
				if cmp > 0 {
					return false
				}
			}
		default:
			return false
		}
	}
	return true
}

func containsValue(list any, v any) bool {
	items, ok := list.(bson.A)
	if !ok {
		return false
	}
	for _, item := range items {
		if equalValues(item, v) {
			return true
		}
	}
	return false
}

func equalValues(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa == fb
		}
	}
	if ta, ok := toTime(a); ok {
		if tb, ok := toTime(b); ok {
			return ta.Equal(tb)
		}
	}
	return reflect.DeepEqual(a, b)
}

func compareValues(a, b any) (int, bool) {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			switch {
			case fa < fb:
				return -1, true
			case fa > fb:
				return 1, true
			}
			return 0, true
		}
	}
	if ta, ok := toTime(a); ok {
		if tb, ok := toTime(b); ok {
			return ta.Compare(tb), true
		}
	}
	sa, okA := a.(string)
	sb, okB := b.(string)
	if okA && okB {
		switch {
		case sa < sb:
			return -1, true
		case sa > sb:
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case bson.DateTime:
		return t.Time(), true
	case time.Time:
		return t, true
	}
	return time.Time{}, false
}
