package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

var ErrNotFound = errors.New("registro não encontrado")

// Filter and Fields use the MongoDB query and $set vocabulary. The in-memory
// repository understands equality plus $in, $nin, $ne, $gte, $gt, $lt, $lte,
// $exists and $regex.
type (
	Filter = bson.M
	Fields = bson.M
)

// Repository is the per-entity data access layer. Every successful write is
// published on the change feed the repository was built with.
type Repository[T any] interface {
	Entity() string
	List(ctx context.Context, filter Filter) ([]T, error)
	Get(ctx context.Context, id bson.ObjectID) (T, error)
	Create(ctx context.Context, doc *T) error
	Update(ctx context.Context, id bson.ObjectID, fields Fields) (T, error)
	Delete(ctx context.Context, id bson.ObjectID) error
}

// toDocument converts doc into a bson.M ready to be inserted, assigning an id
// and timestamps when missing.
func toDocument[T any](doc *T, now time.Time) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}

	m := bson.M{}
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}

	if id, ok := m["_id"].(bson.ObjectID); !ok || id.IsZero() {
		m["_id"] = bson.NewObjectID()
	}
	if created, ok := m["created_at"].(bson.DateTime); !ok || created.Time().IsZero() || created.Time().Before(time.Unix(0, 0)) {
		m["created_at"] = now
	}
	m["updated_at"] = now

	return m, nil
}

func fromDocument[T any](m bson.M, doc *T) error {
	raw, err := bson.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	var fresh T
	if err := bson.Unmarshal(raw, &fresh); err != nil {
		return fmt.Errorf("unmarshal document: %w", err)
	}
	*doc = fresh
	return nil
}

func fieldNames(fields Fields) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	return names
}
