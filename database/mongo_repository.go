package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type MongoRepository[T any] struct {
	collection *mongo.Collection
	feed       *ChangeFeed
	now        func() time.Time
}

func NewMongoRepository[T any](client *mongo.Client, collection string, feed *ChangeFeed) *MongoRepository[T] {
	return &MongoRepository[T]{
		collection: client.Database(GetDB()).Collection(collection),
		feed:       feed,
		now:        time.Now,
	}
}

func (r *MongoRepository[T]) Entity() string {
	return r.collection.Name()
}

func (r *MongoRepository[T]) List(ctx context.Context, filter Filter) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, MONGO_TIMEOUT)
	defer cancel()

	if filter == nil {
		filter = Filter{}
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", r.Entity(), err)
	}
	defer cursor.Close(ctx)

	docs := []T{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.Entity(), err)
	}
	return docs, nil
}

func (r *MongoRepository[T]) Get(ctx context.Context, id bson.ObjectID) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, MONGO_TIMEOUT)
	defer cancel()

	var doc T
	err := r.collection.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return doc, ErrNotFound
	}
	if err != nil {
		return doc, fmt.Errorf("find %s %s: %w", r.Entity(), id.Hex(), err)
	}
	return doc, nil
}

func (r *MongoRepository[T]) Create(ctx context.Context, doc *T) error {
	ctx, cancel := context.WithTimeout(ctx, MONGO_TIMEOUT)
	defer cancel()

	m, err := toDocument(doc, r.now())
	if err != nil {
		return err
	}

	if _, err := r.collection.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("insert %s: %w", r.Entity(), err)
	}

	if err := fromDocument(m, doc); err != nil {
		return err
	}

	r.feed.Publish(ctx, Change{Entity: r.Entity(), Kind: CHANGE_CREATED, ID: m["_id"].(bson.ObjectID)})
	return nil
}

func (r *MongoRepository[T]) Update(ctx context.Context, id bson.ObjectID, fields Fields) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, MONGO_TIMEOUT)
	defer cancel()

	var doc T
	set := bson.M{}
	for key, value := range fields {
		set[key] = value
	}
	set["updated_at"] = r.now()

	updateOptions := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.collection.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, bson.D{{Key: "$set", Value: set}}, updateOptions).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return doc, ErrNotFound
	}
	if err != nil {
		return doc, fmt.Errorf("update %s %s: %w", r.Entity(), id.Hex(), err)
	}

	r.feed.Publish(ctx, Change{Entity: r.Entity(), Kind: CHANGE_UPDATED, ID: id, Fields: fieldNames(fields)})
	return doc, nil
}

func (r *MongoRepository[T]) Delete(ctx context.Context, id bson.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, MONGO_TIMEOUT)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", r.Entity(), id.Hex(), err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	r.feed.Publish(ctx, Change{Entity: r.Entity(), Kind: CHANGE_DELETED, ID: id})
	return nil
}
