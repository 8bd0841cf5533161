package database

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const CHANGES_CHANNEL = "crm:changes"

type ChangeKind string

const (
	CHANGE_CREATED ChangeKind = "created"
	CHANGE_UPDATED ChangeKind = "updated"
	CHANGE_DELETED ChangeKind = "deleted"
)

type Change struct {
	Entity string        `json:"entity"`
	Kind   ChangeKind    `json:"kind"`
	ID     bson.ObjectID `json:"id"`
	Fields []string      `json:"fields,omitempty"`
	Origin string        `json:"origin,omitempty"`
}

// Touches reports whether an update changed field. Creates and deletes touch
// every field.
func (c Change) Touches(field string) bool {
	if c.Kind != CHANGE_UPDATED {
		return true
	}
	for _, f := range c.Fields {
		if f == field {
			return true
		}
	}
	return false
}

type subscriber struct {
	entity string
	fn     func(Change)
}

// ChangeFeed fans out repository writes to in-process subscribers. With a
// Redis client it also relays them to every other instance through pub/sub.
// Delivery is at-most-once and unordered relative to other writers.
type ChangeFeed struct {
	rdb        *redis.Client
	instanceID string

	mu          sync.RWMutex
	nextID      int
	subscribers map[int]subscriber
}

func NewChangeFeed(rdb *redis.Client) *ChangeFeed {
	return &ChangeFeed{
		rdb:         rdb,
		instanceID:  uuid.NewString(),
		subscribers: map[int]subscriber{},
	}
}

// Subscribe registers fn for changes of entity ("" for every entity). fn runs
// on the publisher's goroutine and must not block.
func (f *ChangeFeed) Subscribe(entity string, fn func(Change)) (unsubscribe func()) {
	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.subscribers[id] = subscriber{entity: entity, fn: fn}
	f.mu.Unlock()

	return func() {
		f.mu.Lock()
		delete(f.subscribers, id)
		f.mu.Unlock()
	}
}

func (f *ChangeFeed) Publish(ctx context.Context, change Change) {
	if f == nil {
		return
	}

	change.Origin = f.instanceID
	f.dispatch(change)

	if f.rdb == nil {
		return
	}
	payload, err := json.Marshal(change)
	if err != nil {
		log.Error().Err(err).Str("entity", change.Entity).Msg("failed to encode change")
		return
	}
	if err := f.rdb.Publish(context.WithoutCancel(ctx), CHANGES_CHANNEL, payload).Err(); err != nil {
		log.Warn().Err(err).Str("entity", change.Entity).Msg("failed to relay change to redis")
	}
}

// Run relays changes published by other instances until ctx is done. It is a
// no-op without Redis.
func (f *ChangeFeed) Run(ctx context.Context) {
	if f.rdb == nil {
		return
	}

	pubsub := f.rdb.Subscribe(ctx, CHANGES_CHANNEL)
	defer pubsub.Close()

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			change := Change{}
			if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
				log.Warn().Err(err).Msg("discarding malformed change message")
				continue
			}
			if change.Origin == f.instanceID {
				continue
			}
			f.dispatch(change)
		}
	}
}

func (f *ChangeFeed) dispatch(change Change) {
	f.mu.RLock()
	targets := make([]func(Change), 0, len(f.subscribers))
	for _, sub := range f.subscribers {
		if sub.entity == "" || sub.entity == change.Entity {
			targets = append(targets, sub.fn)
		}
	}
	f.mu.RUnlock()

	for _, fn := range targets {
		deliver(fn, change)
	}
}

func deliver(fn func(Change), change Change) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("entity", change.Entity).Msg("change subscriber panicked")
		}
	}()
	fn(change)
}
